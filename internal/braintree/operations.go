package braintree

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Canned queries for the non-pass-through tools.
const (
	pingQuery = `query Ping { ping }`

	idFromLegacyIDQuery = `query IdFromLegacyId($legacyId: ID!, $type: LegacyIdType!) {
  idFromLegacyId(legacyId: $legacyId, type: $type)
}`
)

// graphQLEnvelope is the minimal response shape the canned operations need.
// The pass-through tool never uses it; arbitrary responses stay opaque.
type graphQLEnvelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

type graphQLError struct {
	Message string `json:"message"`
}

// messages joins the upstream error messages into one line.
func (e graphQLEnvelope) messages() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		if err.Message == "" {
			msgs = append(msgs, "unknown error")
			continue
		}
		msgs = append(msgs, err.Message)
	}
	return strings.Join(msgs, ", ")
}

// Ping issues the minimal authenticated query and returns the fixed "pong"
// token on success. Anything else, including a well-formed response without
// the expected payload, is an error.
func (c *Client) Ping(ctx context.Context) (string, error) {
	body, err := c.Execute(ctx, Request{Query: pingQuery})
	if err != nil {
		return "", err
	}

	var envelope graphQLEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", fmt.Errorf("unexpected response from Braintree ping: %s", body)
	}
	if len(envelope.Errors) > 0 {
		return "", fmt.Errorf("Braintree reported errors: %s", envelope.messages())
	}

	var data struct {
		Ping string `json:"ping"`
	}
	if err := json.Unmarshal(envelope.Data, &data); err != nil || data.Ping != "pong" {
		return "", fmt.Errorf("unexpected response from Braintree ping: %s", body)
	}

	return "pong", nil
}

// IDFromLegacyID translates a legacy identifier (transaction ID, customer
// ID, ...) into its GraphQL ID. The second return value reports whether the
// API knew the legacy ID; a null translation is not an error.
func (c *Client) IDFromLegacyID(ctx context.Context, legacyID, legacyIDType string) (string, bool, error) {
	body, err := c.Execute(ctx, Request{
		Query: idFromLegacyIDQuery,
		Variables: map[string]interface{}{
			"legacyId": legacyID,
			"type":     legacyIDType,
		},
	})
	if err != nil {
		return "", false, err
	}

	var envelope graphQLEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return "", false, fmt.Errorf("unexpected response from Braintree: %s", body)
	}
	if len(envelope.Errors) > 0 {
		return "", false, fmt.Errorf("Braintree reported errors: %s", envelope.messages())
	}

	var data struct {
		IDFromLegacyID *string `json:"idFromLegacyId"`
	}
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		return "", false, fmt.Errorf("unexpected response from Braintree: %s", body)
	}
	if data.IDFromLegacyID == nil || *data.IDFromLegacyID == "" {
		return "", false, nil
	}

	return *data.IDFromLegacyID, true, nil
}
