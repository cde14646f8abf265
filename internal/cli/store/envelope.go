// Package store provides typed wrappers over the API dispatcher, one per
// storefront resource.
package store

import (
	"encoding/json"
	"fmt"
)

// Envelope is the storefront API's response wrapper. Some endpoints wrap the
// payload once more under a nested data key; the dispatcher does not
// normalize this, so decoding here is defensive.
type Envelope struct {
	Status int             `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *APIError       `json:"error,omitempty"`
}

// APIError is the error object some endpoints embed in their envelope.
type APIError struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
	Details string `json:"details,omitempty"`
}

// unwrap decodes a response body into out, tolerating three shapes: the
// bare payload, {status, data: payload}, and {status, data: {status, data:
// payload}}.
func unwrap(raw []byte, out any) error {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 {
		var inner Envelope
		if err := json.Unmarshal(env.Data, &inner); err == nil && len(inner.Data) > 0 {
			if json.Unmarshal(inner.Data, out) == nil {
				return nil
			}
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode response payload: %w", err)
		}
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response payload: %w", err)
	}
	return nil
}
