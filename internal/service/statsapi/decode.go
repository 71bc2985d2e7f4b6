package statsapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The upstream API is not consistent about response shape. The same endpoint
// can return a bare array, a bare object, or a {success, data} envelope
// depending on the deployed version. unwrap peels the envelope when present
// and otherwise returns the payload untouched.
func unwrap(b []byte) []byte {
	trimmed := bytes.TrimSpace(b)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return trimmed
	}
	if len(env.Data) == 0 || bytes.Equal(env.Data, []byte("null")) {
		return trimmed
	}
	return env.Data
}

func decodeObject(b []byte, dest any) error {
	payload := unwrap(b)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return nil
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeList[T any](b []byte) ([]T, error) {
	payload := unwrap(b)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

// decodeSetting accepts either {"key":..,"value":..}, an enveloped version of
// it, or a bare JSON string.
func decodeSetting(b []byte) (string, error) {
	payload := unwrap(b)
	if len(payload) == 0 || bytes.Equal(payload, []byte("null")) {
		return "", nil
	}
	if payload[0] == '"' {
		var s string
		if err := json.Unmarshal(payload, &s); err != nil {
			return "", fmt.Errorf("decode setting: %w", err)
		}
		return s, nil
	}
	var row struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(payload, &row); err != nil {
		return "", fmt.Errorf("decode setting: %w", err)
	}
	return row.Value, nil
}
