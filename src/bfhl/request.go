package bfhl

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExampleInput is the placeholder payload shown in the editor.
const ExampleInput = `{ "data": ["M", "1", "334", "4", "B"] }`

// Request is user input that parsed as JSON and matched the request schema.
type Request struct {
	Data []any
	body []byte
}

// ParseRequest interprets text as a /bfhl request body. It returns an error
// wrapping ErrParse for malformed JSON and ErrShape when the value is not an
// object holding a "data" array.
func ParseRequest(text string) (*Request, error) {
	contract, err := DefaultContract()
	if err != nil {
		return nil, err
	}
	return parseRequest(contract, text)
}

func parseRequest(contract *Contract, text string) (*Request, error) {
	raw := strings.TrimSpace(text)

	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := contract.ValidateRequest(v); err != nil {
		return nil, err
	}

	// Schema validation guarantees the assertions below.
	obj := v.(map[string]any)
	data, _ := obj["data"].([]any)

	return &Request{Data: data, body: []byte(raw)}, nil
}

// Body returns the request body exactly as the user typed it, minus
// surrounding whitespace.
func (r *Request) Body() []byte {
	return r.body
}
