package bfhl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Response is the decoded /bfhl reply. A nil slice means the field was absent;
// an empty slice means it was present with no values.
type Response struct {
	Alphabets       []string        `json:"alphabets"`
	Numbers         []string        `json:"numbers"`
	HighestAlphabet HighestAlphabet `json:"highest_alphabet"`
}

// HighestAlphabet accepts both a bare string and an array of strings on the
// wire. Values is nil when the field was absent.
type HighestAlphabet struct {
	Values []string
	Scalar bool
}

func (h *HighestAlphabet) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		h.Values = nil
		h.Scalar = false
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		h.Scalar = true
		if s == "" {
			h.Values = []string{}
		} else {
			h.Values = []string{s}
		}
		return nil
	}

	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("highest_alphabet: %w", err)
	}
	if values == nil {
		values = []string{}
	}
	h.Values = values
	h.Scalar = false
	return nil
}

func (h HighestAlphabet) MarshalJSON() ([]byte, error) {
	if h.Values == nil {
		return []byte("null"), nil
	}
	if h.Scalar && len(h.Values) <= 1 {
		s := ""
		if len(h.Values) == 1 {
			s = h.Values[0]
		}
		return json.Marshal(s)
	}
	return json.Marshal(h.Values)
}

// Field returns the values for a response field by its JSON name and whether
// the field is present.
func (r *Response) Field(name string) ([]string, bool) {
	if r == nil {
		return nil, false
	}
	var values []string
	switch name {
	case "alphabets":
		values = r.Alphabets
	case "numbers":
		values = r.Numbers
	case "highest_alphabet":
		values = r.HighestAlphabet.Values
	default:
		return nil, false
	}
	return values, values != nil
}

// Result is a successful submission: the decoded response plus transport
// details.
type Result struct {
	ID         string
	Response   *Response
	StatusCode int
	Elapsed    time.Duration
	ReceivedAt time.Time
	Raw        []byte
}

// DecodeResponse validates body against the contract and decodes it.
func DecodeResponse(body []byte) (*Response, error) {
	contract, err := DefaultContract()
	if err != nil {
		return nil, err
	}
	return decodeResponse(contract, body)
}

func decodeResponse(contract *Contract, body []byte) (*Response, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("%w: response is not json: %v", ErrNetwork, err)
	}
	if err := contract.ValidateResponse(v); err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrResponseShape, err)
	}
	return &resp, nil
}
