package bfhl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequest(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		items   int
	}{
		{name: "example input", input: ExampleInput, items: 5},
		{name: "empty data", input: `{"data": []}`, items: 0},
		{name: "extra fields kept", input: `{"data": ["a"], "user": "x"}`, items: 1},
		{name: "surrounding whitespace", input: "\n  {\"data\": [\"1\"]}  \n", items: 1},
		{name: "empty text", input: "", wantErr: ErrParse},
		{name: "truncated object", input: `{"data": ["a"`, wantErr: ErrParse},
		{name: "not json", input: "data: a, b", wantErr: ErrParse},
		{name: "missing data", input: `{"items": ["a"]}`, wantErr: ErrShape},
		{name: "data is string", input: `{"data": "a,b"}`, wantErr: ErrShape},
		{name: "data is null", input: `{"data": null}`, wantErr: ErrShape},
		{name: "top level array", input: `["a", "b"]`, wantErr: ErrShape},
		{name: "top level string", input: `"hello"`, wantErr: ErrShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseRequest(tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, req)
				return
			}
			require.NoError(t, err)
			assert.Len(t, req.Data, tt.items)
		})
	}
}

func TestParseRequestKeepsBodyVerbatim(t *testing.T) {
	input := `  {"data":["M","1"],   "note": "spacing kept"}  `

	req, err := ParseRequest(input)
	require.NoError(t, err)

	assert.Equal(t, `{"data":["M","1"],   "note": "spacing kept"}`, string(req.Body()))
}

func TestUserMessage(t *testing.T) {
	_, parseErr := ParseRequest("{")
	_, shapeErr := ParseRequest(`{"x": 1}`)

	assert.Equal(t, ParseErrorMessage, UserMessage(parseErr))
	assert.Equal(t, ShapeErrorMessage, UserMessage(shapeErr))
	assert.Equal(t, "", UserMessage(nil))
	assert.NotEmpty(t, UserMessage(ErrNetwork))
	assert.NotEmpty(t, UserMessage(ErrResponseShape))
}
