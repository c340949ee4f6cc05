package result

import (
	"testing"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bfhl/src/bfhl"
	"bfhl/src/panels/filter"
)

func sampleResponse(t *testing.T, body string) *bfhl.Response {
	t.Helper()
	resp, err := bfhl.DecodeResponse([]byte(body))
	require.NoError(t, err)
	return resp
}

func TestLinesNumbersOnly(t *testing.T) {
	resp := sampleResponse(t, `{"alphabets":["A","B"],"numbers":["1","2"],"highest_alphabet":["B"]}`)

	out := Text(Lines(resp, filter.NewSelection(filter.Numbers)))

	assert.Contains(t, out, "1, 2")
	assert.NotContains(t, out, "A, B")
	assert.Equal(t, "Numbers: 1, 2", out)
}

func TestLines(t *testing.T) {
	full := `{"alphabets":["A","C","z"],"numbers":["1","334","4"],"highest_alphabet":["z"]}`

	tests := []struct {
		name     string
		body     string
		selected []filter.Label
		expected []string
	}{
		{
			name:     "nothing selected renders nothing",
			body:     full,
			selected: nil,
			expected: nil,
		},
		{
			name:     "label order wins over selection order",
			body:     full,
			selected: []filter.Label{filter.HighestAlphabet, filter.Alphabets},
			expected: []string{"Alphabets: A, C, z", "Highest Alphabet: z"},
		},
		{
			name:     "all labels",
			body:     full,
			selected: filter.Labels(),
			expected: []string{"Alphabets: A, C, z", "Numbers: 1, 334, 4", "Highest Alphabet: z"},
		},
		{
			name:     "present but empty falls back to None",
			body:     `{"alphabets":[],"numbers":["7"],"highest_alphabet":[]}`,
			selected: filter.Labels(),
			expected: []string{"Alphabets: None", "Numbers: 7", "Highest Alphabet: None"},
		},
		{
			name:     "scalar highest alphabet",
			body:     `{"alphabets":["q"],"numbers":[],"highest_alphabet":"q"}`,
			selected: []filter.Label{filter.HighestAlphabet},
			expected: []string{"Highest Alphabet: q"},
		},
		{
			name:     "array highest alphabet with several values",
			body:     `{"alphabets":["q","Q"],"numbers":[],"highest_alphabet":["q","Q"]}`,
			selected: []filter.Label{filter.HighestAlphabet},
			expected: []string{"Highest Alphabet: q, Q"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := sampleResponse(t, tt.body)
			lines := Lines(resp, filter.NewSelection(tt.selected...))

			var got []string
			for _, l := range lines {
				got = append(got, l.String())
			}
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLinesSkipsAbsentFields(t *testing.T) {
	resp := &bfhl.Response{Numbers: []string{"5"}}

	lines := Lines(resp, filter.NewSelection(filter.Labels()...))

	require.Len(t, lines, 1)
	assert.Equal(t, filter.Numbers, lines[0].Label)
}

func TestLinesNilInputs(t *testing.T) {
	assert.Nil(t, Lines(nil, filter.NewSelection(filter.Numbers)))
	assert.Nil(t, Lines(&bfhl.Response{Numbers: []string{"1"}}, nil))
}

func TestRenderResult(t *testing.T) {
	vp := viewport.New(10, 3)
	vp.SetContent("Numbers: 1, 2")
	styles := Styles{
		Focused: lipgloss.NewStyle(),
		Blurred: lipgloss.NewStyle(),
		Title:   lipgloss.NewStyle(),
		Status:  lipgloss.NewStyle(),
	}

	out := RenderResult(40, 8, true, "Response", "200 OK", &vp, styles)

	assert.Contains(t, out, "Response")
	assert.Contains(t, out, "200 OK")
	assert.Contains(t, out, "Numbers: 1, 2")
	assert.Equal(t, 36, vp.Width)
}

func TestColorizeKeepsText(t *testing.T) {
	lines := []Line{{Label: filter.Numbers, Text: "1, 2"}}
	out := Colorize(lines, Styles{})
	assert.Contains(t, out, "Numbers:")
	assert.Contains(t, out, "1, 2")
}
