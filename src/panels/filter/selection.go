package filter

import (
	"fmt"
	"strings"
)

// Label names one filterable response field.
type Label string

const (
	Alphabets       Label = "Alphabets"
	Numbers         Label = "Numbers"
	HighestAlphabet Label = "Highest Alphabet"
)

var labels = []Label{Alphabets, Numbers, HighestAlphabet}

// Labels returns every label in display order.
func Labels() []Label {
	out := make([]Label, len(labels))
	copy(out, labels)
	return out
}

// Field is the response JSON field the label reveals.
func (l Label) Field() string {
	switch l {
	case Alphabets:
		return "alphabets"
	case Numbers:
		return "numbers"
	case HighestAlphabet:
		return "highest_alphabet"
	default:
		return ""
	}
}

func (l Label) Valid() bool {
	return l.Field() != ""
}

// ParseLabel accepts a display name or a field name, case-insensitively.
func ParseLabel(s string) (Label, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for _, l := range labels {
		if key == strings.ToLower(string(l)) || key == l.Field() {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown filter %q (want one of: Alphabets, Numbers, Highest Alphabet)", s)
}

// Selection is an insertion-ordered set of labels.
type Selection struct {
	order []Label
}

func NewSelection(initial ...Label) *Selection {
	s := &Selection{}
	for _, l := range initial {
		s.Add(l)
	}
	return s
}

// Has reports whether l is selected.
func (s *Selection) Has(l Label) bool {
	for _, existing := range s.order {
		if existing == l {
			return true
		}
	}
	return false
}

// Add selects l. It returns false if l is unknown or already selected.
func (s *Selection) Add(l Label) bool {
	if !l.Valid() || s.Has(l) {
		return false
	}
	s.order = append(s.order, l)
	return true
}

// Remove deselects l and reports whether it was selected.
func (s *Selection) Remove(l Label) bool {
	for i, existing := range s.order {
		if existing == l {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle flips l and reports whether it is selected afterwards.
func (s *Selection) Toggle(l Label) bool {
	if s.Remove(l) {
		return false
	}
	return s.Add(l)
}

// Replace discards the current selection in favour of ls. Unknown and
// duplicate labels are skipped.
func (s *Selection) Replace(ls []Label) {
	s.order = nil
	for _, l := range ls {
		s.Add(l)
	}
}

func (s *Selection) Clear() {
	s.order = nil
}

func (s *Selection) Len() int {
	return len(s.order)
}

// Labels returns the selected labels in insertion order.
func (s *Selection) Labels() []Label {
	out := make([]Label, len(s.order))
	copy(out, s.order)
	return out
}
