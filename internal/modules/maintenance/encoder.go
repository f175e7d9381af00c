package maintenance

import (
	"fmt"
	"sort"
)

// UnseenCode is the sentinel assigned to values absent from the training corpus.
const UnseenCode = -1

// LabelEncoder maps each distinct training value to its index in sorted order.
type LabelEncoder struct {
	classes []string
	index   map[string]int
}

func FitLabelEncoder(values []string) *LabelEncoder {
	seen := make(map[string]struct{}, len(values))
	classes := make([]string, 0)
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		classes = append(classes, v)
	}
	sort.Strings(classes)
	index := make(map[string]int, len(classes))
	for i, c := range classes {
		index[c] = i
	}
	return &LabelEncoder{classes: classes, index: index}
}

// Code returns the code of v, or UnseenCode.
func (e *LabelEncoder) Code(v string) int {
	if c, ok := e.index[v]; ok {
		return c
	}
	return UnseenCode
}

func (e *LabelEncoder) Decode(code int) (string, error) {
	if code < 0 || code >= len(e.classes) {
		return "", fmt.Errorf("label code %d out of range [0,%d)", code, len(e.classes))
	}
	return e.classes[code], nil
}

// Classes returns a copy of the fitted classes in code order.
func (e *LabelEncoder) Classes() []string {
	out := make([]string, len(e.classes))
	copy(out, e.classes)
	return out
}

func (e *LabelEncoder) Len() int { return len(e.classes) }
