package req

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xy-planning-network/switchback"
)

// A ValidationError is a field whose value broke the rule set on it.
type ValidationError struct {
	Field string `json:"field"`
	Got   any    `json:"got"`
	Rule  string `json:"rule,omitempty"`
}

func (ve ValidationError) String() string {
	return fmt.Sprintf("field=%q rule=%q got=%q", ve.Field, ve.Rule, fmt.Sprint(ve.Got))
}

// ValidationErrors lists every broken rule; it wraps switchback.ErrNotValid.
type ValidationErrors []ValidationError

// Error reports one ValidationError per line.
func (v ValidationErrors) Error() string {
	lines := make([]string, len(v))
	for i, ve := range v {
		lines[i] = ve.String()
	}

	return strings.Join(lines, "\n")
}

// MarshalJSON nests v under "validationErrors", which is left out when v is empty.
func (v ValidationErrors) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		E []ValidationError `json:"validationErrors,omitempty"`
	}{E: v})
}

func (ValidationErrors) Unwrap() error { return switchback.ErrNotValid }
