package validator

import (
	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground struct-tag validation. The loader runs every
// parsed question through it before the question reaches the store, which is
// what guarantees the stored invariants: non-empty text, exactly four
// options, correct index within [0,3].
type Validator struct {
	structValidator *validator.Validate
}

// New creates the shared validator instance.
func New() *Validator {
	return &Validator{
		structValidator: validator.New(),
	}
}

// ValidateStruct validates struct tags only.
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}
