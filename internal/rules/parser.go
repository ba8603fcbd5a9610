package rules

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ValidationError represents a rule table validation error with context.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// IsValidationError returns true if the error is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// File is the on-disk shape of a rules file.
type File struct {
	Rules []Rule `yaml:"rules"`
}

// Load reads, validates and builds a Table from a YAML rules file.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening rules file: %w", err)
	}
	defer f.Close()

	return LoadFromReader(f)
}

// LoadFromReader reads, validates and builds a Table from YAML content.
func LoadFromReader(r io.Reader) (*Table, error) {
	var file File

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ValidationError{Field: "rules", Message: "rules file is empty"}
		}
		return nil, fmt.Errorf("parsing rules YAML: %w", err)
	}

	return New(file.Rules)
}

var validate = validator.New()

// Validate checks that every rule is well formed. Invalid severity tokens,
// rules that can never match, and more than one breaking-change rule are
// reported as a ValidationError.
func Validate(rules []Rule) error {
	if len(rules) == 0 {
		return &ValidationError{Field: "rules", Message: "at least one rule is required"}
	}

	breakingAt := -1
	for i, r := range rules {
		if err := validateRule(r, i); err != nil {
			return err
		}

		if r.IsBreakingRule() {
			if breakingAt >= 0 {
				return &ValidationError{
					Field:   fmt.Sprintf("rules[%d].breaking", i),
					Message: fmt.Sprintf("only one breaking-change rule is allowed (already declared at rules[%d])", breakingAt),
				}
			}
			breakingAt = i
		}
	}

	return nil
}

// validateRule checks constraints for a single rule.
func validateRule(r Rule, index int) error {
	if err := validate.Struct(r); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return &ValidationError{
				Field:   fmt.Sprintf("rules[%d].%s", index, strings.ToLower(fe.Field())),
				Message: fmt.Sprintf("invalid value %q (expected one of: %s)", fe.Value(), fe.Param()),
			}
		}
		return &ValidationError{Field: fmt.Sprintf("rules[%d]", index), Message: err.Error()}
	}

	if !r.IsBreakingRule() && r.Type == "" && r.Scope == "" {
		return &ValidationError{
			Field:   fmt.Sprintf("rules[%d]", index),
			Message: "rule must match on type, scope or breaking",
		}
	}

	if r.IsBreakingRule() && (r.Type != "" || r.Scope != "") {
		return &ValidationError{
			Field:   fmt.Sprintf("rules[%d].breaking", index),
			Message: "a breaking rule matches every breaking commit and cannot also set type or scope",
		}
	}

	if r.Section != "" && strings.TrimSpace(r.Section) != r.Section {
		return &ValidationError{
			Field:   fmt.Sprintf("rules[%d].section", index),
			Message: fmt.Sprintf("section %q has leading or trailing whitespace", r.Section),
		}
	}

	return nil
}
