package utils

import (
	"strings"
	"testing"
)

type validatedLayout struct {
	Newline string `validate:"oneof=auto lf crlf"`
	Indent  string `validate:"required,lowercase_word"`
}

type validatedConfig struct {
	Name   string `validate:"required"`
	Limit  int    `validate:"gt=0"`
	Layout validatedLayout
}

func init() {
	MustRegisterValidation("lowercase_word", func(v string) bool {
		return v != "" && strings.ToLower(v) == v
	})
}

func TestValidateStruct(t *testing.T) {
	valid := validatedConfig{Name: "ok", Limit: 1, Layout: validatedLayout{Newline: "lf", Indent: "tab"}}
	if err := ValidateStruct(valid); err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}

	invalid := validatedConfig{Layout: validatedLayout{Newline: "cr", Indent: "TAB"}}
	err := ValidateStruct(invalid)
	if err == nil {
		t.Fatal("expected validation error")
	}

	msg := err.Error()
	for _, want := range []string{
		"name is required",
		"limit must be greater than 0",
		"layout.newline must be one of: auto lf crlf",
		"layout.indent has invalid value TAB (lowercase_word)",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected %q in %q", want, msg)
		}
	}
}

func TestMustRegisterValidationPanicsOnEmptyTag(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	MustRegisterValidation("", func(string) bool { return true })
}
