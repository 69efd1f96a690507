package validator

import (
	"regexp"
	"testing"
)

func TestCheckCollectsFailures(t *testing.T) {
	v := New()

	if !v.Valid() {
		t.Error("new validator should be valid")
	}

	v.Check(true, "ok", "should not be recorded")
	v.Check(false, "email", "must be provided")
	v.Check(false, "email", "second message is ignored")

	if v.Valid() {
		t.Error("validator with failures should not be valid")
	}
	if got := v.Errors["email"]; got != "must be provided" {
		t.Errorf("got %q; want first recorded message", got)
	}
	if _, exists := v.Errors["ok"]; exists {
		t.Error("passing check should not be recorded")
	}
}

func TestMatches(t *testing.T) {
	rx := regexp.MustCompile(`^\d{4}$`)

	if !Matches("1999", rx) {
		t.Error("1999 should match")
	}
	if Matches("99", rx) {
		t.Error("99 should not match")
	}
}

func TestIn(t *testing.T) {
	if !In("b", "a", "b", "c") {
		t.Error("b should be in list")
	}
	if In("d", "a", "b", "c") {
		t.Error("d should not be in list")
	}
}
