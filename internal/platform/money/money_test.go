package money

import (
	"strings"
	"testing"
)

func stripSpaces(s string) string {
	return strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "").Replace(s)
}

func TestEurosUsesFrenchGrouping(t *testing.T) {
	t.Parallel()
	got := Euros(350000)
	if stripSpaces(got) != "350000€" {
		t.Fatalf("unexpected amount %q", got)
	}
	if !strings.ContainsAny(strings.TrimSuffix(got, "\u00a0€"), " \u00a0\u202f") {
		t.Fatalf("expected a grouping separator in %q", got)
	}
	if stripSpaces(Euros(999.6)) != "1000€" {
		t.Fatalf("amounts must round to whole euros, got %q", Euros(999.6))
	}
}

func TestPercent(t *testing.T) {
	t.Parallel()
	if stripSpaces(Percent(78)) != "78%" {
		t.Fatalf("unexpected percent %q", Percent(78))
	}
}
