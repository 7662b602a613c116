package slug

import (
	"strings"
	"testing"
)

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Transmission SCOP 'Innov&Co'":   "transmission-scop-innov-co",
		"  ---  ":                        "untitled",
		"Plan 2026":                      "plan-2026",
		"Reprise Coopérative Élan Forêt": "reprise-cooperative-elan-foret",
	}
	for in, want := range cases {
		if got := Make(in); got != want {
			t.Fatalf("Make(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMakeTruncates(t *testing.T) {
	t.Parallel()
	got := Make(strings.Repeat("scop ", 40))
	if len(got) > maxLen {
		t.Fatalf("len = %d, want <= %d", len(got), maxLen)
	}
	if strings.HasSuffix(got, "-") {
		t.Fatalf("slug %q ends with a dash", got)
	}
}
