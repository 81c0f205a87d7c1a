package stringutil

import (
	"reflect"
	"testing"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<p>Hello   <b>world</b></p>", "Hello world"},
		{"  line\none\t\ttwo  ", "line one two"},
		{"a&nbsp;b", "a b"},
		{"", ""},
		{"<div><span></span></div>", ""},
	}
	for _, tc := range tests {
		if got := CleanText(tc.in); got != tc.want {
			t.Errorf("CleanText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncateCountsRunes(t *testing.T) {
	if got := Truncate("привет мир", 6); got != "привет" {
		t.Fatalf("got %q", got)
	}
	if got := Truncate("short", 100); got != "short" {
		t.Fatalf("got %q", got)
	}
	if got := Truncate("anything", 0); got != "anything" {
		t.Fatalf("maxChars<=0 must be a no-op, got %q", got)
	}
}

func TestSplitCSV(t *testing.T) {
	got := SplitCSV(" brave , ddg ,, ")
	want := []string{"brave", "ddg"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEnvOr(t *testing.T) {
	if got := EnvOr("existing", "  "); got != "existing" {
		t.Fatalf("got %q", got)
	}
	if got := EnvOr("existing", " new "); got != "new" {
		t.Fatalf("got %q", got)
	}
}
