package contract

import (
	"testing"
	"unicode/utf8"
)

// FuzzTruncateName checks that truncation never exceeds the width and never splits a rune.
func FuzzTruncateName(f *testing.F) {
	seeds := []struct {
		name  string
		width int
	}{
		{"Bruno Fernandes", 8},
		{"Amad", 4},
		{"", 10},
		{"Højlund", 5},
		{"x", -1},
	}
	for _, seed := range seeds {
		f.Add(seed.name, seed.width)
	}

	f.Fuzz(func(t *testing.T, name string, width int) {
		if !utf8.ValidString(name) {
			t.Skip()
		}
		got := TruncateName(name, width)
		if width > 3 && utf8.RuneCountInString(got) > width {
			t.Fatalf("TruncateName(%q, %d) = %q is wider than %d", name, width, got, width)
		}
		if !utf8.ValidString(got) {
			t.Fatalf("TruncateName(%q, %d) produced invalid UTF-8", name, width)
		}
	})
}
