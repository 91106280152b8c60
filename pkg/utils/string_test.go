package utils

import "testing"

func TestShortName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "short passes through", input: "Alice", want: "Alice"},
		{name: "exactly twelve", input: "123456789012", want: "123456789012"},
		{name: "truncated", input: "A Very Long Customer Name", want: "A Very Long …"},
		{name: "empty", input: "", want: ""},
		{name: "multibyte counts runes not bytes", input: "居酒屋オーダー常連", want: "居酒屋オーダー常連"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShortName(tt.input); got != tt.want {
				t.Errorf("ShortName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	if got := NormalizeWhitespace("  a \t b\n c  "); got != "a b c" {
		t.Errorf("NormalizeWhitespace = %q, want \"a b c\"", got)
	}
}
