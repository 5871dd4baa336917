package domain

import "testing"

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  Hello World  ", "hello world"},
		{"Multiple   Spaces   Here", "multiple spaces here"},
		{"", ""},
		{"   ", ""},
		{"食べる", "食べる"},
		{"l'été", "l'été"},
		{"MiXeD CaSe", "mixed case"},
	}
	for _, tt := range tests {
		if got := NormalizeText(tt.in); got != tt.want {
			t.Errorf("NormalizeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
