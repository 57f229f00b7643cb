package dialogue_test

import (
	"testing"

	"github.com/superfeelapi/goEagiFraud/business/dialogue"
)

func TestExtractName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"John Smith", "John Smith"},
		{"My name is John Smith.", "John Smith"},
		{"Hi, this is John Smith", "John Smith"},
		{"yeah it's Mary-Jane O'Neil", "Mary-Jane O'Neil"},
		{"I’m John Smith!", "John Smith"},
		{"um, my full name is John  Smith", "John Smith"},
		{"this is", ""},
		{"My name is", ""},
		{"Hi, I am", ""},
		{"It's.", ""},
		{"yeah my full name is", ""},
		{"I am Sam", "Sam"},
		{"  ", ""},
		{"Hello", ""},
	}

	for _, tt := range tests {
		if got := dialogue.ExtractName(tt.in); got != tt.want {
			t.Errorf("ExtractName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
