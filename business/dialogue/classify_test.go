package dialogue_test

import (
	"testing"

	"github.com/superfeelapi/goEagiFraud/business/dialogue"
)

func TestClassify(t *testing.T) {
	c := dialogue.NewClassifier(nil, nil)

	tests := []struct {
		text string
		want dialogue.Classification
	}{
		{"yes", dialogue.Affirmative},
		{"Yeah.", dialogue.Affirmative},
		{"Correct, that was me", dialogue.Affirmative},
		{"YES I made that purchase", dialogue.Affirmative},
		{"That's me", dialogue.Affirmative},
		{"oh it’s me", dialogue.Affirmative},
		{"that's not me", dialogue.Negative},
		{"no", dialogue.Negative},
		{"Nope, I didn't", dialogue.Negative},
		{"that wasn’t me", dialogue.Negative},
		{"that was not me", dialogue.Negative},
		{"that's not correct", dialogue.Negative},
		{"I don't recognize it", dialogue.Negative},
		{"", dialogue.Ambiguous},
		{"what was that again", dialogue.Ambiguous},
		{"maybe", dialogue.Ambiguous},
		{"yes and no", dialogue.Ambiguous},
		{"nothing", dialogue.Ambiguous},
		{"yesterday", dialogue.Ambiguous},
	}

	for _, tt := range tests {
		if got := c.Classify(tt.text); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestClassifyCustomKeywords(t *testing.T) {
	c := dialogue.NewClassifier([]string{"sí"}, []string{"no es mío"})

	if got := c.Classify("Sí"); got != dialogue.Affirmative {
		t.Fatalf("got %s", got)
	}
	if got := c.Classify("no es mío"); got != dialogue.Negative {
		t.Fatalf("got %s", got)
	}
	if got := c.Classify("yes"); got != dialogue.Ambiguous {
		t.Fatalf("custom list still matched default keyword: %s", got)
	}
}
