package dialogue

import (
	"strings"
	"unicode"
)

// Classification is the reading of a yes/no confirmation reply.
type Classification int

const (
	Ambiguous Classification = iota
	Affirmative
	Negative
)

func (c Classification) String() string {
	switch c {
	case Affirmative:
		return "affirmative"
	case Negative:
		return "negative"
	}
	return "ambiguous"
}

var (
	DefaultAffirmative = []string{
		"yes", "yeah", "yep", "yup", "correct", "that was me", "it was me", "that's me", "it's me",
		"i made it", "i made that", "i made the purchase", "that's mine", "that is mine",
		"absolutely", "confirm",
	}
	DefaultNegative = []string{
		"no", "nope", "nah", "didn't", "did not", "not me", "wasn't me", "was not me",
		"never", "not mine", "don't recognize", "do not recognize", "not correct",
		"fraud", "stolen",
	}
)

// Classifier matches keyword phrases on word boundaries.
type Classifier struct {
	affirmative [][]string
	negative    [][]string
}

// NewClassifier builds a classifier; empty lists fall back to the defaults.
func NewClassifier(affirmative, negative []string) *Classifier {
	if len(affirmative) == 0 {
		affirmative = DefaultAffirmative
	}
	if len(negative) == 0 {
		negative = DefaultNegative
	}
	return &Classifier{
		affirmative: phrases(affirmative),
		negative:    phrases(negative),
	}
}

// Classify reads text as Affirmative, Negative or Ambiguous. An affirmative
// phrase inside a negative one ("not correct") does not count. Replies that
// carry both or neither are Ambiguous.
func (c *Classifier) Classify(text string) Classification {
	words := tokenize(text)

	neg := matches(words, c.negative)

	var aff bool
	for _, span := range matches(words, c.affirmative) {
		if !overlapsAny(span, neg) {
			aff = true
			break
		}
	}

	switch {
	case len(neg) > 0 && !aff:
		return Negative
	case aff && len(neg) == 0:
		return Affirmative
	}
	return Ambiguous
}

// =====================================================================================================================

type span struct {
	start, end int
}

func matches(words []string, list [][]string) []span {
	var spans []span
	for _, p := range list {
		for i := 0; i+len(p) <= len(words); i++ {
			if equalWords(words[i:i+len(p)], p) {
				spans = append(spans, span{i, i + len(p)})
			}
		}
	}
	return spans
}

func overlapsAny(s span, others []span) bool {
	for _, o := range others {
		if s.start < o.end && o.start < s.end {
			return true
		}
	}
	return false
}

func equalWords(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func phrases(list []string) [][]string {
	out := make([][]string, 0, len(list))
	for _, p := range list {
		if words := tokenize(p); len(words) > 0 {
			out = append(out, words)
		}
	}
	return out
}

// tokenize lowercases text and splits it into words, keeping apostrophes.
func tokenize(text string) []string {
	text = strings.ToLower(strings.NewReplacer("’", "'", "‘", "'").Replace(text))
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
}
