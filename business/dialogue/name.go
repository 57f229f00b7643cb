package dialogue

import (
	"strings"
	"unicode"
)

var (
	fillerWords = map[string]bool{
		"hi": true, "hello": true, "hey": true, "yes": true, "yeah": true, "sure": true,
		"ok": true, "okay": true, "um": true, "uh": true, "oh": true, "well": true,
	}
	nameLeadIns = [][]string{
		{"my", "full", "name", "is"},
		{"my", "name", "is"},
		{"the", "name", "is"},
		{"name's"},
		{"this", "is"},
		{"it", "is"},
		{"it's"},
		{"i", "am"},
		{"i'm"},
	}
)

// ExtractName pulls the spoken name out of a reply such as
// "Hi, my name is John Smith." Case is preserved.
func ExtractName(utterance string) string {
	utterance = strings.NewReplacer("’", "'", "‘", "'").Replace(utterance)

	words := strings.FieldsFunc(utterance, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
	})

	for len(words) > 0 && fillerWords[strings.ToLower(words[0])] {
		words = words[1:]
	}

	for _, lead := range nameLeadIns {
		// A lead-in cut off before the name carries no name.
		if len(words) == len(lead) && hasPrefixFold(words, lead) {
			return ""
		}
		if len(words) > len(lead) && hasPrefixFold(words, lead) {
			words = words[len(lead):]
			break
		}
	}

	return strings.Join(words, " ")
}

func hasPrefixFold(words, prefix []string) bool {
	if len(words) < len(prefix) {
		return false
	}
	for i, p := range prefix {
		if strings.ToLower(words[i]) != p {
			return false
		}
	}
	return true
}
