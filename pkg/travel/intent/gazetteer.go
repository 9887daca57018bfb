package intent

import "strings"

// Known destinations, countries first then major cities. Matching is
// substring-based on the lowercased message, first hit wins.
var destinations = []string{
	"portugal", "espanha", "itália", "alemanha", "frança", "brasil",
	"argentina", "chile", "peru", "méxico", "japão", "china", "tailândia",
	"lisboa", "madrid", "roma", "paris", "londres", "nova york", "tóquio",
}

// ExtractDestination returns the first known destination mentioned in the
// message, capitalized, or "" when none is found.
func ExtractDestination(message string) string {
	lowerMessage := strings.ToLower(message)

	for _, dest := range destinations {
		if strings.Contains(lowerMessage, dest) {
			return capitalize(dest)
		}
	}
	return ""
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
