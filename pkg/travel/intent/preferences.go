package intent

import (
	"regexp"
	"strings"
)

// Preferences are durable traits inferred from a message, persisted across
// the conversation.
type Preferences struct {
	Budget               string   `json:"budget,omitempty"`
	TravelStyle          string   `json:"travel_style,omitempty"`
	Interests            []string `json:"interests,omitempty"`
	PreviousDestinations []string `json:"previous_destinations,omitempty"`
}

var (
	prefBudgetRegex = regexp.MustCompile(`orçamento.*?(\d+(?:\.\d+)?)\s*(mil|reais|r\$)`)
	visitedRegex    = regexp.MustCompile(`já\s+(?:visitei|fui|conheço)\s+([^.!?]+)`)
)

type styleRule struct {
	style    string
	keywords []string
}

var styleRules = []styleRule{
	{"relaxante", []string{"relaxante", "tranquil"}},
	{"aventura", []string{"aventura", "radical"}},
	{"cultural", []string{"cultural", "museu", "história"}},
	{"gastronômico", []string{"gastronomi", "comida"}},
}

type interestRule struct {
	interest string
	keywords []string
}

var interestRules = []interestRule{
	{"praias", []string{"praia"}},
	{"montanhas", []string{"montanha"}},
	{"cidades", []string{"cidade"}},
	{"natureza", []string{"natureza"}},
	{"vida noturna", []string{"festa", "balada"}},
}

// ExtractPreferences pulls durable travel preferences out of a message.
// Fields the message says nothing about stay zero.
func ExtractPreferences(message string) Preferences {
	var prefs Preferences
	lowerMessage := strings.ToLower(message)

	if m := prefBudgetRegex.FindStringSubmatch(lowerMessage); m != nil {
		prefs.Budget = m[1] + " " + m[2]
	}

	for _, r := range styleRules {
		if containsAny(lowerMessage, r.keywords) {
			prefs.TravelStyle = r.style
			break
		}
	}

	for _, r := range interestRules {
		if containsAny(lowerMessage, r.keywords) {
			prefs.Interests = append(prefs.Interests, r.interest)
		}
	}

	if m := visitedRegex.FindStringSubmatch(lowerMessage); m != nil {
		prefs.PreviousDestinations = []string{strings.TrimSpace(m[1])}
	}

	return prefs
}

// IsEmpty reports whether nothing was extracted.
func (p Preferences) IsEmpty() bool {
	return p.Budget == "" && p.TravelStyle == "" &&
		len(p.Interests) == 0 && len(p.PreviousDestinations) == 0
}
