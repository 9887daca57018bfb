package intent

import (
	"regexp"
	"strconv"
	"strings"
)

// Intents ordered from most to least actionable.
const (
	IntentPlanning        = "planning"
	IntentBudgetQuestion  = "budget_question"
	IntentDestinationInfo = "destination_info"
	IntentModifyItinerary = "modify_itinerary"
	IntentGeneralChat     = "general_chat"
)

// Entities holds values pulled out of the message alongside the intent.
type Entities struct {
	Budget      string `json:"budget,omitempty"`
	Travelers   int    `json:"travelers,omitempty"`
	Destination string `json:"destination,omitempty"`
}

// Result is a classified user message.
type Result struct {
	Intent     string   `json:"intent"`
	Entities   Entities `json:"entities"`
	Confidence float64  `json:"confidence"`
}

var (
	budgetRegex    = regexp.MustCompile(`(\d+)\s*(mil|reais|r\$)`)
	travelersRegex = regexp.MustCompile(`(\d+)\s*(pessoas?|viajantes?)`)
)

// rule keywords are checked in declaration order; the first rule with any
// keyword present wins, so broader keywords ("sobre") must come after the
// more specific rules that could contain them.
type rule struct {
	intent     string
	keywords   []string
	confidence float64
}

var rules = []rule{
	{IntentPlanning, []string{"planejar", "roteiro", "viagem"}, 0.9},
	{IntentBudgetQuestion, []string{"quanto custa", "preço", "orçamento"}, 0.8},
	{IntentDestinationInfo, []string{"me fale sobre", "turismo", "sobre"}, 0.7},
	{IntentModifyItinerary, []string{"alterar", "mudar", "modificar"}, 0.6},
}

// Classify detects what the user wants from a single message.
func Classify(message string) Result {
	lowerMessage := strings.ToLower(message)

	for _, r := range rules {
		if !containsAny(lowerMessage, r.keywords) {
			continue
		}

		result := Result{
			Intent:     r.intent,
			Confidence: r.confidence,
		}

		switch r.intent {
		case IntentPlanning:
			if m := budgetRegex.FindStringSubmatch(lowerMessage); m != nil {
				result.Entities.Budget = m[1]
			}
			result.Entities.Travelers = 1
			if m := travelersRegex.FindStringSubmatch(lowerMessage); m != nil {
				if n, err := strconv.Atoi(m[1]); err == nil {
					result.Entities.Travelers = n
				}
			}
			result.Entities.Destination = ExtractDestination(message)
		case IntentBudgetQuestion, IntentDestinationInfo:
			result.Entities.Destination = ExtractDestination(message)
		}

		return result
	}

	return Result{
		Intent:     IntentGeneralChat,
		Confidence: 0.3,
	}
}

func containsAny(message string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}
