package ancestry

import (
	"math"
	"strconv"
	"strings"
)

// GenerateSummary renders a profile as the Portuguese briefing block injected
// into agent prompts.
func GenerateSummary(profile *Profile) string {
	var b strings.Builder

	b.WriteString("DADOS DE ANCESTRALIDADE (" + strings.ToUpper(profile.TestProvider) +
		", confiança: " + strconv.Itoa(int(math.Round(profile.Confidence*100))) + "%)\n\n")

	if len(profile.Ancestry) > 0 {
		b.WriteString("COMPOSIÇÃO ANCESTRAL:\n")
		for _, rec := range top(profile.Ancestry, 5) {
			b.WriteString("• " + rec.Region + ": " + formatPercent(rec.Percentage) + "%")
			if len(rec.Countries) > 0 {
				countries := rec.Countries
				if len(countries) > 3 {
					countries = countries[:3]
				}
				b.WriteString(" (" + strings.Join(countries, ", ") + ")")
			}
			b.WriteString("\n")
		}
	}

	if len(profile.EthnicGroups) > 0 {
		groups := profile.EthnicGroups
		if len(groups) > 5 {
			groups = groups[:5]
		}
		b.WriteString("\nGRUPOS ÉTNICOS: " + strings.Join(groups, ", ") + "\n")
	}

	// Countries of the top 3 regions, capped at 5
	var topCountries []string
	for _, rec := range top(profile.Ancestry, 3) {
		topCountries = append(topCountries, rec.Countries...)
	}
	if len(topCountries) > 5 {
		topCountries = topCountries[:5]
	}
	if len(topCountries) > 0 {
		b.WriteString("\nPAÍSES PRIORITÁRIOS PARA TURISMO ANCESTRAL: " + strings.Join(topCountries, ", ") + "\n")
	}

	origin := "ancestrais"
	if len(profile.Ancestry) > 0 {
		origin = profile.Ancestry[0].Region
	}
	b.WriteString("\nCRIE ROTEIROS que conectem o usuário com suas origens " + origin +
		", priorizando experiências culturais autênticas.")

	return b.String()
}

func top(records []Record, n int) []Record {
	if len(records) > n {
		return records[:n]
	}
	return records
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
