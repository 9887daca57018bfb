package ancestry

import (
	"regexp"
	"strings"
)

// regionEntry associates a lowercase region keyword with tourism-relevant
// countries. Lookup is substring-based and scans in declaration order, so
// more specific keys must come before broader ones.
type regionEntry struct {
	key       string
	countries []string
}

var regionTable = []regionEntry{
	// Português/Espanhol
	{"ibérica", []string{"Portugal", "Espanha"}},
	{"iberian", []string{"Portugal", "Espanha"}},
	{"spanish", []string{"Espanha"}},
	{"portuguese", []string{"Portugal"}},
	{"portuguesa", []string{"Portugal"}},
	{"espanhola", []string{"Espanha"}},

	// Italiano
	{"italiana", []string{"Itália"}},
	{"italian", []string{"Itália"}},
	{"italy", []string{"Itália"}},

	// Alemão/Germânico
	{"alemã", []string{"Alemanha"}},
	{"german", []string{"Alemanha"}},
	{"germanic", []string{"Alemanha"}},
	{"deutschland", []string{"Alemanha"}},

	// Francês
	{"francesa", []string{"França"}},
	{"french", []string{"França"}},
	{"france", []string{"França"}},

	// Africano
	{"africana", []string{"Nigéria", "Gana", "Angola"}},
	{"african", []string{"Nigéria", "Gana", "Angola"}},
	{"sub-saharan", []string{"Nigéria", "Gana", "Senegal"}},
	{"west africa", []string{"Nigéria", "Gana", "Senegal"}},

	// Indígena
	{"indígena", []string{"Brasil", "México", "Peru"}},
	{"indigenous", []string{"Brasil", "México", "Peru"}},
	{"native american", []string{"Brasil", "México", "Estados Unidos"}},
	{"ameríndio", []string{"Brasil", "México", "Peru"}},

	// Outros
	{"irlandesa", []string{"Irlanda"}},
	{"irish", []string{"Irlanda"}},
	{"inglesa", []string{"Inglaterra"}},
	{"english", []string{"Inglaterra"}},
	{"escocesa", []string{"Escócia"}},
	{"scottish", []string{"Escócia"}},
	{"judaica", []string{"Israel"}},
	{"jewish", []string{"Israel"}},
	{"árabe", []string{"Líbano", "Síria"}},
	{"arab", []string{"Líbano", "Síria"}},
	{"asiática", []string{"China", "Japão"}},
	{"asian", []string{"China", "Japão"}},
}

// MapRegionToCountries resolves a region label to tourism destination
// countries. Unrecognized labels map to themselves so downstream itinerary
// building always has something to work with.
func MapRegionToCountries(region string) []string {
	lowerRegion := strings.ToLower(region)

	for _, entry := range regionTable {
		if strings.Contains(lowerRegion, entry.key) {
			out := make([]string, len(entry.countries))
			copy(out, entry.countries)
			return out
		}
	}

	return []string{region}
}

var (
	edgePunctRegex  = regexp.MustCompile(`^[:\-\s]+|[:\-\s]+$`)
	multiSpaceRegex = regexp.MustCompile(`\s+`)
	peninsulaRegex  = regexp.MustCompile(`(?i)peninsula`)
	europeRegex     = regexp.MustCompile(`(?i)europe`)
)

// replaceFirst removes only the first occurrence of the pattern.
func replaceFirst(re *regexp.Regexp, s string) string {
	loc := re.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}

// CleanRegionName strips edge punctuation, collapses whitespace and drops the
// generic qualifiers "Peninsula" and "Europe" from a raw region capture.
func CleanRegionName(region string) string {
	region = edgePunctRegex.ReplaceAllString(region, "")
	region = multiSpaceRegex.ReplaceAllString(region, " ")
	region = replaceFirst(peninsulaRegex, region)
	region = replaceFirst(europeRegex, region)
	return strings.TrimSpace(region)
}
