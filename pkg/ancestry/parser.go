package ancestry

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Test providers recognized in report text.
const (
	ProviderGenera     = "genera"
	ProviderMyHeritage = "myheritage"
	Provider23AndMe    = "23andme"
	ProviderUnknown    = "unknown"
)

var (
	ErrTextTooShort   = errors.New("PDF parece estar vazio ou não contém dados de ancestralidade")
	ErrNoAncestryData = errors.New("Não foi possível extrair dados de ancestralidade do PDF")
)

// Record is a single ancestry composition line.
type Record struct {
	Region     string   `json:"region"`
	Percentage float64  `json:"percentage"`
	Countries  []string `json:"countries"`
}

// Profile is the structured result of parsing an ancestry report.
type Profile struct {
	Ancestry     []Record `json:"ancestry"`
	EthnicGroups []string `json:"ethnic_groups"`
	TestProvider string   `json:"test_provider"`
	Confidence   float64  `json:"confidence"`
}

// Result wraps a parsed profile with non-fatal extraction warnings.
type Result struct {
	Profile  *Profile
	Warnings []string
}

var (
	// Region before percentage ("Ibérica: 45.2%") and the reverse order.
	// Labels only span horizontal whitespace so headers on adjacent lines
	// never bleed into a capture.
	regionFirstRegex  = regexp.MustCompile(`([A-Za-zÀ-ÿ &\t]+)[\s:]+(\d+(?:\.\d+)?)[ \t]*%`)
	percentFirstRegex = regexp.MustCompile(`(\d+(?:\.\d+)?)[ \t]*%[ \t]*([A-Za-zÀ-ÿ &\t]+)`)

	// A colon after the keyword is required so section headings such as
	// "Ethnicity Breakdown" are not mistaken for a group list.
	ethnicGroupRegexes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:grupos?\s*étnicos?|ethnic\s*groups?)[ \t]*:\s*([A-Za-zÀ-ÿ ,\t]+)`),
		regexp.MustCompile(`(?i)(?:etnia|ethnicity)[ \t]*:\s*([A-Za-zÀ-ÿ ,\t]+)`),
	}
)

// Parse extracts a structured ancestry profile from free-form report text.
func Parse(text string) (*Result, error) {
	if utf8.RuneCountInString(text) < 50 {
		return nil, ErrTextTooShort
	}

	provider := identifyProvider(text)
	records := parseAncestryRecords(text)
	if len(records) == 0 {
		return nil, ErrNoAncestryData
	}

	profile := &Profile{
		Ancestry:     records,
		EthnicGroups: parseEthnicGroups(text),
		TestProvider: provider,
	}
	profile.Confidence = calculateConfidence(profile)

	var warnings []string
	if profile.Confidence < 0.3 {
		warnings = append(warnings, "Baixa confiança na extração dos dados. Verifique se o PDF contém dados de ancestralidade.")
	}
	if provider == ProviderUnknown {
		warnings = append(warnings, "Provedor do teste não identificado automaticamente.")
	}

	return &Result{Profile: profile, Warnings: warnings}, nil
}

func identifyProvider(text string) string {
	lowerText := strings.ToLower(text)

	if strings.Contains(lowerText, "genera") || strings.Contains(lowerText, "laboratório genera") {
		return ProviderGenera
	}
	if strings.Contains(lowerText, "myheritage") || strings.Contains(lowerText, "my heritage") {
		return ProviderMyHeritage
	}
	if strings.Contains(lowerText, "23andme") || strings.Contains(lowerText, "23 and me") {
		return Provider23AndMe
	}
	return ProviderUnknown
}

func parseAncestryRecords(text string) []Record {
	var records []Record
	foundRegions := make(map[string]bool)

	add := func(rawRegion string, rawPercent string) {
		percentage, err := strconv.ParseFloat(rawPercent, 64)
		if err != nil {
			return
		}
		region := CleanRegionName(strings.TrimSpace(rawRegion))

		if percentage <= 0 || percentage > 100 || utf8.RuneCountInString(region) <= 2 {
			return
		}

		// First match wins, later duplicates are ignored
		regionKey := strings.ToLower(region)
		if foundRegions[regionKey] {
			return
		}
		foundRegions[regionKey] = true

		records = append(records, Record{
			Region:     region,
			Percentage: percentage,
			Countries:  MapRegionToCountries(region),
		})
	}

	for _, match := range regionFirstRegex.FindAllStringSubmatch(text, -1) {
		add(match[1], match[2])
	}
	for _, match := range percentFirstRegex.FindAllStringSubmatch(text, -1) {
		add(match[2], match[1])
	}

	// Highest percentage first; ties keep extraction order
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Percentage > records[j].Percentage
	})
	return records
}

func parseEthnicGroups(text string) []string {
	var groups []string
	seen := make(map[string]bool)

	for _, re := range ethnicGroupRegexes {
		match := re.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		for _, g := range strings.Split(match[1], ",") {
			g = strings.TrimSpace(g)
			if utf8.RuneCountInString(g) <= 2 || seen[g] {
				continue
			}
			seen[g] = true
			groups = append(groups, g)
		}
	}
	return groups
}

func calculateConfidence(profile *Profile) float64 {
	var score float64

	if len(profile.Ancestry) > 0 {
		score += 0.4

		var totalPercentage float64
		for _, rec := range profile.Ancestry {
			totalPercentage += rec.Percentage
		}
		if totalPercentage >= 90 && totalPercentage <= 110 {
			score += 0.3
		}

		if len(profile.Ancestry) >= 3 {
			score += 0.1
		}
	}

	if len(profile.EthnicGroups) > 0 {
		score += 0.1
	}

	if profile.TestProvider != ProviderUnknown {
		score += 0.1
	}

	return math.Min(score, 1.0)
}
