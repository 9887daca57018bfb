package ancestry

import (
	"errors"
	"strings"
	"testing"
)

const generaReport = `
RELATÓRIO DE ANCESTRALIDADE GENERA

Composição Ancestral:
Ibérica: 45.2%
Italiana: 25.1%
Alemã: 15.5%
Africana: 8.9%
Indígena Americana: 5.3%

Grupos Étnicos:
Português, Italiano, Alemão
`

func TestParseGeneraReport(t *testing.T) {
	result, err := Parse(generaReport)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	profile := result.Profile

	if profile.TestProvider != ProviderGenera {
		t.Errorf("TestProvider = %q, want %q", profile.TestProvider, ProviderGenera)
	}

	if len(profile.Ancestry) != 5 {
		t.Fatalf("len(Ancestry) = %d, want 5", len(profile.Ancestry))
	}

	// Sorted by percentage, highest first
	if profile.Ancestry[0].Region != "Ibérica" || profile.Ancestry[0].Percentage != 45.2 {
		t.Errorf("top record = %q %.1f, want Ibérica 45.2", profile.Ancestry[0].Region, profile.Ancestry[0].Percentage)
	}
	if profile.Ancestry[4].Region != "Indígena Americana" {
		t.Errorf("last record = %q, want Indígena Americana", profile.Ancestry[4].Region)
	}

	wantCountries := []string{"Portugal", "Espanha"}
	if len(profile.Ancestry[0].Countries) != 2 ||
		profile.Ancestry[0].Countries[0] != wantCountries[0] ||
		profile.Ancestry[0].Countries[1] != wantCountries[1] {
		t.Errorf("Ibérica countries = %v, want %v", profile.Ancestry[0].Countries, wantCountries)
	}

	wantGroups := []string{"Português", "Italiano", "Alemão"}
	if len(profile.EthnicGroups) != len(wantGroups) {
		t.Fatalf("EthnicGroups = %v, want %v", profile.EthnicGroups, wantGroups)
	}
	for i, g := range wantGroups {
		if profile.EthnicGroups[i] != g {
			t.Errorf("EthnicGroups[%d] = %q, want %q", i, profile.EthnicGroups[i], g)
		}
	}

	// 0.4 data + 0.3 sum within [90,110] + 0.1 diversity + 0.1 groups + 0.1 provider
	if profile.Confidence < 0.8 {
		t.Errorf("Confidence = %.2f, want >= 0.8", profile.Confidence)
	}
	if profile.Confidence > 1.0 {
		t.Errorf("Confidence = %.2f, exceeds 1.0", profile.Confidence)
	}

	if len(result.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", result.Warnings)
	}
}

func TestParseDuplicateRegionsFirstWins(t *testing.T) {
	text := `
Ancestry Composition Report Data

Iberian: 40.0%
iberian: 12.0%
Italian: 30.0%
`
	result, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	if len(result.Profile.Ancestry) != 2 {
		t.Fatalf("len(Ancestry) = %d, want 2 (duplicate folded)", len(result.Profile.Ancestry))
	}
	if result.Profile.Ancestry[0].Percentage != 40.0 {
		t.Errorf("kept percentage = %.1f, want 40.0 (first occurrence)", result.Profile.Ancestry[0].Percentage)
	}
}

func TestParsePercentFirstOrder(t *testing.T) {
	text := `
Relatório com percentuais antes das regiões para validação

40.5% Iberian
28.3% Italian
`
	result, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result.Profile.Ancestry) < 2 {
		t.Fatalf("len(Ancestry) = %d, want >= 2", len(result.Profile.Ancestry))
	}
}

func TestParseRejectsOutOfRangePercentages(t *testing.T) {
	text := `
Relatório de composição ancestral com valores inválidos misturados

Ibérica: 150%
Italiana: 30.0%
`
	result, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	for _, rec := range result.Profile.Ancestry {
		if rec.Percentage > 100 || rec.Percentage <= 0 {
			t.Errorf("record %q has out-of-range percentage %.1f", rec.Region, rec.Percentage)
		}
	}
}

func TestParseShortText(t *testing.T) {
	_, err := Parse("muito curto")
	if !errors.Is(err, ErrTextTooShort) {
		t.Errorf("err = %v, want ErrTextTooShort", err)
	}
}

func TestParseNoAncestryData(t *testing.T) {
	_, err := Parse(strings.Repeat("sem dados de ancestralidade aqui ", 5))
	if !errors.Is(err, ErrNoAncestryData) {
		t.Errorf("err = %v, want ErrNoAncestryData", err)
	}
}

func TestParseSectionHeadingIsNotAnEthnicGroup(t *testing.T) {
	text := `
MyHeritage DNA Results

Ethnicity Breakdown:
Iberian Peninsula: 40.5%
Italian: 28.3%
Germanic Europe: 18.2%
Sub-Saharan Africa: 7.8%
Native American: 5.2%
`
	result, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result.Profile.EthnicGroups) != 0 {
		t.Errorf("EthnicGroups = %v, want none for a report without a group list", result.Profile.EthnicGroups)
	}
	// 0.4 data + 0.3 sum within [90,110] + 0.1 diversity + 0.1 provider
	if result.Profile.Confidence < 0.89 || result.Profile.Confidence > 0.91 {
		t.Errorf("Confidence = %.2f, want 0.9", result.Profile.Confidence)
	}
}

func TestParseUnknownProviderWarns(t *testing.T) {
	text := `
Relatório de ancestralidade sem identificação de laboratório

Ibérica: 60.0%
Italiana: 40.0%
`
	result, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.Profile.TestProvider != ProviderUnknown {
		t.Errorf("TestProvider = %q, want unknown", result.Profile.TestProvider)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Provedor") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unknown-provider warning, got %v", result.Warnings)
	}
}

func TestGenerateSummary(t *testing.T) {
	result, err := Parse(generaReport)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}

	summary := GenerateSummary(result.Profile)

	for _, want := range []string{
		"DADOS DE ANCESTRALIDADE (GENERA",
		"COMPOSIÇÃO ANCESTRAL:",
		"• Ibérica: 45.2% (Portugal, Espanha)",
		"GRUPOS ÉTNICOS: Português, Italiano, Alemão",
		"PAÍSES PRIORITÁRIOS PARA TURISMO ANCESTRAL:",
		"CRIE ROTEIROS que conectem o usuário com suas origens Ibérica",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q\nsummary:\n%s", want, summary)
		}
	}
}
