package extract

import (
	"context"
	"strings"
)

// SimulatedExtractor fakes PDF text extraction by sniffing the filename for a
// known lab name and returning a canned report. It stands in until a real
// extraction backend is wired.
type SimulatedExtractor struct{}

func NewSimulatedExtractor() *SimulatedExtractor {
	return &SimulatedExtractor{}
}

var _ TextExtractor = &SimulatedExtractor{}

func (e *SimulatedExtractor) ExtractPlainText(ctx context.Context, filename, mimeType string, data []byte) (string, error) {
	name := strings.ToLower(filename)

	switch {
	case strings.Contains(name, "genera"):
		return generaSampleText, nil
	case strings.Contains(name, "myheritage"):
		return myHeritageSampleText, nil
	case strings.Contains(name, "23andme"):
		return twentyThreeAndMeSampleText, nil
	}

	return generaSampleText, nil
}

const generaSampleText = `
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

const myHeritageSampleText = `
MyHeritage DNA Results

Ethnicity Breakdown:
Iberian Peninsula: 40.5%
Italian: 28.3%
Germanic Europe: 18.2%
Sub-Saharan Africa: 7.8%
Native American: 5.2%
`

const twentyThreeAndMeSampleText = `
23andMe Ancestry Composition

Recent Ancestry in the Americas:
Spanish & Portuguese: 42.1%
Italian: 26.7%
German & French: 16.4%
Sub-Saharan African: 8.5%
Native American: 6.3%
`
