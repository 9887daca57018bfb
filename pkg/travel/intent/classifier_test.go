package intent

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		message        string
		wantIntent     string
		wantConfidence float64
	}{
		{
			name:           "planning keyword",
			message:        "Quero planejar uma viagem para Portugal",
			wantIntent:     IntentPlanning,
			wantConfidence: 0.9,
		},
		{
			name:           "budget question",
			message:        "Quanto custa uma semana em Lisboa?",
			wantIntent:     IntentBudgetQuestion,
			wantConfidence: 0.8,
		},
		{
			name:           "destination info",
			message:        "Me fale sobre a Itália",
			wantIntent:     IntentDestinationInfo,
			wantConfidence: 0.7,
		},
		{
			name:           "modify itinerary",
			message:        "Pode alterar o segundo dia do passeio?",
			wantIntent:     IntentModifyItinerary,
			wantConfidence: 0.6,
		},
		{
			name:           "general chat fallback",
			message:        "Olá, tudo bem?",
			wantIntent:     IntentGeneralChat,
			wantConfidence: 0.3,
		},
		{
			// planning matches before budget even when both keyword sets hit
			name:           "planning wins over budget",
			message:        "Quero planejar uma viagem, quanto custa?",
			wantIntent:     IntentPlanning,
			wantConfidence: 0.9,
		},
		{
			// "sobre" alone is enough for destination info
			name:           "bare sobre keyword",
			message:        "Algo sobre praias do nordeste",
			wantIntent:     IntentDestinationInfo,
			wantConfidence: 0.7,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.message)
			if got.Intent != tt.wantIntent {
				t.Errorf("Intent = %q, want %q", got.Intent, tt.wantIntent)
			}
			if got.Confidence != tt.wantConfidence {
				t.Errorf("Confidence = %.2f, want %.2f", got.Confidence, tt.wantConfidence)
			}
		})
	}
}

func TestClassifyPlanningEntities(t *testing.T) {
	got := Classify("Quero planejar uma viagem para Portugal com 5 mil reais para 2 pessoas")

	if got.Intent != IntentPlanning {
		t.Fatalf("Intent = %q, want planning", got.Intent)
	}
	if got.Entities.Budget != "5" {
		t.Errorf("Budget = %q, want \"5\"", got.Entities.Budget)
	}
	if got.Entities.Travelers != 2 {
		t.Errorf("Travelers = %d, want 2", got.Entities.Travelers)
	}
	if got.Entities.Destination != "Portugal" {
		t.Errorf("Destination = %q, want Portugal", got.Entities.Destination)
	}
}

func TestClassifyPlanningDefaultsTravelers(t *testing.T) {
	got := Classify("Preciso de um roteiro pela Espanha")

	if got.Entities.Travelers != 1 {
		t.Errorf("Travelers = %d, want default 1", got.Entities.Travelers)
	}
	if got.Entities.Budget != "" {
		t.Errorf("Budget = %q, want empty", got.Entities.Budget)
	}
}

func TestExtractDestination(t *testing.T) {
	tests := []struct {
		message string
		want    string
	}{
		{"Quero conhecer Portugal no verão", "Portugal"},
		{"me fale sobre lisboa", "Lisboa"},
		{"um mês na Tailândia", "Tailândia"},
		{"sem destino nenhum aqui", ""},
		// countries are listed before cities
		{"de Lisboa até o Porto por Portugal", "Portugal"},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			got := ExtractDestination(tt.message)
			if got != tt.want {
				t.Errorf("ExtractDestination(%q) = %q, want %q", tt.message, got, tt.want)
			}
		})
	}
}
