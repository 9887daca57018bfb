package intent

import (
	"reflect"
	"testing"
)

func TestExtractPreferences(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want Preferences
	}{
		{
			name: "budget with unit",
			msg:  "Meu orçamento é de 10 mil para a viagem",
			want: Preferences{Budget: "10 mil"},
		},
		{
			name: "travel style relaxante",
			msg:  "Procuro algo bem tranquilo",
			want: Preferences{TravelStyle: "relaxante"},
		},
		{
			name: "travel style cultural via museu",
			msg:  "Adoro visitar museu e centros antigos",
			want: Preferences{TravelStyle: "cultural"},
		},
		{
			name: "multiple interests",
			msg:  "Gosto de praia, montanha e festa",
			want: Preferences{Interests: []string{"praias", "montanhas", "vida noturna"}},
		},
		{
			name: "previous destinations",
			msg:  "Já visitei Portugal e Espanha. Quero algo novo",
			want: Preferences{PreviousDestinations: []string{"portugal e espanha"}},
		},
		{
			name: "nothing extracted",
			msg:  "Olá, tudo bem?",
			want: Preferences{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractPreferences(tt.msg)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractPreferences(%q) = %+v, want %+v", tt.msg, got, tt.want)
			}
		})
	}
}

func TestPreferencesIsEmpty(t *testing.T) {
	if !(Preferences{}).IsEmpty() {
		t.Error("zero Preferences should be empty")
	}
	if (Preferences{Budget: "5 mil"}).IsEmpty() {
		t.Error("Preferences with budget should not be empty")
	}
}
