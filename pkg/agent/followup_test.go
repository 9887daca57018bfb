package agent

import (
	"strings"
	"testing"

	"ancestral-travel-be/pkg/travel/intent"
)

func TestFollowUpQuestionsDNAMode(t *testing.T) {
	ctx := Context{
		AgentMode: ModeDNASpecialist,
		Profile:   sampleProfile(),
	}

	questions := FollowUpQuestions(ctx)

	if len(questions) != 3 {
		t.Fatalf("len(questions) = %d, want 3", len(questions))
	}
	if !strings.Contains(questions[0], "Ibérica") {
		t.Errorf("first question should mention the top region, got %q", questions[0])
	}
}

func TestFollowUpQuestionsTraditionalMode(t *testing.T) {
	questions := FollowUpQuestions(Context{AgentMode: ModeTraditionalPlanner})

	if len(questions) != 3 {
		t.Fatalf("len(questions) = %d, want 3", len(questions))
	}
	if questions[0] != "Qual é seu orçamento ideal para esta viagem?" {
		t.Errorf("unexpected first question %q", questions[0])
	}
}

func TestFollowUpQuestionsCapped(t *testing.T) {
	// all preference prompts applicable, still capped at 3
	questions := FollowUpQuestions(Context{
		AgentMode:   ModeTraditionalPlanner,
		Preferences: intent.Preferences{},
	})
	if len(questions) > 3 {
		t.Errorf("len(questions) = %d, want <= 3", len(questions))
	}
}
