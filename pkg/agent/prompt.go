package agent

import (
	"errors"
	"regexp"
	"strings"

	"ancestral-travel-be/pkg/ancestry"
	"ancestral-travel-be/pkg/travel/intent"
)

// Agent operating modes. A session runs as DNA specialist once an ancestry
// profile has been processed for it, traditional planner otherwise.
const (
	ModeDNASpecialist      = "DNA_SPECIALIST"
	ModeTraditionalPlanner = "TRADITIONAL_PLANNER"
)

const (
	// last N turns included in the prompt
	maxHistoryMessages = 10

	maxPromptLength = 10000
)

var (
	ErrEmptyPrompt   = errors.New("Prompt não pode estar vazio")
	ErrPromptTooLong = errors.New("Prompt muito longo. Reduza o tamanho da sua mensagem.")
)

const dnaSpecialistTemplate = `Você é um especialista em turismo ancestral. Ajude o usuário a planejar viagens que conectem com suas origens genéticas.

%DNA%

INSTRUÇÕES:
- Crie roteiros que explorem a herança cultural do usuário
- Sugira locais históricos, museus, festivais e experiências autênticas
- Inclua gastronomia tradicional e tradições locais
- Explique as conexões entre os destinos e a ancestralidade
- Seja específico sobre datas, custos e logística`

const traditionalPlannerTemplate = `Você é um planejador de viagens especialista. Crie roteiros personalizados e detalhados.

INSTRUÇÕES:
- Forneça roteiros completos com cronograma
- Inclua custos estimados, hospedagem e transporte
- Sugira atividades baseadas nos interesses do usuário
- Dê dicas práticas sobre documentação, clima e cultura local
- Seja específico sobre datas, horários e reservas necessárias`

// Message is one prior conversation turn.
type Message struct {
	Role    string
	Content string
}

// Context is everything the prompt builder knows about a conversation.
type Context struct {
	AgentMode   string
	Profile     *ancestry.Profile
	Preferences intent.Preferences
	Messages    []Message
}

// BuildPrompt assembles the full contextual prompt: mode template, user
// preferences, recent history and the current message, in that order.
func BuildPrompt(ctx Context, currentMessage string) string {
	var b strings.Builder

	if ctx.AgentMode == ModeDNASpecialist {
		dnaBlock := "DADOS DE ANCESTRALIDADE:\nNenhum dado de DNA disponível"
		if ctx.Profile != nil {
			dnaBlock = ancestry.GenerateSummary(ctx.Profile)
		}
		b.WriteString(strings.Replace(dnaSpecialistTemplate, "%DNA%", dnaBlock, 1))
	} else {
		b.WriteString(traditionalPlannerTemplate)
	}

	prefs := ctx.Preferences
	if prefs.Budget != "" {
		b.WriteString("\n\nORÇAMENTO: " + prefs.Budget)
	}
	if prefs.TravelStyle != "" {
		b.WriteString("\nESTILO DE VIAGEM: " + prefs.TravelStyle)
	}
	if len(prefs.Interests) > 0 {
		b.WriteString("\nINTERESSES: " + strings.Join(prefs.Interests, ", "))
	}
	if len(prefs.PreviousDestinations) > 0 {
		b.WriteString("\nDESTINOS ANTERIORES: " + strings.Join(prefs.PreviousDestinations, ", "))
	}

	if len(ctx.Messages) > 0 {
		b.WriteString("\n\nHISTÓRICO DA CONVERSA:")
		messages := ctx.Messages
		if len(messages) > maxHistoryMessages {
			messages = messages[len(messages)-maxHistoryMessages:]
		}
		for _, msg := range messages {
			role := "ASSISTENTE"
			if msg.Role == "user" {
				role = "USUÁRIO"
			}
			b.WriteString("\n" + role + ": " + msg.Content)
		}
	}

	if currentMessage != "" {
		b.WriteString("\n\nMENSAGEM ATUAL: " + currentMessage)
	}

	b.WriteString("\n\nRESPONDA DE FORMA NATURAL, AMIGÁVEL E DETALHADA.")

	return b.String()
}

var (
	promptSpaceRegex     = regexp.MustCompile(`\s+`)
	promptBlankLineRegex = regexp.MustCompile(`\n\s*\n`)
)

// OptimizePrompt collapses redundant whitespace to cut token usage before the
// prompt is sent to the model.
func OptimizePrompt(prompt string) string {
	prompt = promptSpaceRegex.ReplaceAllString(prompt, " ")
	prompt = promptBlankLineRegex.ReplaceAllString(prompt, "\n")
	return strings.TrimSpace(prompt)
}

// ValidatePrompt bounds what gets sent upstream.
func ValidatePrompt(prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return ErrEmptyPrompt
	}
	if len(prompt) > maxPromptLength {
		return ErrPromptTooLong
	}
	return nil
}
