package agent

const maxFollowUpQuestions = 3

// FollowUpQuestions suggests up to three next questions for the client UI,
// nudging the user toward whatever the conversation still lacks.
func FollowUpQuestions(ctx Context) []string {
	var questions []string

	if ctx.AgentMode == ModeDNASpecialist && ctx.Profile != nil && len(ctx.Profile.Ancestry) > 0 {
		topRegion := ctx.Profile.Ancestry[0].Region
		questions = append(questions,
			"Gostaria de explorar mais sobre "+topRegion+"?",
			"Prefere focar nas tradições culturais ou locais históricos?",
		)
	} else {
		questions = append(questions,
			"Qual é seu orçamento ideal para esta viagem?",
			"Quantos dias você tem disponível?",
			"Prefere um roteiro mais cultural ou de aventura?",
		)
	}

	if ctx.Preferences.Budget == "" {
		questions = append(questions, "Qual faixa de orçamento você tem em mente?")
	}
	if ctx.Preferences.TravelStyle == "" {
		questions = append(questions, "Que tipo de experiência você busca nesta viagem?")
	}

	if len(questions) > maxFollowUpQuestions {
		questions = questions[:maxFollowUpQuestions]
	}
	return questions
}
