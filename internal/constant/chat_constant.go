package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"
)

const (
	// FreeTierDailyLimit is the default free-tier message quota per calendar day.
	FreeTierDailyLimit = 5

	// MaxContextMessages is how many persisted messages are loaded into a context.
	MaxContextMessages = 20

	// MaxMessageLength rejects oversized chat messages before any external call.
	MaxMessageLength = 5000

	// MaxUploadSizeBytes is the ancestry document size ceiling.
	MaxUploadSizeBytes = 10 * 1024 * 1024
)

// User-facing failure messages. Kept specific per failure kind, in the
// product's language.
const (
	MsgMessageRequired   = "Mensagem é obrigatória"
	MsgMessageTooLong    = "Mensagem muito longa. Máximo 5000 caracteres."
	MsgDailyLimitReached = "Limite diário de mensagens atingido. Faça upgrade para acesso ilimitado."
	MsgUnsupportedFormat = "Formato não suportado. Apenas PDFs são aceitos."
	MsgFileTooLarge      = "Arquivo muito grande. Máximo 10MB."
	MsgAncestryFailed    = "Erro ao processar arquivo de DNA"
)
