package aivi

import "context"

// Asker answers free-form questions using an AI provider.
type Asker interface {
	// Ask answers question. Preamble is a short system instruction that
	// frames the reply. An empty reply is not an error; callers decide
	// whether it is usable.
	Ask(ctx context.Context, question, preamble string) (string, error)
}

// DefaultPreamble frames AI answers for spoken delivery to students.
const DefaultPreamble = "You are a helpful academic assistant for students with visual impairments. " +
	"Give a clear definition or explanation, key concepts, and a real-world example. " +
	"Keep the answer short, plain and well-structured for audio output."
