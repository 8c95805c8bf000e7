// Package gemini provides the AI collaborator backed by Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fwojciec/aivi"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// maxNotes caps the local records included as grounding.
const maxNotes = 3

// Ensure Asker implements aivi.Asker at compile time.
var _ aivi.Asker = (*Asker)(nil)

// Asker implements aivi.Asker using Google Gemini.
type Asker struct {
	client *genai.Client
	notes  aivi.KnowledgeService

	// Model defaults to DefaultModel.
	Model string

	Logger *slog.Logger
}

// NewAsker creates a new Asker. Notes is optional; when set, the closest
// local records are sent along with the question.
func NewAsker(client *genai.Client, notes aivi.KnowledgeService) *Asker {
	return &Asker{client: client, notes: notes, Model: DefaultModel}
}

// Ask answers a question for spoken delivery.
func (a *Asker) Ask(ctx context.Context, question, preamble string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", aivi.Errorf(aivi.EINVALID, "question required")
	}
	if a.client == nil {
		return "", aivi.Errorf(aivi.EUNAVAILABLE, "gemini client not configured")
	}

	result, err := a.client.Models.GenerateContent(ctx, a.Model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(a.RelatedNotes(ctx, question), question)}},
		}},
		BuildConfig(preamble),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", aivi.Errorf(aivi.EINTERNAL, "gemini returned nil result")
	}

	return strings.TrimSpace(result.Text()), nil
}

// RelatedNotes returns the closest local records to question, at most
// three. A store failure is logged and yields no notes.
func (a *Asker) RelatedNotes(ctx context.Context, question string) []*aivi.KnowledgeRecord {
	if a.notes == nil {
		return nil
	}
	scored, err := a.notes.SearchRecords(ctx, question, "")
	if err != nil {
		a.logger().Warn("grounding notes", "question", question, "err", err)
		return nil
	}
	var related []*aivi.KnowledgeRecord
	for i := 0; i < len(scored) && i < maxNotes; i++ {
		related = append(related, scored[i].Record)
	}
	return related
}

func (a *Asker) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return a.Logger
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
// An empty preamble falls back to aivi.DefaultPreamble.
func BuildConfig(preamble string) *genai.GenerateContentConfig {
	if preamble == "" {
		preamble = aivi.DefaultPreamble
	}
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: preamble}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt from the question and any related
// local notes.
func BuildUserPrompt(notes []*aivi.KnowledgeRecord, question string) string {
	var sb strings.Builder
	if len(notes) > 0 {
		sb.WriteString("<notes>\n")
		for i, n := range notes {
			sb.WriteString("<note>\n")
			fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
			fmt.Fprintf(&sb, "<question>%s</question>\n", n.Question)
			fmt.Fprintf(&sb, "<answer>%s</answer>\n", n.Answer)
			sb.WriteString("</note>\n")
		}
		sb.WriteString("</notes>\n\n")
	}
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
