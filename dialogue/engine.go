package dialogue

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/fwojciec/aivi"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// stemWords are dropped from questions before the lookup.
var stemWords = []string{"what", "how", "when", "where", "why", "who", "which", "define", "explain"}

// Engine answers utterances within a session.
type Engine struct {
	Classifier *Classifier

	// Answers resolves questions through the fallback lookup.
	Answers  aivi.AnswerService
	Strategy aivi.Strategy

	// Knowledge serves local-only lookups for math and unclassified input.
	Knowledge aivi.KnowledgeService

	Speaker aivi.Speaker
	Rand    *rand.Rand
	Logger  *slog.Logger
	Now     func() time.Time
}

// NewEngine returns an Engine with the built-in classifier and a
// time-seeded random source.
func NewEngine(answers aivi.AnswerService, knowledge aivi.KnowledgeService) *Engine {
	seed := uint64(time.Now().UnixNano())
	return &Engine{
		Classifier: NewClassifier(),
		Answers:    answers,
		Knowledge:  knowledge,
		Rand:       rand.New(rand.NewPCG(seed, seed>>1)),
		Now:        time.Now,
	}
}

func (e *Engine) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// Respond classifies input, builds a reply, records the exchange in s and
// speaks the reply. Speech failures are logged, not returned.
func (e *Engine) Respond(ctx context.Context, s *aivi.Session, input string) (string, Intent) {
	input = strings.TrimSpace(input)
	if input == "" {
		return emptyInputReply, IntentGeneral
	}
	if s == nil {
		s = aivi.NewSession()
	}

	intent := e.Classifier.Classify(input)
	reply := e.reply(ctx, s, input, intent)

	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	s.Record(aivi.Utterance{Input: input, Response: reply, Intent: intent.String(), At: now()})

	e.speak(ctx, reply)
	return reply, intent
}

func (e *Engine) reply(ctx context.Context, s *aivi.Session, input string, intent Intent) string {
	switch intent {
	case IntentGreeting:
		return e.greet(s)
	case IntentQuestion:
		return e.answerQuestion(ctx, s, input)
	case IntentHelpRequest:
		return e.pick(templates[IntentHelpRequest])
	case IntentMathProblem:
		return e.math(ctx, input)
	case IntentStudyHelp:
		return e.pick(templates[IntentStudyHelp]) + e.pick(studyEncouragements)
	case IntentPersonalInfo:
		return e.personal(s, input)
	case IntentGratitude:
		return e.pick(templates[IntentGratitude])
	case IntentGoodbye:
		return e.goodbye(s)
	case IntentEmotional:
		return emotional(input)
	case IntentClarification:
		return clarify(s)
	case IntentEncouragement:
		return e.pick(templates[IntentEncouragement])
	default:
		return e.general(ctx, input)
	}
}

func (e *Engine) greet(s *aivi.Session) string {
	s.GreetingCount++
	g := e.pick(templates[IntentGreeting])
	if s.Name != "" {
		g = strings.Replace(g, "Hello!", "Hello "+s.Name+"!", 1)
		g = strings.Replace(g, "Hi there!", "Hi "+s.Name+"!", 1)
	}
	return g
}

func (e *Engine) goodbye(s *aivi.Session) string {
	g := e.pick(templates[IntentGoodbye])
	if s.Name != "" {
		g = strings.Replace(g, "Goodbye!", "Goodbye, "+s.Name+"!", 1)
		g = strings.Replace(g, "See you later!", "See you later, "+s.Name+"!", 1)
	}
	return g
}

func (e *Engine) answerQuestion(ctx context.Context, s *aivi.Session, input string) string {
	topic := QuestionTopic(input)
	s.QuestionsAsked++

	var ans *aivi.Answer
	if e.Answers != nil {
		var err error
		ans, err = e.Answers.SearchFor(ctx, topic, input, e.Strategy)
		if err != nil {
			e.logger().Warn("answer question", "topic", topic, "err", err)
		}
	}
	if !ans.Found() {
		if ans != nil {
			e.logger().Debug("no answer", "topic", topic, "err", ans.Err())
		}
		return fmt.Sprintf(unknownTopicReply, topic)
	}

	s.AddTopic(topic)
	return "Great question! " + ans.Text + questionFollowUp
}

// QuestionTopic strips question stems and short words from input. Input made
// only of stems is returned lower-cased.
func QuestionTopic(input string) string {
	var words []string
	for _, w := range aivi.Tokenize(input) {
		if len(w) <= 2 || slices.Contains(stemWords, w) {
			continue
		}
		words = append(words, w)
	}
	if len(words) == 0 {
		return aivi.NormalizeQuery(input)
	}
	return strings.Join(words, " ")
}

func (e *Engine) math(ctx context.Context, input string) string {
	lower := strings.ToLower(input)
	for _, op := range []string{"+", "-", "*", "/", "="} {
		if strings.Contains(lower, op) {
			return mathOperationReply
		}
	}
	words := strings.Fields(lower)
	for _, op := range []string{"plus", "minus", "times", "divided"} {
		if slices.Contains(words, op) {
			return mathOperationReply
		}
	}
	if text, ok := e.lookupLocal(ctx, input); ok {
		return "Here's what I know about that: " + text
	}
	return mathTopicsReply
}

func (e *Engine) personal(s *aivi.Session, input string) string {
	lower := strings.ToLower(input)
	if _, rest, ok := strings.Cut(lower, "my name is"); ok {
		if fields := aivi.Tokenize(rest); len(fields) > 0 {
			s.Name = cases.Title(language.English).String(fields[0])
			return fmt.Sprintf(nameReply, s.Name)
		}
	}
	text := pad(lower)
	switch {
	case strings.Contains(text, " i like ") || strings.Contains(text, " i prefer "):
		return preferenceReply
	case strings.Contains(text, " i need ") || strings.Contains(text, " i want "):
		return needReply
	}
	return personalReply
}

func emotional(input string) string {
	text := pad(input)
	has := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(text, " "+w+" ") {
				return true
			}
		}
		return false
	}
	switch {
	case has("frustrated", "confused", "worried"):
		return troubledReply
	case has("happy", "excited"):
		return positiveReply
	case has("sad", "angry"):
		return downReply
	}
	return supportReply
}

func clarify(s *aivi.Session) string {
	if n := len(s.History); n > 0 && s.History[n-1].Response != "" {
		return fmt.Sprintf(clarifyReply, s.History[n-1].Response)
	}
	return clarifyEmptyReply
}

func (e *Engine) general(ctx context.Context, input string) string {
	if text, ok := e.lookupLocal(ctx, input); ok {
		return "I found this information: " + text + generalFollowUp
	}
	return e.pick(templates[IntentGeneral])
}

// lookupLocal returns the answer of the best local record for query.
func (e *Engine) lookupLocal(ctx context.Context, query string) (string, bool) {
	if e.Knowledge == nil {
		return "", false
	}
	results, err := e.Knowledge.SearchRecords(ctx, query, "")
	if err != nil {
		e.logger().Warn("local lookup", "query", query, "err", err)
		return "", false
	}
	if len(results) == 0 {
		return "", false
	}
	return results[0].Record.Answer, true
}

func (e *Engine) pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	if e.Rand == nil {
		return pool[0]
	}
	return pool[e.Rand.IntN(len(pool))]
}

func (e *Engine) speak(ctx context.Context, text string) {
	if e.Speaker == nil {
		return
	}
	if err := e.Speaker.Speak(ctx, text); err != nil {
		e.logger().Warn("speak", "err", err)
	}
}
