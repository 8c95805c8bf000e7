// Package dialogue classifies free-form utterances and answers them with
// short spoken-style replies.
package dialogue

import (
	"strings"

	"github.com/fwojciec/aivi"
)

// Intent is the purpose of an utterance.
type Intent int

// Intents in classification priority order. The first intent whose keywords
// match wins, so the order is part of the classifier's behavior.
const (
	IntentGreeting Intent = iota
	IntentQuestion
	IntentHelpRequest
	IntentMathProblem
	IntentStudyHelp
	IntentPersonalInfo
	IntentGratitude
	IntentGoodbye
	IntentEmotional
	IntentClarification
	IntentEncouragement
	IntentGeneral
)

func (i Intent) String() string {
	switch i {
	case IntentGreeting:
		return "greeting"
	case IntentQuestion:
		return "question"
	case IntentHelpRequest:
		return "help_request"
	case IntentMathProblem:
		return "math_problem"
	case IntentStudyHelp:
		return "study_help"
	case IntentPersonalInfo:
		return "personal_info"
	case IntentGratitude:
		return "gratitude"
	case IntentGoodbye:
		return "goodbye"
	case IntentEmotional:
		return "emotional"
	case IntentClarification:
		return "clarification_request"
	case IntentEncouragement:
		return "encouragement_needed"
	default:
		return "general"
	}
}

var intentKeywords = []struct {
	intent   Intent
	keywords []string
}{
	{IntentGreeting, []string{"hello", "hi", "hey", "good morning", "good afternoon", "good evening"}},
	{IntentQuestion, []string{
		"what", "how", "when", "where", "why", "who", "which", "can you explain",
		"explain", "define", "meaning of", "tell me about", "what is", "how does",
	}},
	{IntentHelpRequest, []string{"help", "assist", "support", "guide", "show me", "teach me"}},
	{IntentMathProblem, []string{"solve", "calculate", "formula", "equation", "math", "mathematics"}},
	{IntentStudyHelp, []string{"study", "learn", "practice", "quiz", "test", "exam", "homework"}},
	{IntentPersonalInfo, []string{"i am", "my name is", "i like", "i prefer", "i need", "i want"}},
	{IntentGratitude, []string{"thank", "thanks", "appreciate", "grateful"}},
	{IntentGoodbye, []string{"bye", "goodbye", "see you", "farewell", "exit", "quit"}},
	{IntentEmotional, []string{"frustrated", "confused", "worried", "happy", "excited", "sad", "angry"}},
	{IntentClarification, []string{"repeat", "again", "clarify", "explain again", "i don't understand"}},
	{IntentEncouragement, []string{"difficult", "hard", "struggling", "can't understand", "give up"}},
}

// Classifier maps utterances to intents by keyword membership. Keywords
// match whole words; multi-word keywords match consecutive words.
type Classifier struct {
	rules []rule
}

type rule struct {
	intent  Intent
	phrases []string
}

// NewClassifier returns a Classifier with the built-in keyword table.
func NewClassifier() *Classifier {
	c := &Classifier{}
	for _, k := range intentKeywords {
		r := rule{intent: k.intent}
		for _, kw := range k.keywords {
			r.phrases = append(r.phrases, pad(kw))
		}
		c.rules = append(c.rules, r)
	}
	return c
}

// Classify returns the intent of input. Input matching no keyword is
// IntentGeneral.
func (c *Classifier) Classify(input string) Intent {
	text := pad(input)
	for _, r := range c.rules {
		for _, p := range r.phrases {
			if strings.Contains(text, p) {
				return r.intent
			}
		}
	}
	return IntentGeneral
}

// pad renders s as space-separated tokens with a leading and trailing
// space, so that substring tests match on word boundaries.
func pad(s string) string {
	return " " + strings.Join(aivi.Tokenize(s), " ") + " "
}
