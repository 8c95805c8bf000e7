package dialogue_test

import (
	"testing"

	"github.com/fwojciec/aivi/dialogue"
	"github.com/stretchr/testify/assert"
)

func TestClassifier_Classify(t *testing.T) {
	t.Parallel()

	c := dialogue.NewClassifier()

	tests := []struct {
		input string
		want  dialogue.Intent
	}{
		{"hello, what is gravity", dialogue.IntentGreeting},
		{"Good morning", dialogue.IntentGreeting},
		{"what is photosynthesis?", dialogue.IntentQuestion},
		{"Explain Newton's laws", dialogue.IntentQuestion},
		{"tell me about volcanoes", dialogue.IntentQuestion},
		{"can you help me", dialogue.IntentHelpRequest},
		{"solve 2 plus 3", dialogue.IntentMathProblem},
		{"I have an exam tomorrow", dialogue.IntentStudyHelp},
		{"my name is ada", dialogue.IntentPersonalInfo},
		{"thank you so much", dialogue.IntentGratitude},
		{"thanks", dialogue.IntentGratitude},
		{"bye for now", dialogue.IntentGoodbye},
		{"I feel frustrated", dialogue.IntentEmotional},
		{"please repeat that", dialogue.IntentClarification},
		{"I don't understand", dialogue.IntentClarification},
		{"this is too difficult", dialogue.IntentEncouragement},
		{"purple elephants", dialogue.IntentGeneral},
		{"", dialogue.IntentGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, c.Classify(tt.input))
		})
	}
}

func TestClassifier_PriorityOrder(t *testing.T) {
	t.Parallel()

	c := dialogue.NewClassifier()

	// Greeting is checked before Question.
	assert.Equal(t, dialogue.IntentGreeting, c.Classify("hello, what is gravity"))
	// Question is checked before HelpRequest and MathProblem.
	assert.Equal(t, dialogue.IntentQuestion, c.Classify("how do I solve this equation"))
	// StudyHelp is checked before Gratitude.
	assert.Equal(t, dialogue.IntentStudyHelp, c.Classify("thanks for the quiz"))
}

func TestClassifier_MatchesWholeWords(t *testing.T) {
	t.Parallel()

	c := dialogue.NewClassifier()

	assert.Equal(t, dialogue.IntentGeneral, c.Classify("this thing"), "hi inside this is not a greeting")
	assert.Equal(t, dialogue.IntentGeneral, c.Classify("somewhat odd"))
}

func TestIntent_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "greeting", dialogue.IntentGreeting.String())
	assert.Equal(t, "question", dialogue.IntentQuestion.String())
	assert.Equal(t, "clarification_request", dialogue.IntentClarification.String())
	assert.Equal(t, "general", dialogue.IntentGeneral.String())
}
