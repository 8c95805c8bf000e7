package aivi

import (
	"cmp"
	"slices"
	"time"
)

// MenuLevel is the depth of the navigation menu.
type MenuLevel int

// Menu levels, shallowest first.
const (
	MenuMain MenuLevel = iota
	MenuSubject
	MenuTopic
	MenuContent
)

func (l MenuLevel) String() string {
	switch l {
	case MenuSubject:
		return "subject"
	case MenuTopic:
		return "topic"
	case MenuContent:
		return "content"
	default:
		return "main"
	}
}

// MaxHistory caps the number of utterances a session keeps.
const MaxHistory = 50

// TopicRef is a view over one knowledge record within a subject.
type TopicRef struct {
	RecordID   string   `json:"recordId"`
	Title      string   `json:"title"`
	Content    string   `json:"content"`
	Keywords   []string `json:"keywords"`
	Confidence float64  `json:"confidence"`
}

// Utterance is one exchange in a session.
type Utterance struct {
	Input    string    `json:"input"`
	Response string    `json:"response"`
	Intent   string    `json:"intent,omitempty"`
	At       time.Time `json:"at"`
}

// Session holds the state of one conversation. It is owned by a single
// goroutine and never persisted.
//
// MenuLevel == MenuContent implies CurrentTopic != nil.
// MenuLevel >= MenuSubject implies CurrentSubject != "".
type Session struct {
	MenuLevel         MenuLevel
	CurrentSubject    string
	CurrentTopic      *TopicRef
	AvailableSubjects []string
	AvailableTopics   []TopicRef
	History           []Utterance

	// Personalization. All optional.
	Name            string
	GreetingCount   int
	QuestionsAsked  int
	TopicsDiscussed []string
	IntentCounts    map[string]int
}

// NewSession returns a session at the main menu.
func NewSession() *Session {
	return &Session{IntentCounts: make(map[string]int)}
}

// Reset returns the session to the main menu. Personalization and history
// are kept.
func (s *Session) Reset() {
	s.MenuLevel = MenuMain
	s.CurrentSubject = ""
	s.CurrentTopic = nil
	s.AvailableTopics = nil
}

// Record appends an utterance, dropping the oldest beyond MaxHistory.
func (s *Session) Record(u Utterance) {
	s.History = append(s.History, u)
	if n := len(s.History) - MaxHistory; n > 0 {
		s.History = slices.Delete(s.History, 0, n)
	}
	if u.Intent != "" {
		if s.IntentCounts == nil {
			s.IntentCounts = make(map[string]int)
		}
		s.IntentCounts[u.Intent]++
	}
}

// AddTopic remembers a discussed topic once.
func (s *Session) AddTopic(topic string) {
	if topic == "" || slices.Contains(s.TopicsDiscussed, topic) {
		return
	}
	s.TopicsDiscussed = append(s.TopicsDiscussed, topic)
}

// SessionSummary describes a session for a closing message.
type SessionSummary struct {
	Exchanges       int
	QuestionsAsked  int
	TopicsDiscussed []string
	TopIntent       string
}

// Summary returns counters for the session. TopIntent is the most frequent
// intent, ties broken by name.
func (s *Session) Summary() SessionSummary {
	sum := SessionSummary{
		Exchanges:       len(s.History),
		QuestionsAsked:  s.QuestionsAsked,
		TopicsDiscussed: slices.Clone(s.TopicsDiscussed),
	}
	type kv struct {
		intent string
		n      int
	}
	counts := make([]kv, 0, len(s.IntentCounts))
	for k, v := range s.IntentCounts {
		counts = append(counts, kv{k, v})
	}
	slices.SortFunc(counts, func(a, b kv) int {
		if a.n != b.n {
			return cmp.Compare(b.n, a.n)
		}
		return cmp.Compare(a.intent, b.intent)
	})
	if len(counts) > 0 {
		sum.TopIntent = counts[0].intent
	}
	return sum
}
