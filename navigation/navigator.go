package navigation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/aivi"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// HelpText lists the spoken commands.
const HelpText = "You can say: subjects, learn and a subject name, select and a topic number, " +
	"repeat, back, search and a question, help, or exit."

// Navigator moves a session through the subject and topic menu.
type Navigator struct {
	Knowledge aivi.KnowledgeService
	Answers   aivi.AnswerService
	Strategy  aivi.Strategy
	Speaker   aivi.Speaker
	Logger    *slog.Logger
	Now       func() time.Time
}

// NewNavigator returns a Navigator reading menus from knowledge and
// delegating searches to answers.
func NewNavigator(knowledge aivi.KnowledgeService, answers aivi.AnswerService) *Navigator {
	return &Navigator{
		Knowledge: knowledge,
		Answers:   answers,
		Now:       time.Now,
	}
}

func (n *Navigator) logger() *slog.Logger {
	if n.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return n.Logger
}

// Handle runs cmd against s, records the exchange and speaks the reply.
// On error the reply is the error's user-facing message and the menu state
// is unchanged.
func (n *Navigator) Handle(ctx context.Context, s *aivi.Session, cmd Command) (string, error) {
	var reply string
	var err error
	switch cmd.Kind {
	case CommandListSubjects:
		reply, err = n.ListSubjects(ctx, s)
	case CommandLearn:
		reply, err = n.Learn(ctx, s, cmd.Arg)
	case CommandSelect:
		reply, err = n.Select(s, cmd.Arg)
	case CommandRepeat:
		reply, err = n.Repeat(ctx, s)
	case CommandBack:
		reply = n.Back(s)
	case CommandHelp:
		reply = n.Help()
	case CommandSearch:
		reply, err = n.Search(ctx, cmd.Arg)
	case CommandExit:
		reply = n.Exit(s)
	default:
		err = aivi.Errorf(aivi.EINVALID, "I didn't recognize that command. Say help to hear the options.")
	}
	if err != nil {
		reply = aivi.ErrorMessage(err)
	}

	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	s.Record(aivi.Utterance{Input: strings.TrimSpace(cmd.Kind.String() + " " + cmd.Arg), Response: reply, At: now()})

	if n.Speaker != nil {
		if serr := n.Speaker.Speak(ctx, reply); serr != nil {
			n.logger().Warn("speak", "err", serr)
		}
	}
	return reply, err
}

// ListSubjects loads the subject list without changing the menu level.
func (n *Navigator) ListSubjects(ctx context.Context, s *aivi.Session) (string, error) {
	subjects, err := n.Knowledge.Categories(ctx)
	if err != nil {
		n.logger().Error("list subjects", "err", err)
		return "", aivi.Errorf(aivi.EUNAVAILABLE, "I couldn't load the subjects right now.")
	}
	s.AvailableSubjects = subjects
	return n.subjectMenu(s), nil
}

// Learn opens subject. The name matches an available subject when either
// contains the other, ignoring case. A subject without topics is reported
// and the menu level is kept.
func (n *Navigator) Learn(ctx context.Context, s *aivi.Session, name string) (string, error) {
	name = aivi.NormalizeQuery(name)
	if name == "" {
		return "", aivi.Errorf(aivi.EINVALID, "Which subject? Say learn and a subject name.")
	}
	if s.MenuLevel > aivi.MenuSubject {
		return "", aivi.Errorf(aivi.EINVALID, "Say back to leave this topic before choosing a subject.")
	}
	if len(s.AvailableSubjects) == 0 {
		if _, err := n.ListSubjects(ctx, s); err != nil {
			return "", err
		}
	}

	subject, ok := matchSubject(s.AvailableSubjects, name)
	if !ok {
		return "", aivi.Errorf(aivi.ENOTFOUND, "I couldn't find the subject %s. %s", name, n.subjectMenu(s))
	}

	topics, err := n.topics(ctx, subject)
	if err != nil {
		return "", err
	}
	if len(topics) == 0 {
		return "", aivi.Errorf(aivi.ENOTFOUND, "I don't have topics for %s yet. Say search and a question to look it up online.", titleCase(subject))
	}

	s.CurrentSubject = subject
	s.AvailableTopics = topics
	s.CurrentTopic = nil
	s.MenuLevel = aivi.MenuSubject
	return n.topicMenu(s), nil
}

func matchSubject(subjects []string, name string) (string, bool) {
	for _, subj := range subjects {
		lower := strings.ToLower(subj)
		if strings.Contains(lower, name) || strings.Contains(name, lower) {
			return subj, true
		}
	}
	return "", false
}

// topics lists the records of subject, one per distinct question.
func (n *Navigator) topics(ctx context.Context, subject string) ([]aivi.TopicRef, error) {
	recs, err := n.Knowledge.FindRecords(ctx, aivi.RecordFilter{Category: &subject})
	if err != nil {
		n.logger().Error("list topics", "subject", subject, "err", err)
		return nil, aivi.Errorf(aivi.EUNAVAILABLE, "I couldn't load the topics right now.")
	}
	seen := make(map[string]bool, len(recs))
	var topics []aivi.TopicRef
	for _, rec := range recs {
		key := aivi.NormalizeQuery(rec.Question)
		if seen[key] {
			continue
		}
		seen[key] = true
		topics = append(topics, rec.Topic())
	}
	return topics, nil
}

// Select opens a topic of the current subject by 1-based index, number
// word or title substring, and delivers its content.
func (n *Navigator) Select(s *aivi.Session, choice string) (string, error) {
	if s.MenuLevel < aivi.MenuSubject || len(s.AvailableTopics) == 0 {
		return "", aivi.Errorf(aivi.EINVALID, "Choose a subject first. Say learn and a subject name.")
	}
	choice = aivi.NormalizeQuery(choice)
	if choice == "" {
		return "", aivi.Errorf(aivi.EINVALID, "Which topic? Say select and a number between 1 and %d.", len(s.AvailableTopics))
	}

	idx := -1
	if i, ok := parseIndex(choice); ok {
		if i < 1 || i > len(s.AvailableTopics) {
			return "", aivi.Errorf(aivi.EINVALID, "Please choose a number between 1 and %d.", len(s.AvailableTopics))
		}
		idx = i - 1
	} else {
		for i, t := range s.AvailableTopics {
			if strings.Contains(strings.ToLower(t.Title), choice) {
				idx = i
				break
			}
		}
	}
	if idx < 0 {
		return "", aivi.Errorf(aivi.EINVALID, "I couldn't find the topic %s. Say repeat to hear the topics again.", choice)
	}

	topic := s.AvailableTopics[idx]
	s.CurrentTopic = &topic
	s.MenuLevel = aivi.MenuContent
	s.AddTopic(topic.Title)
	return content(&topic), nil
}

// Repeat redelivers the current level without transitioning.
func (n *Navigator) Repeat(ctx context.Context, s *aivi.Session) (string, error) {
	switch s.MenuLevel {
	case aivi.MenuContent, aivi.MenuTopic:
		if s.CurrentTopic != nil {
			return content(s.CurrentTopic), nil
		}
		return n.topicMenu(s), nil
	case aivi.MenuSubject:
		return n.topicMenu(s), nil
	default:
		if len(s.AvailableSubjects) == 0 {
			return n.ListSubjects(ctx, s)
		}
		return n.subjectMenu(s), nil
	}
}

// Back moves one level up. At the main menu it does nothing.
func (n *Navigator) Back(s *aivi.Session) string {
	switch s.MenuLevel {
	case aivi.MenuContent, aivi.MenuTopic:
		s.CurrentTopic = nil
		s.MenuLevel = aivi.MenuSubject
		return n.topicMenu(s)
	case aivi.MenuSubject:
		s.CurrentSubject = ""
		s.AvailableTopics = nil
		s.MenuLevel = aivi.MenuMain
		return "Main menu. " + n.subjectMenu(s)
	default:
		return "You are at the main menu. " + HelpText
	}
}

// Help returns the command overview.
func (n *Navigator) Help() string {
	return HelpText
}

// Search answers query through the fallback lookup. The menu is untouched.
func (n *Navigator) Search(ctx context.Context, query string) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", aivi.Errorf(aivi.EINVALID, "What should I search for? Say search and a question.")
	}
	if n.Answers == nil {
		return "", aivi.Errorf(aivi.EUNAVAILABLE, "Search is not available right now.")
	}
	ans, err := n.Answers.Search(ctx, query, n.Strategy)
	if err != nil {
		return "", err
	}
	if !ans.Found() {
		n.logger().Debug("search exhausted", "query", query, "err", ans.Err())
		return "", aivi.Errorf(aivi.ENOTFOUND, "I couldn't find anything about %s. Try another subject.", query)
	}
	return ans.Text, nil
}

// Exit resets the session to the main menu.
func (n *Navigator) Exit(s *aivi.Session) string {
	s.Reset()
	return "Leaving the learning menu. Goodbye!"
}

func (n *Navigator) subjectMenu(s *aivi.Session) string {
	if len(s.AvailableSubjects) == 0 {
		return "No subjects are available yet."
	}
	names := make([]string, len(s.AvailableSubjects))
	for i, subj := range s.AvailableSubjects {
		names[i] = titleCase(subj)
	}
	return "Available subjects: " + strings.Join(names, ", ") + ". Say learn and a subject name."
}

func (n *Navigator) topicMenu(s *aivi.Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s has %d topics.", titleCase(s.CurrentSubject), len(s.AvailableTopics))
	for i, t := range s.AvailableTopics {
		fmt.Fprintf(&b, " %d. %s.", i+1, strings.TrimRight(t.Title, ".?!"))
	}
	b.WriteString(" Say select and a number.")
	return b.String()
}

func content(t *aivi.TopicRef) string {
	return t.Title + "\n\n" + t.Content
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
