// Package navigation implements the spoken subject and topic menu.
package navigation

import (
	"strconv"
	"strings"

	"github.com/fwojciec/aivi"
)

// CommandKind identifies a navigation command.
type CommandKind int

// Command kinds.
const (
	CommandNone CommandKind = iota
	CommandListSubjects
	CommandLearn
	CommandSelect
	CommandRepeat
	CommandBack
	CommandHelp
	CommandSearch
	CommandExit
)

func (k CommandKind) String() string {
	switch k {
	case CommandListSubjects:
		return "list_subjects"
	case CommandLearn:
		return "learn"
	case CommandSelect:
		return "select"
	case CommandRepeat:
		return "repeat"
	case CommandBack:
		return "back"
	case CommandHelp:
		return "help"
	case CommandSearch:
		return "search"
	case CommandExit:
		return "exit"
	default:
		return "none"
	}
}

// Command is a parsed navigation command.
type Command struct {
	Kind CommandKind
	Arg  string
}

var exactCommands = map[string]CommandKind{
	"subjects":          CommandListSubjects,
	"list subjects":     CommandListSubjects,
	"show subjects":     CommandListSubjects,
	"menu":              CommandListSubjects,
	"main menu":         CommandListSubjects,
	"repeat":            CommandRepeat,
	"say again":         CommandRepeat,
	"repeat that":       CommandRepeat,
	"back":              CommandBack,
	"go back":           CommandBack,
	"previous":          CommandBack,
	"help":              CommandHelp,
	"commands":          CommandHelp,
	"what can i say":    CommandHelp,
	"exit":              CommandExit,
	"quit":              CommandExit,
	"stop":              CommandExit,
	"goodbye":           CommandExit,
	"exit learning":     CommandExit,
	"stop learning":     CommandExit,
	"close menu":        CommandExit,
	"list all subjects": CommandListSubjects,
}

var prefixCommands = []struct {
	prefix string
	kind   CommandKind
}{
	{"learn about ", CommandLearn},
	{"learn ", CommandLearn},
	{"study ", CommandLearn},
	{"open ", CommandLearn},
	{"select ", CommandSelect},
	{"choose ", CommandSelect},
	{"topic ", CommandSelect},
	{"number ", CommandSelect},
	{"search for ", CommandSearch},
	{"search ", CommandSearch},
	{"look up ", CommandSearch},
}

// ParseCommand recognizes a navigation command in input. The second result
// is false when input is not a navigation command. A bare number selects a
// topic.
func ParseCommand(input string) (Command, bool) {
	text := strings.Join(strings.Fields(strings.ToLower(input)), " ")
	text = strings.TrimRight(text, ".!?")
	if text == "" {
		return Command{}, false
	}
	if kind, ok := exactCommands[text]; ok {
		return Command{Kind: kind}, true
	}
	for _, p := range prefixCommands {
		if rest, ok := strings.CutPrefix(text, p.prefix); ok {
			return Command{Kind: p.kind, Arg: strings.TrimSpace(rest)}, true
		}
	}
	if _, ok := parseIndex(text); ok {
		return Command{Kind: CommandSelect, Arg: text}, true
	}
	return Command{}, false
}

var numberWords = map[string]int{
	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9, "tenth": 10,
}

// parseIndex reads a 1-based index given as digits or a number word.
func parseIndex(s string) (int, bool) {
	s = aivi.NormalizeQuery(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	n, ok := numberWords[s]
	return n, ok
}
