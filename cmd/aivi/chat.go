package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fwojciec/aivi"
	"github.com/fwojciec/aivi/navigation"
)

const chatWelcome = "Hello! Ask me a question, or say subjects to browse what I know. Say exit to leave."

// Run executes the chat command. Navigation commands go to the menu, other
// lines to the dialogue engine. Exit at the main menu ends the session.
func (c *ChatCmd) Run(deps *Dependencies) error {
	s := aivi.NewSession()
	s.Name = strings.TrimSpace(c.Name)

	fmt.Fprintln(deps.Stdout, chatWelcome)

	scanner := bufio.NewScanner(deps.Stdin)
	for {
		if deps.Ctx.Err() != nil {
			break
		}
		fmt.Fprint(deps.Stdout, "> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if cmd, ok := navigation.ParseCommand(line); ok {
			if cmd.Kind == navigation.CommandExit && s.MenuLevel == aivi.MenuMain {
				break
			}
			reply, _ := deps.Navigator.Handle(deps.Ctx, s, cmd)
			fmt.Fprintln(deps.Stdout, reply)
			continue
		}

		reply, _ := deps.Engine.Respond(deps.Ctx, s, line)
		fmt.Fprintln(deps.Stdout, reply)
	}
	fmt.Fprintln(deps.Stdout)

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	printSummary(deps, s.Summary())
	return nil
}

func printSummary(deps *Dependencies, sum aivi.SessionSummary) {
	fmt.Fprintf(deps.Stdout, "Goodbye! We talked %d times and you asked %d questions.\n", sum.Exchanges, sum.QuestionsAsked)
	if len(sum.TopicsDiscussed) > 0 {
		fmt.Fprintf(deps.Stdout, "Topics: %s\n", strings.Join(sum.TopicsDiscussed, ", "))
	}
}
