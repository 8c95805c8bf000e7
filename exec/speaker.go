// Package exec renders speech by running an external text-to-speech
// program such as espeak or say.
package exec

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/fwojciec/aivi"
)

// Ensure Speaker implements aivi.Speaker at compile time.
var _ aivi.Speaker = (*Speaker)(nil)

// Speaker runs Command once per utterance. The text is passed as the last
// argument, or on standard input when Stdin is set.
type Speaker struct {
	Command string
	Args    []string
	Stdin   bool
}

// NewSpeaker parses a command line like "espeak -s 150". Arguments are
// split on whitespace; quoting is not supported.
func NewSpeaker(cmdline string) (*Speaker, error) {
	fields := strings.Fields(cmdline)
	if len(fields) == 0 {
		return nil, aivi.Errorf(aivi.EINVALID, "speech command required")
	}
	return &Speaker{Command: fields[0], Args: fields[1:]}, nil
}

// Speak blocks until the program exits. Blank text is not spoken.
func (s *Speaker) Speak(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	path, err := exec.LookPath(s.Command)
	if err != nil {
		return aivi.Errorf(aivi.EUNAVAILABLE, "speech program %q not found", s.Command)
	}

	args := append([]string(nil), s.Args...)
	if !s.Stdin {
		args = append(args, text)
	}
	cmd := exec.CommandContext(ctx, path, args...)
	if s.Stdin {
		cmd.Stdin = strings.NewReader(text)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("speak: %w: %s", err, msg)
		}
		return fmt.Errorf("speak: %w", err)
	}
	return nil
}
