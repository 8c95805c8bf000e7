package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/aivi"
	"github.com/fwojciec/aivi/cron"
	"github.com/fwojciec/aivi/dialogue"
	"github.com/fwojciec/aivi/navigation"
	"github.com/fwojciec/aivi/retrieval"
	"github.com/fwojciec/aivi/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdin     io.Reader
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	DB        *sqlite.DB
	Knowledge aivi.KnowledgeService
	Cache     aivi.CacheService
	Answers   aivi.AnswerService
	Strategy  aivi.Strategy
	Learner   *retrieval.Learner
	Warmer    *retrieval.Warmer
	Sweeper   *cron.Sweeper
	Engine    *dialogue.Engine
	Navigator *navigation.Navigator
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose       bool          `short:"v" help:"Log service calls to stderr"`
	Strategy      string        `env:"AIVI_STRATEGY" default:"offline_first" help:"Lookup order: offline_first, online_first or ai_only"`
	Provider      string        `env:"AIVI_PROVIDER" enum:"wiki,web,none" default:"wiki" help:"Online search provider (wiki, web, none)"`
	OnlineTimeout time.Duration `env:"AIVI_ONLINE_TIMEOUT" default:"15s" help:"Timeout for one online search"`
	SpeakCmd      string        `env:"AIVI_SPEAK_CMD" help:"Speech program replies are sent to, e.g. 'espeak -s 150'"`
	APIKey        string        `name:"api-key" env:"GEMINI_API_KEY" help:"Gemini API key for AI answers"`

	Ask      AskCmd      `cmd:"" help:"Answer a single question"`
	Chat     ChatCmd     `cmd:"" help:"Start an interactive study session"`
	Remember RememberCmd `cmd:"" help:"Add a question and answer to the knowledge base"`
	Seed     SeedCmd     `cmd:"" help:"Import knowledge records from a YAML file"`
	Subjects SubjectsCmd `cmd:"" help:"List subjects in the knowledge base"`
	Stats    StatsCmd    `cmd:"" help:"Show knowledge base and cache statistics"`
	Sweep    SweepCmd    `cmd:"" help:"Remove stale, rarely used cache entries"`
	Warm     WarmCmd     `cmd:"" help:"Answer a batch of questions to fill the cache"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question []string `arg:"" help:"Question to answer"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	Name string `help:"Your name, used in greetings"`
}

// RememberCmd is the "remember" subcommand.
type RememberCmd struct {
	Question string   `arg:"" help:"Question"`
	Answer   string   `arg:"" help:"Answer"`
	Category string   `short:"c" help:"Subject; guessed from the question when empty"`
	Keywords []string `short:"k" help:"Keywords (repeatable); taken from the question when empty"`
}

// SeedCmd is the "seed" subcommand.
type SeedCmd struct {
	Path string `arg:"" optional:"" type:"path" help:"YAML seed file; the built-in seed when omitted"`
}

// SubjectsCmd is the "subjects" subcommand.
type SubjectsCmd struct{}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	Top int `default:"5" help:"Number of most used cache entries to show"`
}

// SweepCmd is the "sweep" subcommand.
type SweepCmd struct {
	MaxAge    time.Duration `default:"720h" help:"Remove entries not used for this long"`
	MaxAccess int           `default:"5" help:"Keep entries used more often than this"`
	Schedule  string        `help:"Cron schedule; sweep repeatedly until interrupted, e.g. '0 3 * * *'"`
}

// WarmCmd is the "warm" subcommand.
type WarmCmd struct {
	Queries     []string `arg:"" optional:"" help:"Questions to answer"`
	File        string   `short:"f" type:"existingfile" help:"Read questions from a file, one per line"`
	Concurrency int      `short:"c" default:"2" help:"Concurrent lookups"`
}
