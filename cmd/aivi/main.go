package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/aivi"
	"github.com/fwojciec/aivi/bloom"
	"github.com/fwojciec/aivi/cron"
	"github.com/fwojciec/aivi/dialogue"
	"github.com/fwojciec/aivi/exec"
	"github.com/fwojciec/aivi/gemini"
	"github.com/fwojciec/aivi/goquery"
	"github.com/fwojciec/aivi/htmltomarkdown"
	aivihttp "github.com/fwojciec/aivi/http"
	"github.com/fwojciec/aivi/navigation"
	"github.com/fwojciec/aivi/readability"
	"github.com/fwojciec/aivi/retrieval"
	aivislog "github.com/fwojciec/aivi/slog"
	"github.com/fwojciec/aivi/sqlite"
	"github.com/fwojciec/aivi/trafilatura"
	"github.com/fwojciec/aivi/yaml"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	KnowledgeService aivi.KnowledgeService
	CacheService     aivi.CacheService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("aivi"),
		kong.Description("Offline-first study assistant."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'aivi --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := kongCtx.Command()

	strategy, err := aivi.ParseStrategy(cli.Strategy)
	if err != nil {
		return err
	}
	deps.Strategy = strategy

	logger := slog.New(slog.DiscardHandler)
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	deps.Logger = logger

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set AIVI_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.KnowledgeService = aivislog.NewLoggingKnowledgeService(sqlite.NewKnowledgeService(m.DB), logger)
	cache := bloom.NewCacheService(sqlite.NewCacheService(m.DB), bloom.NewFilter(bloom.DefaultExpectedKeys, bloom.DefaultFPRate))
	if err := cache.Load(ctx); err != nil {
		return fmt.Errorf("failed to load cache keys: %w", err)
	}
	m.CacheService = aivislog.NewLoggingCacheService(cache, logger)
	deps.DB = m.DB
	deps.Knowledge = m.KnowledgeService
	deps.Cache = m.CacheService
	deps.Learner = retrieval.NewLearner(m.KnowledgeService)

	if cmd != "seed" && cmd != "seed <path>" {
		if err := seedEmpty(ctx, m.KnowledgeService); err != nil {
			return err
		}
	}

	// Wire command-specific dependencies based on command
	switch cmd {
	case "ask <question>", "chat", "warm", "warm <queries>":
		orch, err := m.orchestrator(ctx, cli, deps, stderr)
		if err != nil {
			return err
		}
		deps.Answers = orch
		deps.Warmer = &retrieval.Warmer{Orchestrator: orch, Strategy: strategy, Concurrency: cli.Warm.Concurrency}

		var speaker aivi.Speaker
		if cli.SpeakCmd != "" {
			s, err := exec.NewSpeaker(cli.SpeakCmd)
			if err != nil {
				return err
			}
			speaker = aivislog.NewLoggingSpeaker(s, logger)
		}

		deps.Engine = dialogue.NewEngine(orch, m.KnowledgeService)
		deps.Engine.Strategy = strategy
		deps.Engine.Speaker = speaker
		deps.Engine.Logger = logger

		deps.Navigator = navigation.NewNavigator(m.KnowledgeService, orch)
		deps.Navigator.Strategy = strategy
		deps.Navigator.Speaker = speaker
		deps.Navigator.Logger = logger
	case "sweep":
		deps.Sweeper = cron.NewSweeper(m.CacheService)
		deps.Sweeper.MaxAge = cli.Sweep.MaxAge
		deps.Sweeper.MaxAccess = cli.Sweep.MaxAccess
		deps.Sweeper.Logger = logger
	}

	return kongCtx.Run(deps)
}

// orchestrator wires the fallback lookup. Stages whose collaborator cannot
// be configured are left out and reported as unavailable when reached.
func (m *Main) orchestrator(ctx context.Context, cli *CLI, deps *Dependencies, stderr io.Writer) (*retrieval.Orchestrator, error) {
	cfg := retrieval.DefaultConfig()
	cfg.Strategy = deps.Strategy
	cfg.OnlineTimeout = cli.OnlineTimeout

	orch := &retrieval.Orchestrator{
		Knowledge: m.KnowledgeService,
		Cache:     m.CacheService,
		Learner:   deps.Learner,
		Limiter:   retrieval.NewStageLimiter(stageRate, stageBurst),
		Config:    cfg,
		Logger:    deps.Logger,
	}

	if cli.Provider != "none" {
		fetcher := aivislog.NewLoggingFetcher(aivihttp.NewFetcher(aivihttp.WithTimeout(cli.OnlineTimeout)), deps.Logger)
		var searcher aivi.Searcher
		switch cli.Provider {
		case "web":
			searcher = goquery.NewWebSearcher(fetcher, goquery.NewRegistry())
		default:
			searcher = aivihttp.NewWikiSearcher(fetcher,
				trafilatura.NewExtractor(readability.NewExtractor()),
				htmltomarkdown.NewConverter())
		}
		orch.Searcher = aivislog.NewLoggingSearcher(searcher, cli.Provider, deps.Logger)
	}

	if cli.APIKey != "" {
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cli.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}
		asker := gemini.NewAsker(client, m.KnowledgeService)
		asker.Logger = deps.Logger
		orch.Asker = aivislog.NewLoggingAsker(asker, deps.Logger)
	} else if deps.Strategy == aivi.StrategyAIOnly {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
	}

	return orch, nil
}

// Network stages are paced to one call per second with a small burst.
const (
	stageRate  = 1.0
	stageBurst = 2
)

// seedEmpty loads the built-in knowledge into an empty knowledge base.
func seedEmpty(ctx context.Context, knowledge aivi.KnowledgeService) error {
	n, err := knowledge.CountRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}
	if n > 0 {
		return nil
	}
	seed, err := yaml.DefaultSeed()
	if err != nil {
		return err
	}
	if _, err := yaml.Import(ctx, knowledge, seed); err != nil {
		return fmt.Errorf("failed to load built-in knowledge: %w", err)
	}
	return nil
}

func defaultDBPath() string {
	if path := os.Getenv("AIVI_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "aivi.db"
	}
	dir := filepath.Join(home, ".aivi")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "aivi.db")
}
