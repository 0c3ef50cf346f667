package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/alecthomas/kong"
	"google.golang.org/genai"

	"github.com/semdegroot/apotheek/crawl"
	"github.com/semdegroot/apotheek/fs"
	"github.com/semdegroot/apotheek/gemini"
	"github.com/semdegroot/apotheek/goquery"
	"github.com/semdegroot/apotheek/groq"
	ahttp "github.com/semdegroot/apotheek/http"
	"github.com/semdegroot/apotheek/sqlite"
	aslog "github.com/semdegroot/apotheek/slog"
)

func main() {
	ctx := context.Background()

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

	// SQLite database holding the chunk index.
	DB *sqlite.DB
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
		kong.Name("apotheek"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'apotheek --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	switch cmd {
	case "scrape":
		deps.Scraper = buildScraper(logger, scrapeConfig{
			outdir:      cli.Scrape.Outdir,
			sleep:       cli.Scrape.Sleep,
			noDedupe:    cli.Scrape.NoDedupe,
			merge:       cli.Scrape.MergeParagraphs,
			userAgent:   cli.Scrape.UserAgent,
			concurrency: cli.Scrape.Concurrency,
		})
	case "batch":
		deps.Scraper = buildScraper(logger, scrapeConfig{
			outdir:      cli.Batch.Outdir,
			sleep:       cli.Batch.Sleep,
			noDedupe:    cli.Batch.NoDedupe,
			merge:       cli.Batch.MergeParagraphs,
			userAgent:   cli.Batch.UserAgent,
			concurrency: cli.Batch.Concurrency,
		})
	case "discover":
		deps.Sitemaps = aslog.NewLoggingSitemapService(ahttp.NewSitemapService(nil), logger)
	case "index", "search", "ask", "chat":
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(stderr, "Hint: Set APOTHEEK_DB to use a different database path")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		deps.DB = m.DB

		embedder, err := buildEmbedder(ctx, stderr, logger)
		if err != nil {
			return err
		}
		deps.Embedder = embedder
		deps.Model = gemini.DefaultModel

		chunks := sqlite.NewChunkService(m.DB)
		chunks.SkipDuplicates = cli.Index.Dedup
		deps.Chunks = chunks
		deps.Search = sqlite.NewSearchService(m.DB, embedder)

		if cmd == "ask" || cmd == "chat" {
			groqKey := os.Getenv("GROQ_API_KEY")
			if groqKey == "" {
				fmt.Fprintln(stderr, "GROQ_API_KEY environment variable not set. Get an API key at https://console.groq.com/keys")
				return fmt.Errorf("GROQ_API_KEY not set")
			}
			topK := cli.Ask.K
			if cmd == "chat" {
				topK = cli.Chat.K
			}
			deps.Asker = groq.NewAsker(groqKey, deps.Search, groq.WithTopK(topK))
		}
	}

	return kongCtx.Run(deps)
}

type scrapeConfig struct {
	outdir      string
	sleep       float64
	noDedupe    bool
	merge       bool
	userAgent   string
	concurrency int
}

// buildScraper wires the fetch-extract-write pipeline for the scrape and
// batch commands.
func buildScraper(logger *slog.Logger, cfg scrapeConfig) *crawl.Scraper {
	ua := cfg.userAgent
	if ua == "" {
		ua = ahttp.DefaultUserAgent
	}

	var opts []goquery.Option
	if cfg.noDedupe {
		opts = append(opts, goquery.WithDedupe(false))
	}
	if cfg.merge {
		opts = append(opts, goquery.WithMerge(true))
	}

	return &crawl.Scraper{
		Fetcher:     aslog.NewLoggingFetcher(ahttp.NewFetcher(ahttp.WithUserAgent(ua)), logger),
		Robots:      ahttp.NewRobotsCache(nil),
		Extractor:   goquery.NewExtractor(opts...),
		Writer:      fs.NewWriter(cfg.outdir),
		Limiter:     crawl.NewLimiter(time.Duration(cfg.sleep * float64(time.Second))),
		UserAgent:   ua,
		Concurrency: cfg.concurrency,
		Logger:      logger,
	}
}

// buildEmbedder connects to the Gemini API for embedding.
func buildEmbedder(ctx context.Context, stderr io.Writer, logger *slog.Logger) (*aslog.LoggingEmbedder, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	return aslog.NewLoggingEmbedder(gemini.NewEmbedder(client), logger), nil
}

func defaultDBPath() string {
	if path := os.Getenv("APOTHEEK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "apotheek.db"
	}
	dir := filepath.Join(home, ".apotheek")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "apotheek.db")
}
