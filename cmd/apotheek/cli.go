package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/semdegroot/apotheek"
	"github.com/semdegroot/apotheek/crawl"
	"github.com/semdegroot/apotheek/gemini"
	"github.com/semdegroot/apotheek/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	DB       *sqlite.DB
	Scraper  *crawl.Scraper
	Sitemaps apotheek.SitemapService
	Embedder apotheek.Embedder
	Model    string
	Chunks   apotheek.ChunkService
	Search   apotheek.SearchService
	Asker    apotheek.Asker
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Scrape   ScrapeCmd   `cmd:"" help:"Scrape medicine pages (URLs or local HTML files) into clean JSON"`
	Batch    BatchCmd    `cmd:"" help:"Scrape every URL listed in a file"`
	Discover DiscoverCmd `cmd:"" help:"Discover medicine page URLs from the site's sitemap"`
	Index    IndexCmd    `cmd:"" help:"Embed clean JSON files into the search index"`
	Search   SearchCmd   `cmd:"" help:"Semantic search over the index"`
	Ask      AskCmd      `cmd:"" help:"Ask a single question about the indexed medicines"`
	Chat     ChatCmd     `cmd:"" help:"Interactive question answering loop"`

	Verbose bool `short:"v" help:"Enable debug logging"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Inputs          []string `arg:"" help:"URLs or local HTML files"`
	Outdir          string   `default:"data/clean_json" help:"Output directory"`
	Sleep           float64  `default:"2" help:"Seconds between requests to the same host"`
	IncludeChildren bool     `help:"Also fetch the kindertekst page per medicine"`
	ChildrenInline  bool     `help:"Append children sections to the same JSON file"`
	NoDedupe        bool     `help:"Keep paragraphs that repeat list items"`
	MergeParagraphs bool     `help:"Merge short consecutive paragraphs"`
	UserAgent       string   `env:"APOTHEEK_USER_AGENT" help:"Custom User-Agent header"`
	Concurrency     int      `short:"c" default:"1" help:"Concurrent page limit"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URLs            string  `arg:"" help:"Path to a text file with one URL per line"`
	Outdir          string  `default:"data/clean_json" help:"Output directory"`
	Sleep           float64 `default:"2" help:"Seconds between requests to the same host"`
	IncludeChildren bool    `help:"Also fetch the kindertekst page per medicine"`
	ChildrenInline  bool    `help:"Append children sections to the same JSON file"`
	NoDedupe        bool    `help:"Keep paragraphs that repeat list items"`
	MergeParagraphs bool    `help:"Merge short consecutive paragraphs"`
	UserAgent       string  `env:"APOTHEEK_USER_AGENT" help:"Custom User-Agent header"`
	Concurrency     int     `short:"c" default:"1" help:"Concurrent page limit"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	URL    string   `arg:"" default:"https://www.apotheek.nl/medicijnen/" help:"Base URL to discover under"`
	Filter []string `short:"F" name:"filter" help:"Filter URLs by regex (repeatable)"`
}

// IndexCmd is the "index" subcommand.
type IndexCmd struct {
	Dir   string `arg:"" help:"Directory with *_clean.json files"`
	Glob  string `default:"*_clean.json" help:"File pattern within the directory"`
	Reset bool   `help:"Empty the index before adding"`
	Dedup bool   `default:"true" negatable:"" help:"Skip chunks whose text is already indexed"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query    string  `arg:"" help:"Search query (Dutch)"`
	K        int     `short:"k" default:"5" help:"Number of results"`
	MinScore float32 `default:"0" help:"Minimum cosine similarity"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question about the indexed medicines"`
	K        int    `short:"k" default:"5" help:"Passages retrieved as context"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct {
	K int `short:"k" default:"5" help:"Passages retrieved as context"`
}

// embeddingModel reports which embedder model the dependencies carry, for
// recording in the index configuration.
func embeddingModel(deps *Dependencies) string {
	if deps.Model != "" {
		return deps.Model
	}
	return gemini.DefaultModel
}
