// Command apotheekweb serves the web chat UI over the medicine index.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"google.golang.org/genai"

	achi "github.com/semdegroot/apotheek/chi"
	"github.com/semdegroot/apotheek/gemini"
	"github.com/semdegroot/apotheek/groq"
	"github.com/semdegroot/apotheek/sqlite"
	aslog "github.com/semdegroot/apotheek/slog"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	addr := flag.String("addr", defaultAddr(), "listen address")
	dbPath := flag.String("db", defaultDBPath(), "path to the chunk index database")
	topK := flag.Int("k", groq.DefaultTopK, "number of passages to retrieve per question")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	geminiKey := os.Getenv("GEMINI_API_KEY")
	if geminiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY not set. Get an API key at https://aistudio.google.com/apikey")
	}
	groqKey := os.Getenv("GROQ_API_KEY")
	if groqKey == "" {
		return fmt.Errorf("GROQ_API_KEY not set. Get an API key at https://console.groq.com/keys")
	}

	db := sqlite.NewDB(*dbPath)
	if err := db.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", *dbPath, err)
	}
	defer db.Close()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  geminiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Gemini API: %w", err)
	}

	embedder := aslog.NewLoggingEmbedder(gemini.NewEmbedder(client), logger)
	search := sqlite.NewSearchService(db, embedder)
	asker := groq.NewAsker(groqKey, search, groq.WithTopK(*topK))

	srv := achi.NewServer(asker, logger, achi.WithModelName(groq.DefaultModel))
	if err := srv.Open(*addr); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	logger.Info("listening", "addr", *addr)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Close(shutdownCtx)
}

func defaultAddr() string {
	if port := os.Getenv("PORT"); port != "" {
		return ":" + port
	}
	return ":8080"
}

func defaultDBPath() string {
	if path := os.Getenv("APOTHEEK_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "apotheek.db"
	}
	return filepath.Join(home, ".apotheek", "apotheek.db")
}
