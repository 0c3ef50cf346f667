// Package groq answers questions about the indexed medicine documentation
// using a Groq-hosted chat model behind the OpenAI-compatible API.
package groq

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/semdegroot/apotheek"
)

// Defaults for the Groq chat backend.
const (
	DefaultBaseURL     = "https://api.groq.com/openai/v1"
	DefaultModel       = "llama-3.3-70b-versatile"
	DefaultMaxTokens   = 600
	DefaultTemperature = 0.2
	DefaultTopK        = 5
)

// Ensure Asker implements apotheek.Asker at compile time.
var _ apotheek.Asker = (*Asker)(nil)

// Asker implements apotheek.Asker: it retrieves the best-matching chunks
// and asks the chat model to answer from them.
type Asker struct {
	client      openai.Client
	search      apotheek.SearchService
	baseURL     string
	model       string
	topK        int
	maxTokens   int64
	temperature float64
}

// AskerOption configures an Asker.
type AskerOption func(*Asker)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(baseURL string) AskerOption {
	return func(a *Asker) {
		a.baseURL = baseURL
	}
}

// WithModel overrides the chat model.
func WithModel(model string) AskerOption {
	return func(a *Asker) {
		a.model = model
	}
}

// WithTopK sets how many chunks are retrieved as context.
func WithTopK(k int) AskerOption {
	return func(a *Asker) {
		a.topK = k
	}
}

// WithMaxTokens caps the answer length.
func WithMaxTokens(n int64) AskerOption {
	return func(a *Asker) {
		a.maxTokens = n
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) AskerOption {
	return func(a *Asker) {
		a.temperature = t
	}
}

// NewAsker creates a new Asker talking to the Groq API with the given key.
func NewAsker(apiKey string, search apotheek.SearchService, opts ...AskerOption) *Asker {
	a := &Asker{
		search:      search,
		baseURL:     DefaultBaseURL,
		model:       DefaultModel,
		topK:        DefaultTopK,
		maxTokens:   DefaultMaxTokens,
		temperature: DefaultTemperature,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.client = openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithBaseURL(a.baseURL),
	)
	return a
}

// Ask retrieves context for the question and generates a grounded answer.
// Returns ENOTFOUND when the index holds nothing relevant.
func (a *Asker) Ask(ctx context.Context, question string) (*apotheek.Answer, error) {
	if question == "" {
		return nil, apotheek.Errorf(apotheek.EINVALID, "question required")
	}

	results, err := a.search.Search(ctx, question, apotheek.SearchOptions{Limit: a.topK})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, apotheek.Errorf(apotheek.ENOTFOUND, "no matching passages in the index")
	}

	blocks := ContextBlocks(results)
	resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(a.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt),
			openai.UserMessage(UserPrompt(question, blocks)),
		},
		MaxTokens:   openai.Int(a.maxTokens),
		Temperature: openai.Float(a.temperature),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, apotheek.Errorf(apotheek.EINTERNAL, "chat model returned no choices")
	}

	text := resp.Choices[0].Message.Content
	return &apotheek.Answer{
		Text:    text,
		Sources: Sources(results, text),
	}, nil
}
