package groq_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semdegroot/apotheek"
	"github.com/semdegroot/apotheek/groq"
	"github.com/semdegroot/apotheek/mock"
)

// fakeGroq serves a canned chat completion and captures the request body.
func fakeGroq(t *testing.T, content string, lastBody *string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		if lastBody != nil {
			*lastBody = string(body)
		}

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1,
			"model":   groq.DefaultModel,
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func searchMock(results []apotheek.SearchResult) *mock.SearchService {
	return &mock.SearchService{
		SearchFn: func(ctx context.Context, query string, opts apotheek.SearchOptions) ([]apotheek.SearchResult, error) {
			return results, nil
		},
	}
}

func TestAsker_Ask(t *testing.T) {
	t.Parallel()

	t.Run("answers with sources", func(t *testing.T) {
		t.Parallel()

		var body string
		srv := fakeGroq(t, "U mag maximaal 4000 mg paracetamol per dag gebruiken.", &body)
		defer srv.Close()

		asker := groq.NewAsker("test-key", searchMock(searchResults()), groq.WithBaseURL(srv.URL))

		answer, err := asker.Ask(context.Background(), "Hoeveel paracetamol mag ik per dag?")
		require.NoError(t, err)

		assert.Equal(t, "U mag maximaal 4000 mg paracetamol per dag gebruiken.", answer.Text)
		require.NotEmpty(t, answer.Sources)
		assert.Equal(t, "Paracetamol > Hoeveel mag ik gebruiken?", answer.Sources[0].Place)
	})

	t.Run("sends question and context to the model", func(t *testing.T) {
		t.Parallel()

		var body string
		srv := fakeGroq(t, "antwoord", &body)
		defer srv.Close()

		asker := groq.NewAsker("test-key", searchMock(searchResults()), groq.WithBaseURL(srv.URL))

		_, err := asker.Ask(context.Background(), "Hoeveel paracetamol mag ik per dag?")
		require.NoError(t, err)

		assert.Contains(t, body, "Hoeveel paracetamol mag ik per dag?")
		assert.Contains(t, body, "Neem niet meer dan 4000 mg per dag.")
		assert.Contains(t, body, groq.DefaultModel)
	})

	t.Run("retrieval limit follows top-k option", func(t *testing.T) {
		t.Parallel()

		srv := fakeGroq(t, "antwoord", nil)
		defer srv.Close()

		var gotLimit int
		search := &mock.SearchService{
			SearchFn: func(ctx context.Context, query string, opts apotheek.SearchOptions) ([]apotheek.SearchResult, error) {
				gotLimit = opts.Limit
				return searchResults(), nil
			},
		}

		asker := groq.NewAsker("test-key", search, groq.WithBaseURL(srv.URL), groq.WithTopK(8))

		_, err := asker.Ask(context.Background(), "vraag")
		require.NoError(t, err)
		assert.Equal(t, 8, gotLimit)
	})

	t.Run("empty question is invalid", func(t *testing.T) {
		t.Parallel()

		asker := groq.NewAsker("test-key", searchMock(nil))

		_, err := asker.Ask(context.Background(), "")
		require.Error(t, err)
		assert.Equal(t, apotheek.EINVALID, apotheek.ErrorCode(err))
	})

	t.Run("no matches is not found", func(t *testing.T) {
		t.Parallel()

		asker := groq.NewAsker("test-key", searchMock(nil))

		_, err := asker.Ask(context.Background(), "iets zonder context")
		require.Error(t, err)
		assert.Equal(t, apotheek.ENOTFOUND, apotheek.ErrorCode(err))
	})

	t.Run("propagates search failure", func(t *testing.T) {
		t.Parallel()

		search := &mock.SearchService{
			SearchFn: func(ctx context.Context, query string, opts apotheek.SearchOptions) ([]apotheek.SearchResult, error) {
				return nil, apotheek.Errorf(apotheek.EINTERNAL, "index corrupt")
			},
		}
		asker := groq.NewAsker("test-key", search)

		_, err := asker.Ask(context.Background(), "vraag")
		require.Error(t, err)
		assert.Equal(t, apotheek.EINTERNAL, apotheek.ErrorCode(err))
	})
}
