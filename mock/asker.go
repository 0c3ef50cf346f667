package mock

import (
	"context"

	"github.com/semdegroot/apotheek"
)

var _ apotheek.Asker = (*Asker)(nil)

// Asker is a mock implementation of apotheek.Asker.
type Asker struct {
	AskFn func(ctx context.Context, question string) (*apotheek.Answer, error)
}

func (a *Asker) Ask(ctx context.Context, question string) (*apotheek.Answer, error) {
	return a.AskFn(ctx, question)
}
