package chi

import (
	"crypto/rand"
	"encoding/hex"
	"sync"

	"github.com/semdegroot/apotheek"
)

// Turn is one question/answer exchange in a chat session.
type Turn struct {
	Question string
	Answer   string
	Sources  []apotheek.Source
	Err      string
}

// sessionStore keeps chat histories in memory, keyed by session ID.
// Histories are lost on restart.
type sessionStore struct {
	mu    sync.Mutex
	chats map[string][]Turn
}

func newSessionStore() *sessionStore {
	return &sessionStore{chats: make(map[string][]Turn)}
}

func (s *sessionStore) history(id string) []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chats[id]
}

func (s *sessionStore) append(id string, turn Turn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chats[id] = append(s.chats[id], turn)
}

func (s *sessionStore) clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.chats, id)
}

// newSessionID returns a random 128-bit hex identifier.
func newSessionID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}
