package source

import (
	"strings"
	"sync"
)

// Signal hands out one-shot change tokens and fires them. The zero value is
// ready to use.
//
// Every token returned between two calls to Fire shares the same channel, so
// all of them are released together by the next Fire.
type Signal struct {
	mu sync.Mutex
	ch chan struct{}
}

// Token returns the token for the next Fire.
func (s *Signal) Token() ChangeToken {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ch == nil {
		s.ch = make(chan struct{})
	}
	return chanToken(s.ch)
}

// Fire releases every outstanding token and starts a new generation.
func (s *Signal) Fire() {
	s.mu.Lock()
	ch := s.ch
	s.ch = make(chan struct{})
	s.mu.Unlock()

	if ch != nil {
		close(ch)
	}
}

type chanToken chan struct{}

func (t chanToken) Done() <-chan struct{} {
	return t
}

// section is the Section implementation shared by the providers in this
// package: a path prefix over a key lookup.
type section struct {
	path string
	get  func(key string) string
}

func newSection(path string, get func(string) string) section {
	return section{path: strings.Trim(path, KeyDelimiter), get: get}
}

func (s section) Path() string {
	return s.path
}

func (s section) Get(subKey string) string {
	if s.path == "" {
		return s.get(subKey)
	}
	return s.get(s.path + KeyDelimiter + subKey)
}
