package bank

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// IDGenerator produces short opaque question identifiers.
type IDGenerator interface {
	NewID() string
}

// UUIDGenerator returns the first eight hex characters of a random UUID.
type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()[:8]
}

// SequenceGenerator yields prefix1, prefix2, ... and is safe for concurrent use.
// Handy for fixtures that need stable ids.
type SequenceGenerator struct {
	Prefix string

	mu   sync.Mutex
	next int
}

func (g *SequenceGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	prefix := g.Prefix
	if prefix == "" {
		prefix = "q"
	}
	return fmt.Sprintf("%s%d", prefix, g.next)
}
