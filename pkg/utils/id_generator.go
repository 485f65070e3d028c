package utils

import (
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// IDGenerator hands out ULIDs for companies, investors and
// transactions. ULIDs sort by creation time, which keeps transaction
// ids roughly chronological in the table without coordinating a
// counter.
type IDGenerator struct {
	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// NewIDGenerator creates a generator with monotonic entropy, so ids
// minted in the same millisecond still sort in mint order.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Next mints one ULID.
func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy).String()
}

var defaultGenerator = NewIDGenerator()

// NewID mints a ULID from the package-level generator.
func NewID() string {
	return defaultGenerator.Next()
}
