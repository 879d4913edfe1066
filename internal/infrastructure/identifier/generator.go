// Package identifier produces opaque, globally unique voucher identifiers.
// Generation must never block or fail issuance, so the generator degrades
// through progressively simpler sources instead of returning errors.
package identifier

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Generator produces unique opaque identifiers.
type Generator interface {
	NewID() string
}

// UUID is the standard generator: random UUIDv4, falling back to a
// crypto/rand hex token, and as a last resort a timestamp+counter token
// (lower entropy but still unique within the process).
type UUID struct {
	counter atomic.Uint64
}

// NewUUID creates the generator.
func NewUUID() *UUID {
	return &UUID{}
}

// NewID implements Generator. Never fails.
func (g *UUID) NewID() string {
	if id, err := uuid.NewRandom(); err == nil {
		return id.String()
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err == nil {
		return hex.EncodeToString(buf)
	}

	n := g.counter.Add(1)
	return fmt.Sprintf("%x-%08x", time.Now().UnixNano(), n)
}

// Func adapts a plain function to the Generator interface. Used in tests
// to issue deterministic ids.
type Func func() string

// NewID implements Generator.
func (f Func) NewID() string {
	return f()
}
