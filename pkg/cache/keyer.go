package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// CompileKeyOpts are the engine settings that change a compile's result.
type CompileKeyOpts struct {
	TieBreak    string `json:"tie_break"`
	IDStyle     string `json:"id_style"`
	SkipInvalid bool   `json:"skip_invalid"`
	Format      string `json:"format"`
}

// Keyer derives cache keys.
type Keyer interface {
	// CompileKey returns the key of a compiled document.
	CompileKey(docHash string, opts CompileKeyOpts) string
}

// KeyerFunc adapts a function to [Keyer].
type KeyerFunc func(docHash string, opts CompileKeyOpts) string

// CompileKey calls f.
func (f KeyerFunc) CompileKey(docHash string, opts CompileKeyOpts) string {
	return f(docHash, opts)
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// CompileKey returns "compile:<sha256(docHash, opts)>".
func (DefaultKeyer) CompileKey(docHash string, opts CompileKeyOpts) string {
	return "compile:" + HashJSON(docHash, opts)
}

// WithScope prefixes every key of inner with scope, so several tenants
// can share one backend:
//
//	// HTTP service entries, kept apart from CLI entries in a shared Redis
//	keyer := cache.WithScope(nil, "server:")
//
// A nil inner keyer means [DefaultKeyer].
func WithScope(inner Keyer, scope string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return KeyerFunc(func(docHash string, opts CompileKeyOpts) string {
		return scope + inner.CompileKey(docHash, opts)
	})
}

// Hash returns the hex SHA-256 of data (64 characters).
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashJSON hashes the JSON encoding of parts. Parts must be JSON-encodable
// plain values; struct fields hash in declaration order.
func HashJSON(parts ...any) string {
	data, err := json.Marshal(parts)
	if err != nil {
		panic(err)
	}
	return Hash(data)
}
