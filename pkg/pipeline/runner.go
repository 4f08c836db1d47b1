package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridglob/pkg/cache"
	"github.com/matzehuels/gridglob/pkg/element"
	errs "github.com/matzehuels/gridglob/pkg/errors"
	pkgio "github.com/matzehuels/gridglob/pkg/io"
	"github.com/matzehuels/gridglob/pkg/observability"
)

// keyTypeCompile labels compile entries in cache hooks.
const keyTypeCompile = "compile"

// Runner encapsulates pipeline execution with caching.
// Both CLI and server use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different documents.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedCompile is the cache representation of a compiled tree.
type cachedCompile struct {
	Tree    json.RawMessage `json:"tree"`
	Applied int             `json:"applied"`
	Skipped []string        `json:"skipped,omitempty"`
}

// Execute runs the complete compile → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, doc *pkgio.Document, opts Options) (result *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if doc == nil || doc.Root == nil {
		return nil, errs.New(errs.ErrCodeInvalidInput, "document has no root")
	}

	hooks := observability.Pipeline()
	start := time.Now()
	hooks.OnCompileStart(ctx, len(doc.Constraints))
	defer func() {
		nodes := 0
		if result != nil {
			nodes = result.Stats.Nodes
		}
		hooks.OnCompileComplete(ctx, nodes, time.Since(start), err)
	}()

	compiled, hit, docHash, err := r.CompileWithCacheInfo(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	result = &Result{
		Root:     compiled.Root,
		DocHash:  docHash,
		Skipped:  compiled.Skipped,
		CacheHit: hit,
	}
	result.Stats.Constraints = len(doc.Constraints)
	result.Stats.Applied = compiled.Applied
	result.Stats.Nodes = element.Count(compiled.Root)
	result.Stats.Containers = countContainers(compiled.Root)
	result.Stats.CompileTime = time.Since(start)

	r.Logger.Info("compiled document",
		"constraints", result.Stats.Constraints,
		"applied", result.Stats.Applied,
		"skipped", len(result.Skipped),
		"containers", result.Stats.Containers,
		"cached", hit,
		"duration", result.Stats.CompileTime)

	renderStart := time.Now()
	artifacts, err := Render(ctx, compiled.Root, opts)
	if err != nil {
		return nil, err
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)

	r.Logger.Debug("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// CompileWithCacheInfo compiles doc with caching. It returns the compiled
// tree, whether it came from the cache, and the document's content hash.
func (r *Runner) CompileWithCacheInfo(ctx context.Context, doc *pkgio.Document, opts Options) (*Compiled, bool, string, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, "", err
	}

	docHash, err := DocumentHash(doc)
	if err != nil {
		return nil, false, "", err
	}
	cacheKey := r.Keyer.CompileKey(docHash, opts.CompileKeyOpts())
	hooks := observability.Cache()

	if !opts.NoCache {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err != nil {
			r.Logger.Warn("cache read failed", "error", err)
		} else if hit {
			if c, err := decodeCompiled(data); err == nil {
				hooks.OnCacheHit(ctx, keyTypeCompile)
				return c, true, docHash, nil
			}
			// If deserialization fails, fall through to recompile
		}
		hooks.OnCacheMiss(ctx, keyTypeCompile)
	}

	compiled, err := Compile(doc, opts)
	if err != nil {
		return nil, false, docHash, err
	}

	if !opts.NoCache {
		if data, err := encodeCompiled(compiled); err == nil {
			if err := r.Cache.Set(ctx, cacheKey, data, opts.CacheTTL); err != nil {
				r.Logger.Warn("cache write failed", "error", err)
			} else {
				hooks.OnCacheSet(ctx, keyTypeCompile, len(data))
			}
		}
	}

	return compiled, false, docHash, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// DocumentHash returns the content hash of doc's canonical JSON encoding.
func DocumentHash(doc *pkgio.Document) (string, error) {
	var buf bytes.Buffer
	if err := pkgio.Write(&buf, doc, pkgio.FormatJSON); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

func encodeCompiled(c *Compiled) ([]byte, error) {
	var tree bytes.Buffer
	if err := pkgio.WriteTree(&tree, c.Root, pkgio.FormatJSON); err != nil {
		return nil, err
	}
	return json.Marshal(cachedCompile{Tree: tree.Bytes(), Applied: c.Applied, Skipped: c.Skipped})
}

func decodeCompiled(data []byte) (*Compiled, error) {
	var cc cachedCompile
	if err := json.Unmarshal(data, &cc); err != nil {
		return nil, err
	}
	doc, err := pkgio.ReadJSON(bytes.NewReader(cc.Tree))
	if err != nil {
		return nil, err
	}
	return &Compiled{Root: doc.Root, Applied: cc.Applied, Skipped: cc.Skipped}, nil
}
