package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridglob/pkg/observability"
)

// logHooks reports engine, pipeline, and cache events at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l.WithPrefix("events")}
}

func (h *logHooks) OnConstraintApplied(constraint string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("constraint failed", "constraint", constraint, "duration", d, "error", err)
		return
	}
	h.logger.Debug("constraint applied", "constraint", constraint, "duration", d)
}

func (h *logHooks) OnContainerCreated(id, reason string) {
	h.logger.Debug("container created", "id", id, "reason", reason)
}

func (h *logHooks) OnGlobbed(containerID, nodeID, axis string) {
	h.logger.Debug("globbed", "container", containerID, "node", nodeID, "axis", axis)
}

func (h *logHooks) OnShifted(containerID, axis string) {
	h.logger.Debug("shifted", "container", containerID, "axis", axis)
}

func (h *logHooks) OnCompileStart(_ context.Context, constraints int) {
	h.logger.Debug("compile started", "constraints", constraints)
}

func (h *logHooks) OnCompileComplete(_ context.Context, nodes int, d time.Duration, err error) {
	h.logger.Debug("compile finished", "nodes", nodes, "duration", d, "error", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ observability.EngineHooks   = (*logHooks)(nil)
	_ observability.PipelineHooks = (*logHooks)(nil)
	_ observability.CacheHooks    = (*logHooks)(nil)
)
