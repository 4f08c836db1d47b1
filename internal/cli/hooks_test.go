package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := newLogHooks(newLogger(&buf, log.DebugLevel))
	ctx := context.Background()

	h.OnContainerCreated("grid-A-B", "wrap")
	h.OnConstraintApplied("B right-of A", 0, nil)
	h.OnConstraintApplied("Q below B", 0, errors.New("not in tree"))
	h.OnCacheHit(ctx, "compile")

	out := buf.String()
	for _, want := range []string{"events", "container created", "grid-A-B", "constraint failed", "not in tree", "cache hit"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestLogHooksQuietAtInfo(t *testing.T) {
	var buf bytes.Buffer
	h := newLogHooks(newLogger(&buf, log.InfoLevel))
	h.OnShifted("grid-A-B", "column")
	if buf.Len() != 0 {
		t.Errorf("info logger printed debug events: %q", buf.String())
	}
}
