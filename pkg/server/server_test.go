package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridglob/pkg/cache"
	errs "github.com/matzehuels/gridglob/pkg/errors"
	"github.com/matzehuels/gridglob/pkg/httputil"
	pkgio "github.com/matzehuels/gridglob/pkg/io"
	"github.com/matzehuels/gridglob/pkg/pipeline"
)

const formDoc = `{
  "root": {"id": "form", "children": [{"id": "A"}, {"id": "B"}, {"id": "C"}]},
  "constraints": [
    {"anchor": "A", "dependent": "B", "edge": "right-of"},
    {"anchor": "B", "dependent": "C", "edge": "below"}
  ]
}`

const uncelledGridDoc = `{
  "root": {"id": "root", "children": [
    {"id": "G", "kind": "container", "children": [{"id": "A"}, {"id": "B"}]},
    {"id": "C"}
  ]},
  "constraints": [{"anchor": "A", "dependent": "C", "edge": "right-of"}]
}`

const formYAML = `root:
  id: form
  children:
    - id: A
    - id: B
constraints:
  - anchor: A
    dependent: B
    edge: below
`

func newTestServer(t *testing.T, opts ...Option) *httptest.Server {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(c, nil, logger)
	ts := httptest.NewServer(New(runner, logger, opts...).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url, contentType, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, contentType, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readError(t *testing.T, resp *http.Response) httputil.ErrorDetail {
	t.Helper()
	var body httputil.ErrorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var h health
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "ok" {
		t.Errorf("status = %q, want ok", h.Status)
	}
	if h.Version == "" {
		t.Error("health should report the build version")
	}
}

func TestCompile(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/v1/compile", "application/json", formDoc)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get(HeaderCache); got != "miss" {
		t.Errorf("%s = %q, want miss", HeaderCache, got)
	}
	if got := resp.Header.Get(HeaderSkipped); got != "0" {
		t.Errorf("%s = %q, want 0", HeaderSkipped, got)
	}

	doc, err := pkgio.ReadJSON(resp.Body)
	if err != nil {
		t.Fatalf("response is not a document: %v", err)
	}
	if got := doc.Root.Children()[0].ID; got != "grid-A-B" {
		t.Errorf("first child = %q, want grid-A-B", got)
	}
	if len(doc.Constraints) != 0 {
		t.Errorf("compiled document kept %d constraints", len(doc.Constraints))
	}

	again := post(t, ts.URL+"/v1/compile", "application/json", formDoc)
	if got := again.Header.Get(HeaderCache); got != "hit" {
		t.Errorf("second %s = %q, want hit", HeaderCache, got)
	}
}

func TestCompileFormats(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		query       string
		contentType string
		want        string
	}{
		{"format=yaml", "application/yaml", "id: grid-A-B"},
		{"format=dot", "text/vnd.graphviz", "digraph G {"},
		{"format=outline", "text/plain; charset=utf-8", "grid-A-B"},
		{"format=json&tie_break=row&id_style=sequential", "application/json", `"grid-A-B"`},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/compile?"+tt.query, "", formDoc)
			if resp.StatusCode != http.StatusOK {
				t.Fatalf("status = %d, want 200", resp.StatusCode)
			}
			if ct := resp.Header.Get("Content-Type"); ct != tt.contentType {
				t.Errorf("Content-Type = %q, want %q", ct, tt.contentType)
			}
			body, _ := io.ReadAll(resp.Body)
			if !strings.Contains(string(body), tt.want) {
				t.Errorf("body missing %q:\n%s", tt.want, body)
			}
		})
	}
}

func TestCompileYAMLRequest(t *testing.T) {
	ts := newTestServer(t)

	resp := post(t, ts.URL+"/v1/compile", "application/yaml", formYAML)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	doc, err := pkgio.ReadJSON(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Root.Children()[0].ID; got != "grid-A-B" {
		t.Errorf("first child = %q, want grid-A-B", got)
	}
}

func TestCompileSkipInvalid(t *testing.T) {
	ts := newTestServer(t)
	doc := strings.Replace(formDoc, `"dependent": "C"`, `"dependent": "Q"`, 1)

	resp := post(t, ts.URL+"/v1/compile", "application/json", doc)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", resp.StatusCode)
	}
	if e := readError(t, resp); e.Code != errs.ErrCodeNotFound {
		t.Errorf("code = %s, want NOT_FOUND", e.Code)
	}

	resp = post(t, ts.URL+"/v1/compile?skip_invalid=true", "application/json", doc)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("skip_invalid status = %d, want 200", resp.StatusCode)
	}
	if got := resp.Header.Get(HeaderSkipped); got != "1" {
		t.Errorf("%s = %q, want 1", HeaderSkipped, got)
	}
}

func TestCompileErrors(t *testing.T) {
	ts := newTestServer(t, WithMaxBody(1<<10))

	tests := []struct {
		name        string
		query       string
		contentType string
		body        string
		status      int
		code        errs.Code
	}{
		{"malformed", "", "application/json", "{", http.StatusBadRequest, errs.ErrCodeInvalidFormat},
		{"empty", "", "application/json", "", http.StatusBadRequest, errs.ErrCodeInvalidFormat},
		{"too large", "", "application/json", `{"root":{"id":"` + strings.Repeat("x", 2<<10) + `"}}`, http.StatusBadRequest, errs.ErrCodeInvalidFormat},
		{"content type", "", "image/png", formDoc, http.StatusBadRequest, errs.ErrCodeUnsupported},
		{"format", "format=gif", "application/json", formDoc, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"tie break", "tie_break=diagonal", "application/json", formDoc, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"skip flag", "skip_invalid=maybe", "application/json", formDoc, http.StatusBadRequest, errs.ErrCodeInvalidInput},
		{"bad edge", "", "application/json", strings.Replace(formDoc, "below", "beside", 1), http.StatusBadRequest, errs.ErrCodeInvalidFormat},
		{"duplicate id", "", "application/json", `{"root":{"id":"a","children":[{"id":"a"}]}}`, http.StatusUnprocessableEntity, errs.ErrCodeDuplicateID},
		{"grid without cells", "", "application/json", uncelledGridDoc, http.StatusBadRequest, errs.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, ts.URL+"/v1/compile?"+tt.query, tt.contentType, tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if e := readError(t, resp); e.Code != tt.code {
				t.Errorf("code = %s (%s), want %s", e.Code, e.Message, tt.code)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/v1/compile")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}

func TestDocumentFormat(t *testing.T) {
	tests := []struct {
		contentType string
		want        pkgio.Format
		wantErr     bool
	}{
		{"", pkgio.FormatJSON, false},
		{"application/json; charset=utf-8", pkgio.FormatJSON, false},
		{"application/x-yaml", pkgio.FormatYAML, false},
		{"text/toml", pkgio.FormatTOML, false},
		{"text/html", "", true},
		{";;", "", true},
	}
	for _, tt := range tests {
		got, err := documentFormat(tt.contentType)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("documentFormat(%q) = %q, %v", tt.contentType, got, err)
		}
	}
}
