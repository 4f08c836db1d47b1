package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/gridglob/pkg/element"
	errs "github.com/matzehuels/gridglob/pkg/errors"
	pkgio "github.com/matzehuels/gridglob/pkg/io"
)

const formDoc = `{
  "root": {"id": "form", "children": [{"id": "A"}, {"id": "B"}, {"id": "C"}]},
  "constraints": [
    {"anchor": "A", "dependent": "B", "edge": "right-of"},
    {"anchor": "B", "dependent": "C", "edge": "below"}
  ]
}`

// isolate points the cache and config directories at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", filepath.Join(dir, "cache"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	return dir
}

// run executes the CLI with args, feeding stdin and capturing stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty defaults to json", "", []string{"json"}},
		{"single format", "svg", []string{"svg"}},
		{"multiple formats", "json,dot,outline", []string{"json", "dot", "outline"}},
		{"spaces and empties", " yaml , ,toml", []string{"yaml", "toml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseFormats(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("parseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i, v := range got {
				if v != tt.want[i] {
					t.Errorf("parseFormats(%q)[%d] = %q, want %q", tt.input, i, v, tt.want[i])
				}
			}
		})
	}
}

func TestBasePath(t *testing.T) {
	tests := []struct {
		output, input, want string
	}{
		{"", "forms/login.yaml", "forms/login"},
		{"", "", "layout"},
		{"out/login.svg", "login.json", "out/login"},
		{"out/login.yml", "login.json", "out/login"},
		{"out/login", "login.json", "out/login"},
		{"out/login.v2", "login.json", "out/login.v2"},
	}
	for _, tt := range tests {
		if got := basePath(tt.output, tt.input); got != tt.want {
			t.Errorf("basePath(%q, %q) = %q, want %q", tt.output, tt.input, got, tt.want)
		}
	}
}

func TestExtension(t *testing.T) {
	if got := extension("outline"); got != "txt" {
		t.Errorf("extension(outline) = %q, want txt", got)
	}
	if got := extension("svg"); got != "svg" {
		t.Errorf("extension(svg) = %q, want svg", got)
	}
}

func TestReadDocument(t *testing.T) {
	doc, err := readDocument(strings.NewReader(formDoc), "", "")
	if err != nil {
		t.Fatalf("readDocument(stdin) error = %v", err)
	}
	if len(doc.Constraints) != 2 {
		t.Errorf("got %d constraints, want 2", len(doc.Constraints))
	}

	yaml := "root:\n  id: form\n"
	if _, err := readDocument(strings.NewReader(yaml), "", "yaml"); err != nil {
		t.Errorf("readDocument(stdin, yaml) error = %v", err)
	}

	// An explicit format overrides the extension.
	path := writeFile(t, t.TempDir(), "layout.txt", formDoc)
	if _, err := readDocument(nil, path, "json"); err != nil {
		t.Errorf("readDocument(%s, json) error = %v", path, err)
	}
	if _, err := readDocument(nil, path, ""); err == nil {
		t.Error("readDocument() should reject an unknown extension")
	}
	if _, err := readDocument(nil, path, "xml"); err == nil {
		t.Error("readDocument() should reject an unknown format")
	}
}

func TestCompileCommandToFile(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "form.json", formDoc)
	output := filepath.Join(dir, "compiled.json")

	if _, err := run(t, "", "compile", input, "-o", output); err != nil {
		t.Fatalf("compile error = %v", err)
	}

	doc, err := pkgio.Import(output)
	if err != nil {
		t.Fatalf("compiled output unreadable: %v", err)
	}
	if len(doc.Constraints) != 0 {
		t.Errorf("compiled document kept %d constraints", len(doc.Constraints))
	}
	g := element.Find(doc.Root, "grid-A-B")
	if g == nil || !g.IsContainer() {
		t.Fatal("compiled tree has no grid-A-B container")
	}
	if element.Find(g, "grid-B-C") == nil {
		t.Error("C below B should split B's cell into grid-B-C")
	}
}

func TestCompileCommandStdout(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "form.json", formDoc)

	out, err := run(t, "", "compile", input, "-f", "outline", "--no-cache")
	if err != nil {
		t.Fatalf("compile error = %v", err)
	}
	for _, want := range []string{"form", "grid-A-B", "grid-B-C", "C (1,0)"} {
		if !strings.Contains(out, want) {
			t.Errorf("outline missing %q:\n%s", want, out)
		}
	}
}

func TestCompileCommandStdin(t *testing.T) {
	isolate(t)

	out, err := run(t, formDoc, "compile", "-f", "yaml", "--tie-break", "row")
	if err != nil {
		t.Fatalf("compile error = %v", err)
	}
	if !strings.Contains(out, "id: grid-A-B") {
		t.Errorf("yaml output missing grid-A-B:\n%s", out)
	}
}

func TestCompileCommandMultipleFormats(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "form.json", formDoc)
	base := filepath.Join(dir, "out", "form")
	if err := os.MkdirAll(filepath.Dir(base), 0o755); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "", "compile", input, "-f", "json,dot,outline", "-o", base+".json"); err != nil {
		t.Fatalf("compile error = %v", err)
	}
	for _, ext := range []string{"json", "dot", "txt"} {
		if _, err := os.Stat(base + "." + ext); err != nil {
			t.Errorf("missing %s output: %v", ext, err)
		}
	}
}

func TestCompileCommandErrors(t *testing.T) {
	dir := isolate(t)
	bad := writeFile(t, dir, "bad.json", strings.Replace(formDoc, `"dependent": "C"`, `"dependent": "Q"`, 1))

	tests := []struct {
		name string
		args []string
		code errs.Code
	}{
		{"missing element", []string{"compile", bad, "--no-cache"}, errs.ErrCodeNotFound},
		{"bad format", []string{"compile", bad, "-f", "gif"}, errs.ErrCodeInvalidInput},
		{"bad tie break", []string{"compile", bad, "--tie-break", "diagonal", "--no-cache"}, errs.ErrCodeInvalidInput},
		{"missing file", []string{"compile", filepath.Join(dir, "nope.json")}, errs.ErrCodeFileNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := run(t, "", "compile", bad, "--skip-invalid", "--no-cache"); err != nil {
		t.Errorf("--skip-invalid should skip the bad constraint: %v", err)
	}
}

func TestCompileCommandConfig(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "form.json", formDoc)
	cfg := writeFile(t, dir, "custom.toml", "[engine]\nid_style = \"uuid\"\n\n[cache]\nbackend = \"none\"\n")

	out, err := run(t, "", "--config", cfg, "compile", input)
	if err != nil {
		t.Fatalf("compile error = %v", err)
	}
	if strings.Contains(out, "grid-A-B") {
		t.Errorf("uuid id style should not produce sequential IDs:\n%s", out)
	}
	if !strings.Contains(out, `"id": "grid-`) {
		t.Errorf("expected generated grid IDs:\n%s", out)
	}
}

func TestCheckCommand(t *testing.T) {
	dir := isolate(t)
	input := writeFile(t, dir, "form.json", formDoc)
	compiled := filepath.Join(dir, "compiled.json")
	if _, err := run(t, "", "compile", input, "-o", compiled); err != nil {
		t.Fatal(err)
	}

	if _, err := run(t, "", "check", compiled); err != nil {
		t.Errorf("check of compiled tree error = %v", err)
	}
	if _, err := run(t, "", "check", input, "--outline"); err != nil {
		t.Errorf("check of uncompiled document error = %v", err)
	}

	clash := writeFile(t, dir, "clash.json", `{"root": {"id": "g", "kind": "container", "children": [
		{"id": "A", "row": 0, "col": 0},
		{"id": "B", "row": 0, "col": 0}
	]}}`)
	if _, err := run(t, "", "check", clash); err == nil {
		t.Error("check should reject two children in one cell")
	}
}

func TestCachePathCommand(t *testing.T) {
	dir := isolate(t)

	out, err := run(t, "", "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "cache", appName); strings.TrimSpace(out) != want {
		t.Errorf("cache path = %q, want %q", strings.TrimSpace(out), want)
	}

	if _, err := run(t, "", "cache", "clear"); err != nil {
		t.Errorf("cache clear error = %v", err)
	}
}

func TestErrorMessage(t *testing.T) {
	err := errs.Wrap(errs.ErrCodeNotFound, errs.New(errs.ErrCodeNotFound, "element \"Q\" not in tree"), "constraint 1 (Q below B)")
	want := `constraint 1 (Q below B): element "Q" not in tree (NOT_FOUND)`
	if got := ErrorMessage(err); got != want {
		t.Errorf("ErrorMessage() = %q, want %q", got, want)
	}
}
