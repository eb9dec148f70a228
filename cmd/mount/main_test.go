package main

import (
	"bytes"
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/mount/internal/errors"
)

// run executes the CLI with args against a fresh config directory.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))

	full := append([]string{args[0], "--config", t.TempDir()}, args[1:]...)
	cmd.SetArgs(full)
	err := cmd.Execute()
	return out.String(), err
}

func TestRenderFlags(t *testing.T) {
	out, err := run(t, "", "render",
		"--tag", "a",
		"--attr", "href=http://example.com",
		"--attr", "target=_blank",
		"--content", "Click")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	want := `<div id="root"><a href="http://example.com" target="_blank">Click</a></div>`
	if !strings.Contains(out, want) {
		t.Errorf("output missing %s:\n%s", want, out)
	}
}

func TestRenderTimes(t *testing.T) {
	out, err := run(t, "", "render", "--tag", "li", "--content", "x", "--times", "2")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<div id="root"><li>x</li><li>x</li></div>`) {
		t.Errorf("expected two siblings:\n%s", out)
	}
}

func TestRenderTimesMustBePositive(t *testing.T) {
	for _, times := range []string{"0", "-2"} {
		out, err := run(t, "", "render", "--tag", "li", "--times", times)
		if err == nil {
			t.Fatalf("--times %s: expected error, got output:\n%s", times, out)
		}
		var e *errors.Error
		if !stderrors.As(err, &e) || e.Category != errors.CategoryCLI {
			t.Errorf("--times %s: error = %v, want a cli error", times, err)
		}
		if out != "" {
			t.Errorf("--times %s: wrote a document:\n%s", times, out)
		}
	}
}

func TestRenderStdin(t *testing.T) {
	out, err := run(t, `{"type":"p","props":{"class":"note","children":"ignored"},"children":"<b>hi</b>"}`,
		"render", "--file", "-")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<p class="note"><b>hi</b></p>`) {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRenderText(t *testing.T) {
	out, err := run(t, "", "render", "--tag", "p", "--content", "<b>hi</b>", "--text")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, `<p>&lt;b&gt;hi&lt;/b&gt;</p>`) {
		t.Errorf("content should be escaped:\n%s", out)
	}
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"unknown tag", []string{"render", "--tag", "notatag"}, errors.CodeInvalidTag},
		{"bad tag syntax", []string{"render", "--tag", "1div"}, errors.CodeInvalidTag},
		{"bad attribute", []string{"render", "--tag", "div", "--attr", "a b=c"}, errors.CodeInvalidAttribute},
		{"missing container", []string{"render", "--tag", "div", "--container", "#nope"}, errors.CodeNoContainer},
		{"void container", []string{"render", "--tag", "div", "--container", "meta"}, errors.CodeDetachedContainer},
		{"invalid selector", []string{"render", "--tag", "div", "--container", "div >"}, errors.CodeInvalidSelector},
		{"missing document", []string{"render", "--tag", "div", "--document", "/does/not/exist.html"}, errors.CodeDocument},
		{"missing file", []string{"render", "--file", "/does/not/exist.json"}, errors.CodeBadDescriptor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, "", tt.args...)
			if errors.Code(err) != tt.code {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestRenderRequiresDescriptor(t *testing.T) {
	if _, err := run(t, "", "render"); err == nil {
		t.Error("expected error without --tag or --file")
	}
	if _, err := run(t, "", "render", "--file", "-", "--tag", "p"); err == nil {
		t.Error("expected error when combining --file and --tag")
	}
}

func TestRenderDocumentAndOut(t *testing.T) {
	dir := t.TempDir()
	docPath := filepath.Join(dir, "page.html")
	outPath := filepath.Join(dir, "out.html")
	if err := os.WriteFile(docPath, []byte(`<html><body><main class="content"></main></body></html>`), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "", "render", "--tag", "h1", "--content", "Title",
		"--document", docPath, "--container", "main.content", "--out", outPath)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "" {
		t.Errorf("stdout should be empty with --out, got %q", out)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `<main class="content"><h1>Title</h1></main>`) {
		t.Errorf("unexpected file:\n%s", data)
	}
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	run := func(args ...string) error {
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(append([]string{"init", "--config", dir}, args...))
		return cmd.Execute()
	}

	if err := run(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "mount.json")); err != nil {
		t.Fatalf("mount.json not written: %v", err)
	}
	if err := run(); err == nil {
		t.Error("second init should fail without --force")
	}
	if err := run("--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}
}

func TestPublishToDir(t *testing.T) {
	dir := t.TempDir()
	descPath := filepath.Join(dir, "card.json")
	if err := os.WriteFile(descPath, []byte(`{"tag":"section","attributes":{"id":"card"},"content":"hello"}`), 0644); err != nil {
		t.Fatal(err)
	}
	outDir := filepath.Join(dir, "public")

	out, err := run(t, "", "publish", descPath, "--dir", outDir, "--name", "site/index.html")
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !strings.Contains(out, "Published") {
		t.Errorf("unexpected output: %q", out)
	}

	data, err := os.ReadFile(filepath.Join(outDir, "site", "index.html"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `<section id="card">hello</section>`) {
		t.Errorf("published document missing element:\n%s", data)
	}
}

func TestPublishNotConfigured(t *testing.T) {
	t.Setenv("MOUNT_PUBLISH_BUCKET", "")
	_, err := run(t, "", "publish")
	if errors.Code(err) != errors.CodePublishDisabled {
		t.Errorf("error = %v, want M041", err)
	}
}

func TestVersionShort(t *testing.T) {
	out, err := run(t, "", "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version = %q, want %q", out, version)
	}
}

func TestParseAttr(t *testing.T) {
	tests := []struct {
		in, key, value string
	}{
		{"href=http://x.com/?a=b", "href", "http://x.com/?a=b"},
		{"disabled", "disabled", ""},
		{" class =big", "class", "big"},
		{"data-x=", "data-x", ""},
	}
	for _, tt := range tests {
		key, value := parseAttr(tt.in)
		if key != tt.key || value != tt.value {
			t.Errorf("parseAttr(%q) = %q, %q; want %q, %q", tt.in, key, value, tt.key, tt.value)
		}
	}
}
