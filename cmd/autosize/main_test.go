package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const page = `<html><body>
<p style="font-size: 14px">` + `Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua. ` +
	`Ut enim ad minim veniam, quis nostrud exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat. ` +
	`Duis aute irure dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur.</p>
</body></html>`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReport(t *testing.T) {
	path := writeFile(t, "page.html", page)

	out, err := execute(t, path)
	if err != nil {
		t.Fatal(err)
	}
	for _, exp := range []string{
		"frame width 320, layout width 980",
		"autosizing true",
		"x3.062",
		"14px -> 42.88px",
	} {
		if !strings.Contains(out, exp) {
			t.Errorf("missing %q in output:\n%s", exp, out)
		}
	}

	out, err = execute(t, "--print", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "14px -> 14px") {
		t.Errorf("unexpected output for print:\n%s", out)
	}

	out, err = execute(t, "--all", "--debug-info", "--width", "490", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "<body> BlockBox") || !strings.Contains(out, "cluster: 2.000000") {
		t.Errorf("unexpected output with --all:\n%s", out)
	}
}

func TestConfig(t *testing.T) {
	path := writeFile(t, "page.html", page)
	config := writeFile(t, "settings.toml", "enabled = false\n")

	out, err := execute(t, "--config", config, path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "autosizing false") {
		t.Errorf("unexpected output:\n%s", out)
	}

	invalid := writeFile(t, "invalid.toml", "zoom = 2\n")
	if _, err := execute(t, "--config", invalid, path); err == nil {
		t.Fatal("expected error for invalid config")
	}
	if _, err := execute(t, filepath.Join(t.TempDir(), "missing.html")); err == nil {
		t.Fatal("expected error for missing file")
	}
	if _, err := execute(t); err == nil {
		t.Fatal("expected error without argument")
	}
}
