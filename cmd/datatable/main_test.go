package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/datatable/internal/config"
	"github.com/bjaus/datatable/internal/state"
)

const quietConfig = `
output:
  format: csv
  border: none
table:
  table_css: report
logging:
  level: none
`

const matrix = `{"matrix": {
  "x": {"group_by": "col", "buckets": [{"key": "A"}, {"key": "B"}]},
  "y": {"group_by": ["cat", "sub"], "cat": {"buckets": [
    {"key": "Cat1", "sub": {"buckets": [{"key": "Sub1", "col": [10, 20]}]}}
  ]}}}}`

// fixture writes the named files into a temporary directory and returns it.
func fixture(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
	}
	return dir
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	ctx := state.ContextWithEnv(context.Background())
	return newApp().Run(ctx, append([]string{appName}, args...))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRender(t *testing.T) {
	dir := fixture(t, map[string]string{
		"cfg.yaml":   quietConfig,
		"table.yaml": "rows:\n  - [1, 2, 3]\n  - [{content: total, colSpan: 0}]\n",
	})
	cfg := filepath.Join(dir, "cfg.yaml")
	src := filepath.Join(dir, "table.yaml")

	tests := map[string]struct {
		args []string
		want string
	}{
		"configured format": {
			args: []string{"-c", cfg, "render", src},
			want: "1,2,3\ntotal,,\n",
		},
		"html carries configured table css": {
			args: []string{"-c", cfg, "render", "--to", "html", src},
			want: `<table class="report"><tbody>` +
				`<tr><td>1</td><td>2</td><td>3</td></tr>` +
				`<tr><td colspan="3">total</td></tr>` +
				"</tbody></table>\n",
		},
		"text uses configured border": {
			args: []string{"-c", cfg, "render", "--to", "table", src},
			want: "1  2  3\ntotal\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dst := filepath.Join(t.TempDir(), "out")
			require.NoError(t, run(t, append(tt.args, dst)...))
			assert.Equal(t, tt.want, readFile(t, dst))
		})
	}
}

func TestFlatten(t *testing.T) {
	dir := fixture(t, map[string]string{
		"cfg.yaml":    quietConfig,
		"matrix.json": matrix,
	})
	cfg := filepath.Join(dir, "cfg.yaml")
	src := filepath.Join(dir, "matrix.json")

	tests := map[string]struct {
		to   string
		want string
	}{
		"document": {
			to: "document",
			want: `rows:
  - - ' '
    - header: A
    - header: B
  - - header: Cat1
      colMergeSpan: 100
  - - header: Sub1
    - 10
    - 20
tableCss: report
`,
		},
		"markdown": {
			to: "markdown",
			want: "|      | A   | B   |\n" +
				"| ---- | --- | --- |\n" +
				"| Cat1 |     |     |\n" +
				"| Sub1 | 10  | 20  |\n",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dst := filepath.Join(t.TempDir(), "out")
			require.NoError(t, run(t, "-c", cfg, "flatten", "--to", tt.to, src, dst))
			assert.Equal(t, tt.want, readFile(t, dst))
		})
	}
}

func TestDumpConfig(t *testing.T) {
	dir := fixture(t, map[string]string{"cfg.yaml": quietConfig})
	cfg := filepath.Join(dir, "cfg.yaml")

	dst := filepath.Join(t.TempDir(), "default.yaml")
	require.NoError(t, run(t, "-c", cfg, "dumpconfig", "--default", dst))
	want, err := config.Prepare()
	require.NoError(t, err)
	assert.Equal(t, string(want), readFile(t, dst))

	dst = filepath.Join(t.TempDir(), "actual.yaml")
	require.NoError(t, run(t, "-c", cfg, "dumpconfig", dst))
	got := readFile(t, dst)
	assert.Contains(t, got, "format: csv")
	assert.Contains(t, got, "table_css: report")
	assert.Contains(t, got, "level: none")
}

func TestCommandErrors(t *testing.T) {
	dir := fixture(t, map[string]string{
		"cfg.yaml":   quietConfig,
		"bad.yaml":   "rows: [5]\n",
		"table.yaml": "rows: [[1]]\n",
		"bad.json":   `{"matrix": {}}`,
	})
	cfg := filepath.Join(dir, "cfg.yaml")

	tests := map[string]struct {
		args []string
		want string
	}{
		"no source": {
			args: []string{"-c", cfg, "render"},
			want: "no input source",
		},
		"missing source": {
			args: []string{"-c", cfg, "render", filepath.Join(dir, "absent.yaml")},
			want: "unable to open source",
		},
		"invalid document": {
			args: []string{"-c", cfg, "render", filepath.Join(dir, "bad.yaml")},
			want: "invalid row",
		},
		"unknown format": {
			args: []string{"-c", cfg, "render", "--to", "xml", filepath.Join(dir, "table.yaml")},
			want: "unable to use output format",
		},
		"document is flatten only": {
			args: []string{"-c", cfg, "render", "--to", "document", filepath.Join(dir, "table.yaml")},
			want: "unable to use output format",
		},
		"bad aggregation": {
			args: []string{"-c", cfg, "flatten", filepath.Join(dir, "bad.json")},
			want: "matrix.x",
		},
		"missing configuration": {
			args: []string{"-c", filepath.Join(dir, "absent.yaml"), "render", filepath.Join(dir, "table.yaml")},
			want: "unable to prepare configuration",
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
