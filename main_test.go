package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
	"github.com/vyPal/kaleido/lib/driver"
	klex "github.com/vyPal/kaleido/lib/lexer"
	"github.com/vyPal/kaleido/lib/parser"
	"github.com/vyPal/kaleido/lib/project"
)

const sample = `
# Compute the x'th fibonacci number.
extern lt(a b);
def fib(x) fib(x-1)+fib(x-2)*1 < 100;
def avg(a b c) (a+b+c)*0.3333;
fib(40) + avg(1, 2, 3);
`

type result struct {
	stdout string
	stderr string
	err    error
}

func runApp(stdin string, args ...string) result {
	var stdout, stderr bytes.Buffer
	app := newApp()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &stdout
	app.ErrWriter = &stderr
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"kaleido", "--no-color"}, args...))
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func TestReplDefaultAction(t *testing.T) {
	res := runApp("def f(x) x;\nextern g();\n+;\nf(1);\n")
	require.NoError(t, res.err)

	assert.Equal(t, []string{
		"Parsed a function definition.",
		"Parsed an extern.",
		"Parsed a top-level expression.",
	}, grep(res.stderr, "Parsed"))
	assert.Len(t, grep(res.stderr, "Error: "), 1)
	assert.Contains(t, res.stderr, "ready> ")
}

func TestReplIR(t *testing.T) {
	res := runApp("def two() 2;\ntwo()*3;\n", "repl", "--ir")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "define double @two()")
	assert.Contains(t, res.stdout, "define double @__anon_expr()")
	assert.Contains(t, res.stdout, "call double @two()")
}

func TestParseCommand(t *testing.T) {
	res := runApp("", "parse", "-s", "1+2*3; extern sin(x)")
	require.NoError(t, res.err)
	assert.Equal(t, "(toplevel (+ 1 (* 2 3)))\n(extern sin(x))\n", res.stdout)
}

func TestParseCommandReportsErrors(t *testing.T) {
	res := runApp("", "parse", "-s", "def f(a,b) a; 4")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "<string>:1:8: expected ')' in prototype")
	assert.Contains(t, res.stdout, "(toplevel 4)")
}

func TestParseDumpAST(t *testing.T) {
	res := runApp("", "parse", "-d", "-s", "def f(x) x*2; f(1)")
	require.NoError(t, res.err)

	var dump []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &dump))
	require.Len(t, dump, 2)
	assert.Equal(t, "definition", dump[0]["kind"])
	assert.Equal(t, "expression", dump[1]["kind"])
}

func TestParseDumpASTOutOfRange(t *testing.T) {
	res := runApp("", "parse", "-d", "-s", "1e999")
	require.NoError(t, res.err)

	var dump []struct {
		Kind string `json:"kind"`
		Unit struct {
			Body struct {
				Value interface{} `json:"value"`
			} `json:"body"`
		} `json:"unit"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &dump))
	require.Len(t, dump, 1)
	assert.Equal(t, "+Inf", dump[0].Unit.Body.Value)
}

func TestParseTokens(t *testing.T) {
	res := runApp("", "parse", "--tokens", "-s", "def x")
	require.NoError(t, res.err)
	assert.Equal(t, "<string>:1:1\tdef\n<string>:1:5\tIdent(x)\n<string>:1:6\tEOF\n", res.stdout)
}

func TestParseEBNF(t *testing.T) {
	res := runApp("", "parse", "--ebnf")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Program")
}

func TestParseCheck(t *testing.T) {
	res := runApp("", "parse", "--check", "-s", sample)
	require.NoError(t, res.err)
}

func TestParseFromFileAndStdin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.k")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	fromFile := runApp("", "parse", path)
	require.NoError(t, fromFile.err)
	fromStdin := runApp(sample, "parse", "-")
	require.NoError(t, fromStdin.err)

	assert.Equal(t, fromFile.stdout, fromStdin.stdout)
	assert.Len(t, strings.Split(strings.TrimSpace(fromFile.stdout), "\n"), 4)

	res := runApp("", "parse")
	assert.Error(t, res.err)
}

func TestIRCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.ll")
	res := runApp("", "ir", "-o", out, "-s", "extern sin(x); def f(y) sin(y)*2")
	require.NoError(t, res.err)

	ir, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(ir), "define double @f(double %y)")

	res = runApp("", "ir", "-s", "def f(y) z")
	assert.Error(t, res.err)
}

func TestConfigPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), project.ConfigFile)
	require.NoError(t, os.WriteFile(path, []byte("precedence:\n  \"/\": 40\n"), 0644))

	res := runApp("", "--config", path, "parse", "-s", "8/2/2")
	require.NoError(t, res.err)
	assert.Equal(t, "(toplevel (/ (/ 8 2) 2))\n", res.stdout)
}

func TestInitCommand(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "proj")

	res := runApp("k> \n", "init", dir)
	require.NoError(t, res.err)

	conf, err := project.GetConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "k>", conf.Prompt)

	res = runApp("", "init", "--yes", dir)
	assert.Error(t, res.err)

	res = runApp("\nn\n", "init", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "already exists. Overwrite? (y/N)")
	assert.NotContains(t, res.stdout, "Created file:")
	conf, err = project.GetConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "k>", conf.Prompt)

	res = runApp("\ny\n", "init", dir)
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Created file:")
	conf, err = project.GetConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "ready> ", conf.Prompt)

	res = runApp("", "init", "--yes", "--force", "--prompt", "$ ", dir)
	require.NoError(t, res.err)
	conf, err = project.GetConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "$ ", conf.Prompt)
}

func grep(s, substr string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if i := strings.Index(line, substr); i >= 0 {
			lines = append(lines, line[i:])
		}
	}
	return lines
}

func BenchmarkParse(b *testing.B) {
	src := strings.Repeat(sample, 50)
	for i := 0; i < b.N; i++ {
		d := driver.New(parser.New(klex.LexString("", src)))
		d.Collect()
	}
}

func BenchmarkTokenize(b *testing.B) {
	src := strings.Repeat(sample, 50)
	for i := 0; i < b.N; i++ {
		klex.Tokenize("", src)
	}
}
