package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/toheart/dumpy"
	"github.com/toheart/dumpy/domain/model"
	"github.com/toheart/dumpy/persistence/factory"
)

// MockDumpRepository 是 DumpRepository 的模拟实现
type MockDumpRepository struct {
	mock.Mock
}

func (m *MockDumpRepository) SaveDump(record *model.DumpRecord) (int64, error) {
	args := m.Called(record)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDumpRepository) FindDumpsBySession(session string) ([]model.DumpRecord, error) {
	args := m.Called(session)
	return args.Get(0).([]model.DumpRecord), args.Error(1)
}

type result struct {
	stdout string
	stderr string
	err    error
}

func runCLI(t *testing.T, c *CLI, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	c.stdout = &stdout
	c.stderr = &stderr
	cmd := c.RootCommand()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func newTestCLI(stdin string) *CLI {
	return New(strings.NewReader(stdin), nil, nil)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunStdinJSON(t *testing.T) {
	res := runCLI(t, newTestCLI(`{"a": [1, "x"], "b": null}`))
	require.NoError(t, res.err)
	want := `[
    "a" => [
        1,
        "x",
    ],
    "b" => NULL,
]
`
	assert.Equal(t, want, res.stdout)
}

func TestRunScalarGetsNewline(t *testing.T) {
	res := runCLI(t, newTestCLI("hello"), "--format", "yaml", "-")
	require.NoError(t, res.err)
	assert.Equal(t, "\"hello\"\n", res.stdout)
}

func TestRunSeveralFilesKeepOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.json", `[true]`)
	b := writeFile(t, dir, "b.yaml", "name: x\n")
	c := writeFile(t, dir, "c.yml", "~\n")

	res := runCLI(t, newTestCLI(""), "-j", "2", a, b, c)
	require.NoError(t, res.err)
	want := "==> " + a + " <==\n[\n    TRUE,\n]\n" +
		"\n==> " + b + " <==\n[\n    \"name\" => \"x\",\n]\n" +
		"\n==> " + c + " <==\nNULL\n"
	assert.Equal(t, want, res.stdout)
}

func TestRunSetOptions(t *testing.T) {
	res := runCLI(t, newTestCLI(`[true, "abcdef"]`),
		"--set", "bool_lowercase=true",
		"--set", "str_max_length=3",
		"--set", "array_indenting=  ",
	)
	require.NoError(t, res.err)
	assert.Equal(t, "[\n  true,\n  \"abc...\",\n]\n", res.stdout)
}

func TestRunRejectsBadSettings(t *testing.T) {
	res := runCLI(t, newTestCLI("1"), "--set", "bogus=1")
	assert.True(t, errors.Is(res.err, dumpy.ErrInvalidOption))

	res = runCLI(t, newTestCLI("1"), "--set", "no-equals")
	assert.ErrorContains(t, res.err, "want name=value")

	res = runCLI(t, newTestCLI("1"), "--format", "xml")
	assert.ErrorContains(t, res.err, "unknown format")

	res = runCLI(t, newTestCLI("{"), "--format", "json")
	assert.ErrorContains(t, res.err, "invalid json")

	res = runCLI(t, newTestCLI(""), filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, res.err, "missing.json")
}

func TestRunConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "dumpy.toml", `
format = "json"

[options]
null_lowercase = true
array_max_elements = 1
`)
	res := runCLI(t, newTestCLI(`[null, 2]`), "--config", cfg)
	require.NoError(t, res.err)
	assert.Equal(t, "[\n    null,\n    ...\n]\n", res.stdout)

	// flags override the file
	res = runCLI(t, newTestCLI(`[null, 2]`), "--config", cfg, "--set", "array_max_elements=5")
	require.NoError(t, res.err)
	assert.Equal(t, "[\n    null,\n    2,\n]\n", res.stdout)

	bad := writeFile(t, dir, "bad.toml", "colour = \"red\"\n")
	res = runCLI(t, newTestCLI("1"), "--config", bad)
	assert.ErrorContains(t, res.err, "unknown keys colour")

	unknown := writeFile(t, dir, "unknown.toml", "[options]\nwidth = 3\n")
	res = runCLI(t, newTestCLI("1"), "--config", unknown)
	assert.True(t, errors.Is(res.err, dumpy.ErrInvalidOption))
}

func TestRunJournalsWithMock(t *testing.T) {
	repo := new(MockDumpRepository)
	repo.On("SaveDump", mock.MatchedBy(func(r *model.DumpRecord) bool {
		return r.Session == "session-1" && r.Source == "-" && r.Output == "TRUE" &&
			strings.Contains(r.Options, `"str_max_length":50`)
	})).Return(int64(1), nil).Once()

	c := newTestCLI("true")
	c.repo = repo
	c.newSession = func() string { return "session-1" }

	res := runCLI(t, c)
	require.NoError(t, res.err)
	assert.Equal(t, "TRUE\n", res.stdout)
	assert.Contains(t, res.stderr, "journaled 1 dump(s)")
	repo.AssertExpectations(t)
}

func TestRunJournalErrorIsReported(t *testing.T) {
	repo := new(MockDumpRepository)
	repo.On("SaveDump", mock.AnythingOfType("*model.DumpRecord")).Return(int64(0), errors.New("disk full"))

	c := newTestCLI("1")
	c.repo = repo
	res := runCLI(t, c)
	assert.ErrorContains(t, res.err, "disk full")
}

func TestRunJournalsToSQLite(t *testing.T) {
	journal := filepath.Join(t.TempDir(), "journal.db")
	c := newTestCLI(`{"k": "v"}`)
	c.newSession = func() string { return "s" }

	res := runCLI(t, c, "--journal", journal, "--set", "round_double=false")
	require.NoError(t, res.err)

	f, err := factory.CreateRepositoryFactory(string(factory.DBTypeSQLite), journal, newLogger(&bytes.Buffer{}, "", false))
	require.NoError(t, err)
	defer factory.CloseFactory(f)

	records, err := f.GetDumpRepository().FindDumpsBySession("s")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, res.stdout, records[0].Output)
	assert.Contains(t, records[0].Options, `"round_double":false`)
}

func TestRunLogFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "dumpy.log")
	res := runCLI(t, newTestCLI("1"), "-v", "--log-file", logFile)
	require.NoError(t, res.err)
	assert.Empty(t, res.stderr)

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "document rendered")
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		raw  string
		want any
	}{
		{"true", true},
		{"FALSE", false},
		{"12", 12},
		{" 7 ", 7},
		{"    ", "    "},
		{"abc", "abc"},
		{"1.5", "1.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseValue(tt.raw), "parseValue(%q)", tt.raw)
	}
}

func TestOptionsJSON(t *testing.T) {
	d, err := dumpy.New(dumpy.WithOption(dumpy.OptArrayIndenting, "  "))
	require.NoError(t, err)
	got, err := optionsJSON(d)
	require.NoError(t, err)
	want := `{"str_max_length":50,"bool_lowercase":false,"null_lowercase":false,"round_double":false,` +
		`"replace_newline":true,"array_max_elements":20,"array_indenting":"  ","object_limited_info":false}`
	assert.Equal(t, want, got)
}
