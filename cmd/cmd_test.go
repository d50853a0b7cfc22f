package cmd

import (
	"bytes"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/josephlewis42/serialshell/core/config"
	"github.com/josephlewis42/serialshell/core/ttylog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCLI executes the root command with args and returns what it wrote to
// stdout.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(ioutil.Discard)
	rootCmd.SetArgs(args)
	defer func() {
		showStatus = false
		showInput = false
	}()

	err := rootCmd.Execute()
	return out.String(), err
}

func initConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	_, err := runCLI(t, "", "init", "--config", dir)
	require.Nil(t, err)
	return dir
}

func TestExec(t *testing.T) {
	dir := initConfig(t)

	cases := map[string]struct {
		args    []string
		want    string
		wantErr bool
	}{
		"echo": {
			args: []string{"echo", "hello", "world"},
			want: "hello world\r\n",
		},
		"command-flags": {
			args: []string{"echo", "-e", `a\nb`},
			want: "a\r\nb\r\n",
		},
		"status": {
			args: []string{"--status", "sum", "5", "3"},
			want: "8\r\nstatus: 8\n",
		},
		"failure": {
			args:    []string{"sum", "5", "3"},
			want:    "8\r\n",
			wantErr: true,
		},
		"not-found": {
			args:    []string{"bogus"},
			want:    "\"bogus\": -1: command not found\r\n",
			wantErr: true,
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			args := append([]string{"exec", "--config", dir}, tc.args...)
			out, err := runCLI(t, "", args...)

			assert.Equal(t, tc.want, out)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.Nil(t, err)
			}
		})
	}
}

func TestBuiltins(t *testing.T) {
	out, err := runCLI(t, "", "builtins", "--config", t.TempDir())
	require.Nil(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	var names []string
	for _, line := range lines {
		names = append(names, strings.Fields(line)[0])
	}
	assert.Equal(t, []string{"clear", "echo", "errno", "hello", "help", "mem", "sum", "uptime"}, names)
}

func TestPlaygroundEvents(t *testing.T) {
	dir := initConfig(t)

	out, err := runCLI(t, "sum 1 1\rnope\r", "playground", "--config", dir)
	require.Nil(t, err)
	assert.Contains(t, out, "sum 1 1\r\n2\r\n")
	assert.Contains(t, out, "Last status: -1\r\n")

	t.Run("report", func(t *testing.T) {
		out, err := runCLI(t, "", "events", "report", "--config", dir)
		require.Nil(t, err)
		assert.Contains(t, out, "log_entries: 2")
		assert.Contains(t, out, "sum: 1")
		assert.Contains(t, out, "nope: 1")
	})

	t.Run("failures", func(t *testing.T) {
		out, err := runCLI(t, "", "events", "failures", "--config", dir)
		require.Nil(t, err)
		assert.Contains(t, out, "nope")
	})

	t.Run("sessions", func(t *testing.T) {
		out, err := runCLI(t, "", "events", "sessions", "--config", dir)
		require.Nil(t, err)
		assert.Contains(t, out, "playground")
		assert.Contains(t, out, "sum 1 1")
	})
}

func TestLogs(t *testing.T) {
	dir := initConfig(t)
	cfg, err := config.Load(dir)
	require.Nil(t, err)

	fd, err := cfg.CreateSessionLog("test." + ttylog.UMLFileExt)
	require.Nil(t, err)
	sink := ttylog.NewUMLLogSink(fd)
	for _, e := range []*ttylog.Entry{
		{TimestampMicros: 1e6, FD: ttylog.FDStdin, Data: []byte("hi\r")},
		{TimestampMicros: 2e6, FD: ttylog.FDStdout, Data: []byte("hi\r\n")},
	} {
		require.Nil(t, sink(e))
	}
	require.Nil(t, fd.Close())

	t.Run("ls", func(t *testing.T) {
		out, err := runCLI(t, "", "logs", "ls", "--config", dir)
		require.Nil(t, err)
		assert.Contains(t, out, "test.log")
	})

	t.Run("cat-by-name", func(t *testing.T) {
		out, err := runCLI(t, "", "logs", "cat", "--config", dir, "test.log")
		require.Nil(t, err)
		assert.Equal(t, "hi\r\n", out)
	})

	t.Run("cat-input", func(t *testing.T) {
		path := filepath.Join(dir, config.LogsDirName, "test.log")
		out, err := runCLI(t, "", "logs", "cat", "--input", path)
		require.Nil(t, err)
		assert.Equal(t, "hi\r", out)
	})

	t.Run("play", func(t *testing.T) {
		out, err := runCLI(t, "", "logs", "play", "-i", "1ms", "--config", dir, "test.log")
		require.Nil(t, err)
		assert.Equal(t, "hi\r\n", out)
	})

	t.Run("asciicast", func(t *testing.T) {
		out, err := runCLI(t, "", "logs", "asciicast", "--config", dir, "test.log")
		require.Nil(t, err)

		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, `[1,"o","hi\r\n"]`, lines[2])
	})

	t.Run("missing", func(t *testing.T) {
		_, err := runCLI(t, "", "logs", "cat", "--config", dir, "nope.log")
		assert.Error(t, err)
	})
}
