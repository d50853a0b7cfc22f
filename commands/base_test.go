package commands

import (
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/josephlewis42/serialshell/core/shell"
	"github.com/josephlewis42/serialshell/core/stream/streamtest"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func ExampleBytesToHuman() {

	// < 1k is presented directly
	fmt.Println(BytesToHuman(512))

	// Multiples > 10 are shown without decimal.
	fmt.Println(BytesToHuman(23 * 10e8))

	// Multiples < 10 are shown with decimal.
	fmt.Println(BytesToHuman(5 * 1024))

	// Output: 512
	// 23G
	// 5.1K
}

func TestAllCommands(t *testing.T) {
	for _, entry := range Table {
		name := strings.SplitN(entry.NameAndDocs, string(shell.DefaultDocDelimiter), 2)[0]
		t.Run(name, func(t *testing.T) {
			if entry.Func == nil {
				t.Fatal("nil command", name)
			}
			assert.Contains(t, entry.NameAndDocs, string(shell.DefaultDocDelimiter), "missing documentation")
		})
	}
}

func TestRegister(t *testing.T) {
	cases := map[string]byte{
		"default-delimiter": shell.DefaultDocDelimiter,
		"space-delimiter":   ' ',
		"pipe-delimiter":    '|',
	}

	for tn, delim := range cases {
		t.Run(tn, func(t *testing.T) {
			s := shell.New(shell.WithDocDelimiter(delim))
			Register(s)

			// help plus the table
			assert.Equal(t, len(Table)+1, s.Registry().Len())
			for _, name := range []string{"clear", "echo", "errno", "hello", "mem", "sum", "uptime"} {
				cmd, ok := s.Registry().Lookup(name)
				if assert.True(t, ok, name) {
					assert.Equal(t, name, cmd.Name())
					assert.NotEmpty(t, cmd.Docs())
				}
			}
		})
	}
}

// newTestShell creates a shell with the built-in commands on a simulated
// terminal.
func newTestShell() (*shell.Shell, *streamtest.Stream) {
	term := streamtest.New()
	s := shell.New()
	Register(s)
	s.Attach(term)
	return s, term
}

// runLine executes line and returns what the terminal displayed.
func runLine(s *shell.Shell, term *streamtest.Stream, line string) string {
	s.Execute(line)
	return term.Output()
}

type goldenTestSuite map[string]goldenTest

type goldenTest struct {
	Line string
}

func (gts goldenTestSuite) Run(t *testing.T) {
	t.Helper()

	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	for tn, tc := range gts {
		t.Run(tn, func(t *testing.T) {
			s, term := newTestShell()
			out := runLine(s, term, tc.Line)

			g.Assert(t, tn, []byte(out))
		})
	}
}

// assertHelp checks the output of a command's help flag.
func assertHelp(t *testing.T, line, usage string) {
	t.Helper()

	s, term := newTestShell()
	assert.Equal(t, shell.ExitSuccess, s.Execute(line))

	out := term.Output()
	assert.True(t, strings.HasPrefix(out, "usage: "+usage+"\r\n"), out)
	assert.Contains(t, out, "show this help and exit")
	assert.Equal(t, strings.Count(out, "\n"), strings.Count(out, "\r\n"), "lines must end in CRLF")
}
