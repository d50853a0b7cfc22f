package commands

import (
	"testing"

	"github.com/josephlewis42/serialshell/core/shell"
	"github.com/stretchr/testify/assert"
)

func TestErrno(t *testing.T) {
	s, term := newTestShell()

	assert.Equal(t, "0\r\n", runLine(s, term, "errno"))

	s.Execute("sum 2 3")
	term.Output()
	assert.Equal(t, "5\r\n", runLine(s, term, "errno"))

	// errno itself succeeded.
	assert.Equal(t, "0\r\n", runLine(s, term, "errno"))

	s.Execute("nope")
	term.Output()
	assert.Equal(t, "-1\r\n", runLine(s, term, "errno"))

	assert.Equal(t, shell.ExitFailure, s.Execute("errno extra"))
	assert.Equal(t, "errno: bad arg count\r\n-1\r\n", term.Output())
}
