package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSum(t *testing.T) {
	cases := goldenTestSuite{
		"no-args":     {`sum`},
		"positive":    {`sum 5 3`},
		"negative":    {`sum -5 3`},
		"not-numbers": {`sum 1 x`},
	}

	cases.Run(t)
}

func TestSumStatus(t *testing.T) {
	s, _ := newTestShell()

	assert.Equal(t, 8, s.Execute("sum 5 3"))
	assert.Equal(t, 8, s.LastErrNo())
	assert.Equal(t, 0, s.Execute("sum"))
}
