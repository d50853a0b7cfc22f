package commands

import (
	"testing"
)

func TestHello(t *testing.T) {
	cases := goldenTestSuite{
		"world":      {`hello`},
		"named":      {`hello Ada`},
		"extra-args": {`hello a b`},
	}

	cases.Run(t)
}

func TestHelloHelp(t *testing.T) {
	assertHelp(t, "hello -h", "hello [NAME]")
}
