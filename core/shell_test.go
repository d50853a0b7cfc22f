package core

import (
	"io/ioutil"
	"log"
	"testing"

	"github.com/josephlewis42/serialshell/core/config"
	"github.com/josephlewis42/serialshell/core/logger"
	"github.com/josephlewis42/serialshell/core/shell"
	"github.com/josephlewis42/serialshell/core/stream/streamtest"
	"github.com/stretchr/testify/assert"
)

func TestNewShell(t *testing.T) {
	discard := log.New(ioutil.Discard, "", 0)

	t.Run("default", func(t *testing.T) {
		term := streamtest.New()
		sh := NewShell(config.Default(), term, logger.NopRecorder{}, discard)

		assert.Equal(t, byte(':'), sh.DocDelimiter())
		assert.Equal(t, 88, sh.Editor().Capacity())

		_, ok := sh.Registry().Lookup("echo")
		assert.True(t, ok, "built-in commands are registered")

		assert.Equal(t, shell.ExitSuccess, sh.Execute(`echo "a  b"`))
		assert.Equal(t, "\"a b\"\r\n", term.Output())
	})

	t.Run("configured", func(t *testing.T) {
		cfg := config.Default()
		cfg.Shell.BufferSize = 32
		cfg.Shell.MaxArgs = 2
		cfg.Shell.DocDelimiter = "|"
		cfg.Shell.AltTerminator = ""
		cfg.Shell.Tokenizer = config.TokenizerShlex

		term := streamtest.New()
		sh := NewShell(cfg, term, logger.NopRecorder{}, discard)

		assert.Equal(t, byte('|'), sh.DocDelimiter())
		assert.Equal(t, 32, sh.Editor().Capacity())

		assert.Equal(t, shell.ExitSuccess, sh.Execute(`echo "a  b"`))
		assert.Equal(t, "a  b\r\n", term.Output())

		assert.Equal(t, shell.ExitFailure, sh.Execute("echo a b"))
		assert.Equal(t, "-1: Too many arguments to parse\r\n", term.Output())

		term.PressKeys("echo a;b\r")
		sh.ExecuteIfInput()
		assert.Equal(t, "echo a;b\r\na;b\r\n", term.Output())
	})
}
