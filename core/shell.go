package core

import (
	"log"

	"github.com/josephlewis42/serialshell/commands"
	"github.com/josephlewis42/serialshell/core/config"
	"github.com/josephlewis42/serialshell/core/logger"
	"github.com/josephlewis42/serialshell/core/shell"
	"github.com/josephlewis42/serialshell/core/stream"
)

// ShellOptions converts the shell section of a configuration into options.
func ShellOptions(cfg *config.ShellConfig) []shell.Option {
	tokenizer := shell.ScanWhitespace
	if cfg.Tokenizer == config.TokenizerShlex {
		tokenizer = shell.ScanShellWords
	}

	return []shell.Option{
		shell.WithBufferSize(cfg.BufferSize),
		shell.WithMaxArgs(cfg.MaxArgs),
		shell.WithDocDelimiter(cfg.DocDelimiterByte()),
		shell.WithAltTerminator(cfg.AltTerminatorByte()),
		shell.WithTokenizer(tokenizer),
		shell.WithColor(cfg.Color),
	}
}

// NewShell creates a shell configured by cfg with the built-in commands
// registered, attached to st. Events are sent to events and internal
// errors to errLog.
func NewShell(cfg *config.Configuration, st stream.Stream, events logger.EventRecorder, errLog *log.Logger) *shell.Shell {
	opts := append(ShellOptions(&cfg.Shell),
		shell.WithEventRecorder(events),
		shell.WithLogger(errLog),
	)

	sh := shell.New(opts...)
	commands.Register(sh)
	sh.Attach(st)
	return sh
}
