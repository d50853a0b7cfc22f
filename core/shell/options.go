package shell

import (
	"io"
	"log"

	"github.com/josephlewis42/serialshell/core/logger"
)

const (
	// DefaultBufferSize is the capacity of the line buffer.
	DefaultBufferSize = 88
	// DefaultMaxArgs is the most words a line may contain, including the
	// command name.
	DefaultMaxArgs = 10

	minBufferSize = 2
)

type options struct {
	bufferSize    int
	maxArgs       int
	docDelimiter  byte
	altTerminator byte
	tokenizer     Tokenizer
	color         bool
	events        logger.EventRecorder
	logger        *log.Logger
}

func defaultOptions() *options {
	return &options{
		bufferSize:    DefaultBufferSize,
		maxArgs:       DefaultMaxArgs,
		docDelimiter:  DefaultDocDelimiter,
		altTerminator: DefaultAltTerminator,
		tokenizer:     ScanWhitespace,
		events:        logger.NopRecorder{},
		logger:        log.New(io.Discard, "", 0),
	}
}

// Option changes the configuration of a Shell.
type Option func(*options)

// WithBufferSize sets the capacity of the line buffer. Lines hold at most
// n-1 bytes, sizes below 2 are raised to 2.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n < minBufferSize {
			n = minBufferSize
		}
		o.bufferSize = n
	}
}

// WithMaxArgs sets the most words a line may hold, including the command.
func WithMaxArgs(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = 1
		}
		o.maxArgs = n
	}
}

// WithDocDelimiter sets the byte separating command names from their
// documentation.
func WithDocDelimiter(c byte) Option {
	return func(o *options) {
		o.docDelimiter = c
	}
}

// WithAltTerminator sets a byte that ends a line like a carriage return.
// Zero disables the alternate terminator.
func WithAltTerminator(c byte) Option {
	return func(o *options) {
		o.altTerminator = c
	}
}

// WithTokenizer replaces the strategy used to split lines into words.
func WithTokenizer(t Tokenizer) Option {
	return func(o *options) {
		if t != nil {
			o.tokenizer = t
		}
	}
}

// WithColor reports errors in bold red.
func WithColor(enabled bool) Option {
	return func(o *options) {
		o.color = enabled
	}
}

// WithEventRecorder records an event for every line the shell processes.
func WithEventRecorder(r logger.EventRecorder) Option {
	return func(o *options) {
		if r != nil {
			o.events = r
		}
	}
}

// WithLogger sets the logger used for internal errors.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}
