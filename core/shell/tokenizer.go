package shell

import (
	"bufio"
	"errors"
	"strings"

	"github.com/anmitsu/go-shlex"
)

// DefaultDelimiters separate words on a command line.
const DefaultDelimiters = " \t\r\n"

// ErrUnterminatedQuote is returned by ScanShellWords when a line ends inside
// a quoted string or after a trailing backslash.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Tokenizer splits a command line into words.
//
// Tokenizers follow the bufio.SplitFunc contract: the dispatcher pulls one
// word at a time and each call resumes where the previous one stopped, so it
// can give up as soon as a line holds too many words.
type Tokenizer = bufio.SplitFunc

// ScanWhitespace splits words on spaces, tabs, carriage returns and line
// feeds. It is the default tokenizer.
var ScanWhitespace Tokenizer = ScanDelimited(DefaultDelimiters)

// ScanDelimited creates a Tokenizer that splits on any byte in delims.
// Runs of delimiters never produce empty words.
func ScanDelimited(delims string) Tokenizer {
	isDelim := func(c byte) bool {
		return strings.IndexByte(delims, c) >= 0
	}

	return func(data []byte, atEOF bool) (int, []byte, error) {
		start := 0
		for start < len(data) && isDelim(data[start]) {
			start++
		}

		for i := start; i < len(data); i++ {
			if isDelim(data[i]) {
				return i + 1, data[start:i], nil
			}
		}

		if atEOF && len(data) > start {
			return len(data), data[start:], nil
		}

		// Request more data.
		return start, nil, nil
	}
}

// ScanShellWords splits words on whitespace like ScanWhitespace but keeps
// single and double quoted strings and backslash escaped characters
// together. Quotes and escapes are removed from the returned words.
func ScanShellWords(data []byte, atEOF bool) (int, []byte, error) {
	isSpace := func(c byte) bool {
		return strings.IndexByte(DefaultDelimiters, c) >= 0
	}

	start := 0
	for start < len(data) && isSpace(data[start]) {
		start++
	}

	var quote byte
	escaped := false
	for i := start; i < len(data); i++ {
		c := data[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && quote != '\'':
			escaped = true
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"':
			quote = c
		case isSpace(c):
			word, err := unquoteWord(data[start:i])
			return i + 1, word, err
		}
	}

	switch {
	case !atEOF:
		return start, nil, nil
	case len(data) == start:
		return len(data), nil, nil
	case quote != 0 || escaped:
		return 0, nil, ErrUnterminatedQuote
	}

	word, err := unquoteWord(data[start:])
	return len(data), word, err
}

func unquoteWord(raw []byte) ([]byte, error) {
	parts, err := shlex.Split(string(raw), true)
	if err != nil {
		return nil, err
	}

	// Never return nil, that would end the scan early for words like "".
	word := []byte{}
	return append(word, strings.Join(parts, "")...), nil
}
