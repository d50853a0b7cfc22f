package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	cfg := EditorConfig{Capacity: 8, AltTerminator: ';'}

	cases := map[string]struct {
		state          State
		input          byte
		expectedState  State
		expectedEffect Effect
	}{
		"nul":                 {State{Collecting, 3}, 0x00, State{Collecting, 3}, EffectNone},
		"printable":           {State{Collecting, 0}, 'a', State{Collecting, 1}, EffectAppend},
		"backspace":           {State{Collecting, 3}, '\b', State{Collecting, 2}, EffectErase},
		"delete":              {State{Collecting, 3}, 0x7f, State{Collecting, 2}, EffectErase},
		"backspace-empty":     {State{Collecting, 0}, '\b', State{Collecting, 0}, EffectNone},
		"retype":              {State{Collecting, 3}, 0x12, State{Collecting, 3}, EffectRetype},
		"kill":                {State{Collecting, 5}, 0x15, State{Collecting, 0}, EffectKill},
		"carriage-return":     {State{Collecting, 4}, '\r', State{LineReady, 4}, EffectTerminate},
		"alt-terminator":      {State{Collecting, 4}, ';', State{LineReady, 4}, EffectTerminate},
		"line-feed":           {State{Collecting, 4}, '\n', State{Collecting, 4}, EffectNone},
		"fills-buffer":        {State{Collecting, 6}, 'z', State{LineReady, 7}, EffectAppend},
		"ready-starts-over":   {State{LineReady, 5}, 'a', State{Collecting, 1}, EffectAppend},
		"ready-empty-return":  {State{LineReady, 5}, '\r', State{LineReady, 0}, EffectTerminate},
		"high-bit-is-content": {State{Collecting, 0}, 0xc3, State{Collecting, 1}, EffectAppend},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			state, effect := cfg.Transition(tc.state, tc.input)
			assert.Equal(t, tc.expectedState, state)
			assert.Equal(t, tc.expectedEffect, effect)
		})
	}

	t.Run("alt-terminator-disabled", func(t *testing.T) {
		cfg := EditorConfig{Capacity: 8}
		state, effect := cfg.Transition(State{Collecting, 0}, ';')
		assert.Equal(t, State{Collecting, 1}, state)
		assert.Equal(t, EffectAppend, effect)

		state, effect = cfg.Transition(State{Collecting, 0}, 0)
		assert.Equal(t, State{Collecting, 0}, state)
		assert.Equal(t, EffectNone, effect)
	})
}

// feed sends every byte of input to the editor and returns the echo and
// whether the last byte completed a line.
func feed(e *LineEditor, input string) (string, bool) {
	var echo []byte
	ready := false
	for i := 0; i < len(input); i++ {
		var out []byte
		out, ready = e.Feed(input[i])
		echo = append(echo, out...)
	}
	return string(echo), ready
}

func TestLineEditor(t *testing.T) {
	cases := map[string]struct {
		input         string
		expectedEcho  string
		expectedLine  string
		expectedReady bool
	}{
		"typing":            {"echo", "echo", "echo", false},
		"return":            {"echo\r", "echo\r\n", "echo", true},
		"lf-after-return":   {"ls\r\n", "ls\r\n", "", false},
		"erase":             {"ab\bc", "ab\b \bc", "ac", false},
		"erase-past-start":  {"a\b\b\x7fb", "a\b \bb", "b", false},
		"retype":            {"abc\x12", "abc\r\nabc", "abc", false},
		"kill":              {"abc\x15d", "abcXXX\r\nd", "d", false},
		"nul":               {"a\x00b", "ab", "ab", false},
		"alt-terminator":    {"ls;", "ls\r\n", "ls", true},
		"forced-flush":      {"abcdefg", "abcdefg", "abcdefg", true},
		"empty-line":        {"\r", "\r\n", "", true},
		"erase-then-return": {"x\b\r", "x\b \b\r\n", "", true},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			e := NewLineEditor(EditorConfig{Capacity: 8, AltTerminator: ';'})

			echo, ready := feed(e, tc.input)
			assert.Equal(t, tc.expectedEcho, echo)
			assert.Equal(t, tc.expectedLine, e.Line())
			assert.Equal(t, tc.expectedReady, ready)
			assert.Equal(t, len(e.Line()), e.State().Cursor)
		})
	}
}

func TestLineEditorNewLineAfterReady(t *testing.T) {
	e := NewLineEditor(EditorConfig{Capacity: 8})

	_, ready := feed(e, "one\r")
	assert.True(t, ready)

	_, ready = feed(e, "two")
	assert.False(t, ready)
	assert.Equal(t, "two", e.Line())
}

func TestLineEditorLoad(t *testing.T) {
	e := NewLineEditor(EditorConfig{Capacity: 8})

	e.Load("short")
	assert.Equal(t, "short", e.Line())
	assert.Equal(t, State{LineReady, 5}, e.State())

	e.Load("much too long")
	assert.Equal(t, "much to", e.Line())

	e.Reset()
	assert.Equal(t, "", e.Line())
	assert.Equal(t, State{Collecting, 0}, e.State())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "collecting", Collecting.String())
	assert.Equal(t, "line-ready", LineReady.String())
	assert.Equal(t, "unknown", Mode(42).String())
}
