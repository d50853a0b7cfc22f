package commands

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/josephlewis42/serialshell/core/shell"
	getopt "github.com/pborman/getopt/v2"
)

// Table holds the built-in commands. Names and documentation are separated
// by shell.DefaultDocDelimiter, Register adapts them to the shell's own
// delimiter.
var Table = []shell.CommandEntry{
	{NameAndDocs: "clear:clear the screen", Func: Clear},
	{NameAndDocs: "echo:[-e] [ARG]... print the arguments", Func: Echo},
	{NameAndDocs: "errno:print the status of the previous line", Func: Errno},
	{NameAndDocs: "hello:[NAME] say hello", Func: Hello},
	{NameAndDocs: "mem:[-h] show heap usage", Func: Mem},
	{NameAndDocs: "sum:N... return the sum of the arguments", Func: Sum},
	{NameAndDocs: "uptime:show how long the shell has been running", Func: Uptime},
}

// Register adds every command in Table to s.
func Register(s *shell.Shell) {
	delim := string(s.DocDelimiter())

	entries := make([]shell.CommandEntry, 0, len(Table))
	for _, entry := range Table {
		entries = append(entries, shell.CommandEntry{
			NameAndDocs: strings.Replace(entry.NameAndDocs, string(shell.DefaultDocDelimiter), delim, 1),
			Func:        entry.Func,
		})
	}
	s.AddCommandTable(entries)
}

func BytesToHuman(bytes int64) string {
	for _, e := range []struct {
		unit  string
		power int64
	}{
		{"P", 1e15},
		{"T", 1e12},
		{"G", 1e9},
		{"M", 1e6},
		{"K", 1e3},
	} {
		quotient := bytes / e.power
		switch {
		case quotient == 0:
			continue
		case quotient > 10:
			return fmt.Sprintf("%d%s", quotient, e.unit)
		default:
			return fmt.Sprintf("%0.1f%s", float64(bytes)/float64(e.power), e.unit)
		}
	}

	return fmt.Sprintf("%d", bytes)
}

// badArgCount reports a command called with the wrong number of arguments.
func badArgCount(s *shell.Shell, name string) int {
	s.Println(name, ": bad arg count")
	return shell.ExitFailure
}

type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a one line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool
	// NeverBail skips printing errors on failure and always runs the
	// callback.
	NeverBail bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (c *SimpleCommand) Flags() *getopt.Set {
	if c.flags == nil {
		c.flags = getopt.New()
	}

	return c.flags
}

// PrintHelp writes help for the command to the given writer. Lines end in
// CRLF for serial terminals.
func (c *SimpleCommand) PrintHelp(w io.Writer) {
	var buf bytes.Buffer
	fmt.Fprint(&buf, "usage: ")
	fmt.Fprintln(&buf, c.Use)
	fmt.Fprintln(&buf, c.Short)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "Flags:")
	c.Flags().PrintOptions(&buf)

	io.WriteString(w, strings.ReplaceAll(buf.String(), "\n", "\r\n"))
}

// Run the command, if flag parsing was successful call the callback.
func (c *SimpleCommand) Run(s *shell.Shell, argv []string, callback func() int) int {
	opts := c.Flags()

	// Add help flag if not overridden.
	if c.ShowHelp == nil {
		c.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	err := opts.Getopt(argv, nil)
	if err != nil && !c.NeverBail {
		s.Printf("error: %s\r\n\r\n", err)

		c.PrintHelp(s)
		return shell.ExitFailure
	}

	if *c.ShowHelp {
		c.PrintHelp(s)
		return shell.ExitSuccess
	}

	return callback()
}
