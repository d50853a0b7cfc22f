// Package logger is a standardized event logging framework for the shell.
//
// Every line the shell finishes processing produces one event, events are
// stored as newline delimited JSON so they can be summarized later.
package logger
