package ttylog

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"
)

// AsciicastFileExt holds the suggested file extension for asciicast files.
const AsciicastFileExt = "cast"

func writeJSONLine(w io.Writer, structure interface{}) error {
	line, err := json.Marshal(structure)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w, "%s\n", string(line))
	return err
}

// NewAsciicastLogSink creates a LogSink compatible with the asciicast v2
// format.
//
// See: https://github.com/asciinema/asciinema/blob/develop/doc/asciicast-v2.md
func NewAsciicastLogSink(w io.Writer) LogSink {
	var (
		firstLogTimeMicros int64
		once               sync.Once
	)

	return func(entry *Entry) error {
		var headerErr error
		once.Do(func() {
			firstLogTimeMicros = entry.TimestampMicros
			// Give generic settings that should work to display most outputs.
			headerErr = writeJSONLine(w, map[string]interface{}{
				"version":   2,
				"width":     80,
				"height":    24,
				"timestamp": time.UnixMicro(firstLogTimeMicros).Unix(),
				"title":     "serialshell session",
				"env": map[string]interface{}{
					"TERM": "vt100",
				},
			})
		})
		if headerErr != nil {
			return headerErr
		}

		if entry.Close {
			// asciicast has no close event, the recording just ends.
			return nil
		}

		direction := "o"
		if entry.FD == FDStdin {
			direction = "i"
		}
		deltaSecond := microsecondsToSeconds(entry.TimestampMicros - firstLogTimeMicros)
		return writeJSONLine(w, &asciicastLogLine{deltaSecond, direction, string(entry.Data)})
	}
}

// AsciicastLogSource parses log events from an asciicast v2 file.
type AsciicastLogSource struct {
	r             *bufio.Reader
	consumeHeader sync.Once
}

var _ LogSource = (*AsciicastLogSource)(nil)

// NewAsciicastLogSource reads log events from an Asciicast formatted file.
func NewAsciicastLogSource(r io.Reader) *AsciicastLogSource {
	return &AsciicastLogSource{r: bufio.NewReader(r)}
}

// Next gets the next log entry, it returns io.EOF if there are no more.
func (src *AsciicastLogSource) Next() (*Entry, error) {
	var headerErr error
	src.consumeHeader.Do(func() {
		_, headerErr = src.r.ReadBytes('\n')
	})
	if headerErr != nil {
		return nil, headerErr
	}

	for {
		line, err := src.r.ReadBytes('\n')
		switch {
		case err == io.EOF && len(bytes.TrimSpace(line)) > 0:
			// Final line without a trailing newline.
		case err != nil:
			return nil, err
		}

		if len(bytes.TrimSpace(line)) == 0 {
			// Skip blank lines
			continue
		}

		var asciicastLine asciicastLogLine
		if err := json.Unmarshal(line, &asciicastLine); err != nil {
			return nil, err
		}

		// Asciicast doesn't support stderr so it's collapsed into stdout.
		var fd FD
		switch asciicastLine.EventType {
		case "o":
			fd = FDStdout
		case "i":
			fd = FDStdin
		default:
			// skip unknown events
			continue
		}

		return &Entry{
			TimestampMicros: secondsToMicroseconds(asciicastLine.TimeSeconds),
			FD:              fd,
			Data:            []byte(asciicastLine.EventData),
		}, nil
	}
}

type asciicastLogLine struct {
	TimeSeconds float64
	EventType   string
	EventData   string
}

func (line *asciicastLogLine) UnmarshalJSON(data []byte) error {
	var v []interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if count := len(v); count != 3 {
		return fmt.Errorf("malformed line, expected 3 entries got %d", count)
	}

	var timeOk, typeOk, dataOk bool
	line.TimeSeconds, timeOk = v[0].(float64)
	line.EventType, typeOk = v[1].(string)
	line.EventData, dataOk = v[2].(string)

	if !timeOk || !typeOk || !dataOk {
		return fmt.Errorf("malformed data in line: %q", v)
	}

	return nil
}

func (line *asciicastLogLine) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{line.TimeSeconds, line.EventType, line.EventData})
}

func microsecondsToSeconds(microseconds int64) (seconds float64) {
	return (float64(microseconds) * float64(time.Microsecond)) / float64(time.Second)
}

func secondsToMicroseconds(seconds float64) (microseconds int64) {
	return int64(float64(seconds)*float64(time.Second)) / int64(time.Microsecond)
}
