package ttylog

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

// UMLFileExt holds the suggested file extension for user-mode-linux logs.
const UMLFileExt = "log"

type umlOp int32

const (
	umlOpen  umlOp = 1
	umlClose umlOp = 2
	umlWrite umlOp = 3
	umlExec  umlOp = 4
)

type umlDir int32

const (
	umlRead  umlDir = 1
	umlWrote umlDir = 2
)

// umlHeader precedes the data of every event in a user-mode-linux TTY log.
// The same format is written by Kippo and Cowrie.
type umlHeader struct {
	Operation    int32
	Tty          uint32 // always 0
	Size         int32  // bytes of data following the header
	Direction    int32
	Seconds      uint32
	Microseconds uint32
}

func writeUMLEvent(w io.Writer, entry *Entry, op umlOp) error {
	direction := umlWrote
	if entry.FD == FDStdin {
		direction = umlRead
	}

	header := umlHeader{
		Operation:    int32(op),
		Size:         int32(len(entry.Data)),
		Direction:    int32(direction),
		Seconds:      uint32(entry.TimestampMicros / int64(time.Second/time.Microsecond)),
		Microseconds: uint32(entry.TimestampMicros % int64(time.Second/time.Microsecond)),
	}
	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return err
	}

	if len(entry.Data) > 0 {
		if _, err := w.Write(entry.Data); err != nil {
			return err
		}
	}
	return nil
}

// NewUMLLogSink creates a LogSink compatible with the user-mode-linux TTY
// log format.
func NewUMLLogSink(w io.Writer) LogSink {
	return func(entry *Entry) error {
		if entry.Close {
			return writeUMLEvent(w, &Entry{TimestampMicros: entry.TimestampMicros, FD: entry.FD}, umlClose)
		}
		return writeUMLEvent(w, entry, umlWrite)
	}
}

// UMLLogSource parses log events from a user-mode-linux formatted file.
type UMLLogSource struct {
	r io.Reader
}

var _ LogSource = (*UMLLogSource)(nil)

// NewUMLLogSource reads log events from a user-mode-linux formatted file.
func NewUMLLogSource(r io.Reader) *UMLLogSource {
	return &UMLLogSource{r: r}
}

// Next gets the next log entry, it returns io.EOF if there are no more.
func (src *UMLLogSource) Next() (*Entry, error) {
	for {
		var header umlHeader
		switch err := binary.Read(src.r, binary.LittleEndian, &header); {
		case err == io.EOF:
			return nil, io.EOF
		case errors.Is(err, io.ErrUnexpectedEOF):
			return nil, fmt.Errorf("truncated event header: %w", err)
		case err != nil:
			return nil, err
		}

		if header.Size < 0 {
			return nil, fmt.Errorf("invalid event size %d", header.Size)
		}
		data := make([]byte, header.Size)
		if _, err := io.ReadFull(src.r, data); err != nil {
			return nil, fmt.Errorf("truncated event data: %w", err)
		}

		timestamp := int64(header.Seconds)*int64(time.Second/time.Microsecond) + int64(header.Microseconds)

		// UML doesn't distinguish between stdout and stderr so it's all
		// reported as stdout.
		fd := FDStdout
		if umlDir(header.Direction) == umlRead {
			fd = FDStdin
		}

		switch umlOp(header.Operation) {
		case umlClose:
			return &Entry{TimestampMicros: timestamp, FD: fd, Close: true}, nil
		case umlWrite:
			return &Entry{TimestampMicros: timestamp, FD: fd, Data: data}, nil
		default:
			// Skip opens, execs and unknown operations.
			continue
		}
	}
}
