package stream

import (
	"io"

	"github.com/juju/ratelimit"
)

// bitsPerByte is the framing cost of one byte on an 8N1 serial line.
const bitsPerByte = 10

// Throttle limits the rate of writes to w to what a serial line running at
// baud could carry. A non-positive baud returns w unchanged.
func Throttle(w io.Writer, baud int) io.Writer {
	if baud <= 0 {
		return w
	}

	rate := float64(baud) / bitsPerByte
	capacity := int64(rate / 10)
	if capacity < 1 {
		capacity = 1
	}

	return ratelimit.Writer(w, ratelimit.NewBucketWithRate(rate, capacity))
}
