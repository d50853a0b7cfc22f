package commands

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUptime(t *testing.T) {
	oldBoot, oldNow := bootTime, timeNow
	defer func() {
		bootTime, timeNow = oldBoot, oldNow
	}()

	bootTime = time.Date(2021, 7, 1, 23, 0, 0, 0, time.Local)
	timeNow = func() time.Time {
		return bootTime.Add(49*time.Hour + 2*time.Minute + 3*time.Second)
	}

	s, term := newTestShell()
	assert.Equal(t, "00:02:03 up 2 days, 01:02:03\r\n", runLine(s, term, "uptime"))
}

func TestUptimeHelp(t *testing.T) {
	assertHelp(t, "uptime --help", "uptime")
}
