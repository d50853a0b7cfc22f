package commands

import (
	"time"

	"github.com/josephlewis42/serialshell/core/shell"
)

var (
	bootTime = time.Now()
	timeNow  = time.Now
)

// Uptime reports how long the process has been running.
func Uptime(s *shell.Shell, argv []string) int {
	cmd := &SimpleCommand{
		Use:   "uptime",
		Short: "Show how long the shell has been running.",
	}

	return cmd.Run(s, argv, func() int {
		now := timeNow()
		uptime := now.Sub(bootTime)
		day := (24 * time.Hour)
		uptimeDays := uptime / day
		uptime -= uptimeDays * day
		uptimeHours := uptime / time.Hour
		uptime -= uptimeHours * time.Hour
		uptimeMins := uptime / time.Minute
		uptime -= uptimeMins * time.Minute
		uptimeSecs := uptime / time.Second

		s.Printf(
			"%s up %d days, %02d:%02d:%02d\r\n",
			now.Format("15:04:05"),
			uptimeDays,
			uptimeHours,
			uptimeMins,
			uptimeSecs,
		)

		return shell.ExitSuccess
	})
}

var _ shell.CommandFunc = Uptime
