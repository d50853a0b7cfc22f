package commands

import (
	"runtime"
	"strconv"

	"github.com/josephlewis42/serialshell/core/shell"
)

var readMemStats = runtime.ReadMemStats

// Mem prints figures about the Go heap, like free does for system memory.
func Mem(s *shell.Shell, argv []string) int {
	cmd := &SimpleCommand{
		Use:   "mem [OPTION]...",
		Short: "Display heap usage.",
	}

	humanSize := cmd.Flags().BoolLong("human-readable", 'h', "print human readable sizes")
	cmd.ShowHelp = cmd.Flags().BoolLong("help", '?', "show help and exit")

	return cmd.Run(s, argv, func() int {
		var stats runtime.MemStats
		readMemStats(&stats)

		size := func(n uint64) string {
			if *humanSize {
				return BytesToHuman(int64(n))
			}
			return strconv.FormatUint(n, 10)
		}

		s.Printf("%-8s %12s %12s %12s %12s\r\n", "", "total", "in use", "idle", "objects")
		s.Printf("%-8s %12s %12s %12s %12d\r\n", "Heap:",
			size(stats.HeapSys),
			size(stats.HeapInuse),
			size(stats.HeapIdle),
			stats.HeapObjects)
		return shell.ExitSuccess
	})
}

var _ shell.CommandFunc = Mem
