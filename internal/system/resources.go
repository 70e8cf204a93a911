package system

import (
	"context"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/process"
)

// Resources is a snapshot of this process' resource usage
type Resources struct {
	PID        int32   `json:"pid"`
	CPUPercent float64 `json:"cpu_percent"`
	RSS        uint64  `json:"rss_bytes"`
	Goroutines int     `json:"goroutines"`
	CPUs       int     `json:"cpus"`
}

// Snapshot collects CPU and memory usage of the current process.
func Snapshot(ctx context.Context) (Resources, error) {
	pid := int32(os.Getpid())
	proc, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return Resources{}, err
	}

	cpuPercent, err := proc.CPUPercentWithContext(ctx)
	if err != nil {
		return Resources{}, err
	}

	memInfo, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return Resources{}, err
	}

	return Resources{
		PID:        pid,
		CPUPercent: cpuPercent,
		RSS:        memInfo.RSS,
		Goroutines: runtime.NumGoroutine(),
		CPUs:       LogicalCPUs(ctx),
	}, nil
}

// LogicalCPUs returns the number of logical CPUs, falling back to
// runtime.NumCPU when the host cannot be queried.
func LogicalCPUs(ctx context.Context) int {
	n, err := cpu.CountsWithContext(ctx, true)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// Workers returns the worker count to use for CPU-bound jobs. A positive
// requested value wins; otherwise one worker per logical CPU. The result
// never exceeds jobs when jobs > 0.
func Workers(ctx context.Context, requested, jobs int) int {
	n := requested
	if n <= 0 {
		n = LogicalCPUs(ctx)
	}
	if jobs > 0 && n > jobs {
		n = jobs
	}
	if n < 1 {
		n = 1
	}
	return n
}
