package tools

import (
	"context"
	"os/exec"
	"time"
)

// Result carries one external tool invocation's raw output.
type Result struct {
	Tool     string
	Raw      []byte
	Err      error
	Duration time.Duration
}

func RunWithTimeout(ctx context.Context, tool string, args ...string) Result {
	start := time.Now()
	cmd := exec.CommandContext(ctx, tool, args...)
	out, err := cmd.Output()
	return Result{Tool: tool, Raw: out, Err: err, Duration: time.Since(start)}
}

// Installed probes for the binary with a short version call. A missing or
// broken tool disables its pipeline instead of failing the scan.
func Installed(ctx context.Context, tool string, args ...string) bool {
	probe, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return RunWithTimeout(probe, tool, args...).Err == nil
}
