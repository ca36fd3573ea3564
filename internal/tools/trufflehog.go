package tools

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/edhofdc/sourcecode-scanner/internal/model"
)

// Trufflehog drives the verified secret scanner in filesystem mode. Its
// output is one JSON object per line.
type Trufflehog struct {
	Timeout time.Duration
	logger  zerolog.Logger
}

func NewTrufflehog(timeout time.Duration, logger zerolog.Logger) *Trufflehog {
	return &Trufflehog{Timeout: timeout, logger: logger}
}

func (t *Trufflehog) Installed(ctx context.Context) bool {
	return Installed(ctx, "trufflehog", "--version")
}

// Scan runs trufflehog over each file. Unparseable output lines are skipped;
// records are tagged with the file they came from. The heuristic engine's
// records are merged with this batch by the orchestrator before processing.
func (t *Trufflehog) Scan(ctx context.Context, files []string) model.Batch {
	if !t.Installed(ctx) {
		t.logger.Warn().Msg("trufflehog not installed, relying on heuristic patterns only")
		return model.Batch{Unavailable: true}
	}

	var records []model.RawResult
	for _, file := range files {
		runCtx, cancel := context.WithTimeout(ctx, t.Timeout)
		res := RunWithTimeout(runCtx, "trufflehog", "filesystem", file, "--json", "--no-update")
		cancel()
		if res.Err != nil {
			t.logger.Warn().Err(res.Err).Str("file", file).Msg("trufflehog run failed")
			continue
		}
		records = append(records, t.decodeLines(res.Raw, file)...)
	}
	return model.Batch{Records: records}
}

func (t *Trufflehog) decodeLines(raw []byte, file string) []model.RawResult {
	var out []model.RawResult
	sc := bufio.NewScanner(bytes.NewReader(raw))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var rec model.RawResult
		if err := json.Unmarshal(line, &rec); err != nil {
			continue
		}
		rec["source_file"] = file
		out = append(out, rec)
	}
	return out
}
