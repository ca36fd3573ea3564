package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/edhofdc/sourcecode-scanner/internal/config"
	"github.com/edhofdc/sourcecode-scanner/internal/harvest"
	"github.com/edhofdc/sourcecode-scanner/internal/model"
	"github.com/edhofdc/sourcecode-scanner/internal/process"
	"github.com/edhofdc/sourcecode-scanner/internal/secrets"
	"github.com/edhofdc/sourcecode-scanner/internal/tools"
)

// Engine orchestrates one scan: harvest files from the target, feed the three
// tool pipelines, and assemble the result. The pipelines share no mutable
// state, so they run concurrently and join before aggregation.
type Engine struct {
	cfg       config.Config
	logger    zerolog.Logger
	tracker   *Tracker
	harvester *harvest.Harvester
	semgrep   *tools.Semgrep
	grype     *tools.Grype
	truffle   *tools.Trufflehog
	heuristic *secrets.Engine
}

func New(cfg config.Config, tracker *Tracker, logger zerolog.Logger) *Engine {
	toolTimeout := time.Duration(cfg.ToolTimeoutMs) * time.Millisecond
	httpTimeout := time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond
	return &Engine{
		cfg:       cfg,
		logger:    logger,
		tracker:   tracker,
		harvester: harvest.New(cfg.UserAgent, httpTimeout, true, logger),
		semgrep:   tools.NewSemgrep(cfg.SemgrepRulesets, toolTimeout, logger),
		grype:     tools.NewGrype(toolTimeout, logger),
		truffle:   tools.NewTrufflehog(toolTimeout, logger),
		heuristic: secrets.New(logger),
	}
}

// Scan runs the full pipeline for one requester. The per-scan download
// directory is torn down before returning; the result keeps only the file
// paths for its counts.
func (e *Engine) Scan(ctx context.Context, requester, targetURL string) (*model.ScanResult, error) {
	if !e.tracker.Begin(requester, targetURL) {
		return nil, fmt.Errorf("a scan is already running for %s", requester)
	}
	defer e.tracker.End(requester)

	scanDir := filepath.Join(e.cfg.TempDir, fmt.Sprintf("scan_%d", time.Now().UnixNano()))
	defer func() {
		if err := os.RemoveAll(scanDir); err != nil {
			e.logger.Warn().Err(err).Msg("failed to clean up scan directory")
		}
	}()

	e.tracker.SetStep(requester, "Downloading security-relevant files")
	files, err := e.harvester.Harvest(ctx, targetURL, scanDir)
	if err != nil {
		return nil, err
	}

	result := &model.ScanResult{
		TargetURL: targetURL,
		Timestamp: time.Now(),
		Files:     files,
	}

	e.tracker.SetStep(requester, "Running scanners")
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		result.Static = e.runStatic(ctx, files)
	}()
	go func() {
		defer wg.Done()
		result.Dependencies = e.runDependencies(ctx, scanDir)
	}()
	go func() {
		defer wg.Done()
		result.Secrets = e.runSecrets(ctx, files)
	}()
	wg.Wait()

	e.logger.Info().
		Int("files", len(files)).
		Int("static", result.Static.Summary.Total).
		Int("vulns", result.Dependencies.Summary.Total).
		Int("secrets", result.Secrets.Summary.Total).
		Msg("scan complete")
	return result, nil
}

func (e *Engine) runStatic(ctx context.Context, files []string) model.KindResult {
	batch := model.Batch{Unavailable: true}
	if e.cfg.ExternalTools.Semgrep {
		batch = e.semgrep.Scan(ctx, files)
	}
	findings, summary := process.New(process.StaticKind(), e.logger).Process(batch)
	return model.KindResult{Findings: findings, Summary: summary}
}

func (e *Engine) runDependencies(ctx context.Context, scanDir string) model.KindResult {
	batch := model.Batch{Unavailable: true}
	if e.cfg.ExternalTools.Grype {
		batch = e.grype.Scan(ctx, []string{scanDir})
	}
	findings, summary := process.New(process.DependencyKind(), e.logger).Process(batch)
	return model.KindResult{Findings: findings, Summary: summary}
}

// runSecrets merges the external tool's records with the heuristic engine's;
// the processor ranks verified results above heuristic ones before dedup.
func (e *Engine) runSecrets(ctx context.Context, files []string) model.KindResult {
	batch := model.Batch{Unavailable: true}
	if e.cfg.ExternalTools.Trufflehog {
		batch = e.truffle.Scan(ctx, files)
	}
	batch.Records = append(batch.Records, e.heuristic.ScanFiles(files)...)
	findings, summary := process.New(process.SecretKind(), e.logger).Process(batch)
	return model.KindResult{Findings: findings, Summary: summary}
}
