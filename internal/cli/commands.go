package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/edhofdc/sourcecode-scanner/internal/config"
	"github.com/edhofdc/sourcecode-scanner/internal/engine"
	"github.com/edhofdc/sourcecode-scanner/internal/model"
	"github.com/edhofdc/sourcecode-scanner/internal/report"
	"github.com/edhofdc/sourcecode-scanner/internal/tui"
)

func AddCommands(root *cobra.Command) {
	root.AddCommand(newScanCmd())
	root.AddCommand(newInitCmd())
	root.AddCommand(newPatternsCmd())
}

func newScanCmd() *cobra.Command {
	var (
		format     string
		outputFile string
		useTUI     bool
		verbose    bool
	)
	cmd := &cobra.Command{
		Use:   "scan <url>",
		Short: "Scan a URL's security-relevant files for issues, vulnerable dependencies, and secrets",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
				target = "https://" + target
			}

			logger := newLogger(verbose)
			cfg, cfgPath, err := config.Load(".")
			if err != nil {
				return err
			}
			if cfgPath != "" {
				logger.Debug().Str("config", cfgPath).Msg("loaded config")
			}

			eng := engine.New(cfg, engine.NewTracker(), logger)
			result, err := eng.Scan(cmd.Context(), "cli", target)
			if err != nil {
				return err
			}

			overall := report.Aggregate(len(result.Files), result.Static.Summary, result.Dependencies.Summary, result.Secrets.Summary)
			risk := report.Verdict(overall, cfg.Risk)

			if useTUI {
				return tui.Run(result, risk)
			}
			switch format {
			case "json":
				if outputFile != "" {
					return report.WriteJSON(outputFile, result, overall, risk)
				}
				data, err := report.MarshalJSON(result, overall, risk)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			case "markdown":
				md := report.RenderMarkdown(result, overall, risk)
				if outputFile != "" {
					return os.WriteFile(outputFile, []byte(md), 0o644)
				}
				fmt.Fprint(cmd.OutOrStdout(), md)
			default:
				printSummary(cmd, result, overall, risk)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table|json|markdown")
	cmd.Flags().StringVarP(&outputFile, "out", "o", "", "Write report to file (with --format json|markdown)")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Browse results interactively")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	return cmd
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger().Level(level)
}

func printSummary(cmd *cobra.Command, result *model.ScanResult, overall report.Overall, risk model.RiskLevel) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Target: %s\n", result.TargetURL)
	fmt.Fprintf(out, "Files scanned: %d\n\n", overall.TotalFiles)

	s := result.Static.Summary
	fmt.Fprintf(out, "Static analysis: %d issues%s\n", s.Total, unavailableNote(s))
	fmt.Fprintf(out, "  high=%d medium=%d low=%d\n", s.Critical+s.High, s.Medium, s.Low)

	d := result.Dependencies.Summary
	fmt.Fprintf(out, "Dependency vulnerabilities: %d%s\n", d.Total, unavailableNote(d))
	fmt.Fprintf(out, "  critical=%d high=%d medium=%d low=%d negligible=%d\n", d.Critical, d.High, d.Medium, d.Low, d.Negligible)

	sec := result.Secrets.Summary
	fmt.Fprintf(out, "Secrets: %d (%d verified)%s\n", sec.Total, sec.Verified, unavailableNote(sec))
	fmt.Fprintf(out, "  high=%d medium=%d low=%d\n\n", sec.High, sec.Medium, sec.Low)

	fmt.Fprintf(out, "Overall risk: %s\n", risk)
}

func unavailableNote(s model.Summary) string {
	if s.Unavailable {
		return " (scanner unavailable)"
	}
	return ""
}
