package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/edhofdc/sourcecode-scanner/internal/model"
)

type modelT struct {
	result *model.ScanResult
	risk   model.RiskLevel
	lines  []string
	cursor int
}

func initialModel(result *model.ScanResult, risk model.RiskLevel) modelT {
	var lines []string
	for _, f := range result.Static.Findings {
		lines = append(lines, fmt.Sprintf("[static/%s] %s %s:%d %s", f.Severity, f.RuleID, f.File, f.Line, f.Message))
	}
	for _, f := range result.Dependencies.Findings {
		lines = append(lines, fmt.Sprintf("[dep/%s] %s %s@%s cvss=%.1f", f.Severity, f.VulnerabilityID, f.Package, f.Version, f.CVSS))
	}
	for _, f := range result.Secrets.Findings {
		lines = append(lines, fmt.Sprintf("[secret/%s] %s %s:%d %s", f.Confidence, f.SecretType, f.File, f.Line, f.MaskedSecret))
	}
	return modelT{result: result, risk: risk, lines: lines}
}

func (m modelT) Init() tea.Cmd { return nil }

func (m modelT) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.lines)-1 {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m modelT) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s — risk %s\n", m.result.TargetURL, m.risk)
	fmt.Fprintf(&b, "files=%d static=%d vulns=%d secrets=%d\n\n",
		len(m.result.Files),
		m.result.Static.Summary.Total,
		m.result.Dependencies.Summary.Total,
		m.result.Secrets.Summary.Total)
	for i, line := range m.lines {
		marker := "  "
		if i == m.cursor {
			marker = "> "
		}
		b.WriteString(marker + line + "\n")
	}
	b.WriteString("\n(q to quit)\n")
	return b.String()
}

// Run launches a minimal scrollable view over the scan result.
func Run(result *model.ScanResult, risk model.RiskLevel) error {
	p := tea.NewProgram(initialModel(result, risk))
	_, err := p.Run()
	return err
}
