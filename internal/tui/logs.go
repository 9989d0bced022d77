package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/picalc/internal/config"
	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/verify"
)

// digitsPreview is how many characters of π the log shows.
const digitsPreview = 52

// progressLogStep is the progress delta, per engine, between two log lines.
const progressLogStep = 0.1

// LogsModel is the scrolling event log of the run.
type LogsModel struct {
	viewport    viewport.Model
	engineNames []string
	lastLogged  []float64
	entries     []string
	width       int
	height      int
}

// NewLogsModel creates an empty log for the given engines.
func NewLogsModel(engineNames []string) LogsModel {
	return LogsModel{
		viewport:    viewport.New(0, 0),
		engineNames: engineNames,
		lastLogged:  make([]float64, len(engineNames)),
	}
}

// SetSize resizes the panel.
func (l *LogsModel) SetSize(w, h int) {
	l.width, l.height = w, h
	l.viewport.Width = max(w-4, 0)
	l.viewport.Height = max(h-2, 0)
	l.refresh()
}

func (l *LogsModel) add(line string) {
	stamp := dimStyle.Render(time.Now().Format("15:04:05"))
	l.entries = append(l.entries, stamp+" "+line)
	l.refresh()
}

func (l *LogsModel) refresh() {
	l.viewport.SetContent(strings.Join(l.entries, "\n"))
	l.viewport.GotoBottom()
}

func (l *LogsModel) engineName(i int) string {
	if i >= 0 && i < len(l.engineNames) {
		return l.engineNames[i]
	}
	return fmt.Sprintf("engine %d", i)
}

// AddExecutionConfig logs the run parameters.
func (l *LogsModel) AddExecutionConfig(cfg config.AppConfig) {
	l.add(fmt.Sprintf("Computing π: %s terms at %s bits on %d threads",
		format.FormatCount(int(cfg.Iterations)), format.FormatCount(int(cfg.Precision)), cfg.Threads))
	for _, name := range l.engineNames {
		l.add("  engine " + logEngineStyle.Render(name))
	}
}

// AddProgressEntry logs progress every progressLogStep per engine.
func (l *LogsModel) AddProgressEntry(msg ProgressMsg) {
	i := msg.CalculatorIndex
	if i < 0 || i >= len(l.lastLogged) {
		return
	}
	if msg.Value < 1 && msg.Value-l.lastLogged[i] < progressLogStep {
		return
	}
	if msg.Value >= 1 && l.lastLogged[i] >= 1 {
		return
	}
	l.lastLogged[i] = msg.Value
	l.add(fmt.Sprintf("%s %5.1f%%", logEngineStyle.Render(l.engineName(i)), msg.Value*100))
}

// AddResults logs the per-engine comparison.
func (l *LogsModel) AddResults(results []orchestration.CalculationResult) {
	for _, r := range results {
		if r.Err != nil {
			l.add(fmt.Sprintf("%s %s", logEngineStyle.Render(r.Name), logErrorStyle.Render("✗ "+r.Err.Error())))
			continue
		}
		l.add(fmt.Sprintf("%s %s in %s", logEngineStyle.Render(r.Name), logSuccessStyle.Render("✓"),
			format.FormatExecutionDuration(r.Duration)))
	}
}

// AddFinalResult logs the digits preview and where they were saved.
func (l *LogsModel) AddFinalResult(msg FinalResultMsg) {
	preview := msg.Digits
	if len(preview) > digitsPreview {
		preview = preview[:digitsPreview] + "…"
	}
	l.add(logSuccessStyle.Render(fmt.Sprintf("π = %s", preview)))
	l.add(fmt.Sprintf("Num digits: %s, computed in %s",
		format.FormatCount(verify.DigitsComputed(msg.Digits)), format.FormatExecutionDuration(msg.Result.Duration)))
	switch {
	case msg.SaveErr != nil:
		l.add(logErrorStyle.Render("Could not save digits: " + msg.SaveErr.Error()))
	case msg.SavedTo != "":
		l.add("Digits saved to: " + msg.SavedTo)
	}
}

// AddAccuracy logs the reference comparison.
func (l *LogsModel) AddAccuracy(r verify.Report) {
	if r.Skipped {
		l.add(dimStyle.Render(r.String()))
		return
	}
	l.add(logSuccessStyle.Render(r.String()))
}

// AddError logs a failed run.
func (l *LogsModel) AddError(msg ErrorMsg) {
	l.add(logErrorStyle.Render(fmt.Sprintf("Error after %s: %v", format.FormatExecutionDuration(msg.Duration), msg.Err)))
}

// Reset clears the log for a restarted run.
func (l *LogsModel) Reset() {
	l.entries = nil
	for i := range l.lastLogged {
		l.lastLogged[i] = 0
	}
	l.refresh()
}

// Len returns the number of log lines.
func (l LogsModel) Len() int { return len(l.entries) }

// Update forwards scroll keys to the viewport.
func (l *LogsModel) Update(msg tea.Msg) {
	l.viewport, _ = l.viewport.Update(msg)
}

// View renders the log panel.
func (l LogsModel) View() string {
	return panelStyle.Width(max(l.width-2, 0)).Height(max(l.height-2, 0)).Render(l.viewport.View())
}
