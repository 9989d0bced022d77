package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/memory"
)

// MetricsModel shows runtime memory and throughput.
type MetricsModel struct {
	mem          memory.Snapshot
	numGoroutine int
	iterations   uint64
	termRate     float64 // terms per second, smoothed
	lastProgress float64
	lastUpdate   time.Time
	width        int
	height       int
}

// NewMetricsModel creates a metrics panel for a run of iterations terms.
func NewMetricsModel(iterations uint64) MetricsModel {
	return MetricsModel{iterations: iterations, lastUpdate: time.Now()}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width, m.height = w, h
}

// UpdateMemStats stores the latest memory snapshot.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.mem = msg.Snapshot
	m.numGoroutine = msg.NumGoroutine
}

// UpdateProgress folds the average progress into the smoothed term rate.
func (m *MetricsModel) UpdateProgress(progress float64) {
	now := time.Now()
	dt := now.Sub(m.lastUpdate).Seconds()
	if dt < 0.05 {
		return
	}
	if dp := progress - m.lastProgress; dp > 0 {
		instant := dp * float64(m.iterations) / dt
		if m.termRate > 0 {
			m.termRate = 0.7*m.termRate + 0.3*instant
		} else {
			m.termRate = instant
		}
	}
	m.lastProgress = progress
	m.lastUpdate = now
}

// TermRate returns the smoothed terms per second.
func (m MetricsModel) TermRate() float64 { return m.termRate }

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder

	pipe := metricLabelStyle.Render(" | ")
	fmt.Fprintf(&rows, "  %s %s%s%s %s",
		metricLabelStyle.Render("Heap:"),
		metricValueStyle.Render(format.FormatBytes(m.mem.HeapAlloc)+" / "+format.FormatBytes(m.mem.HeapSys)),
		pipe,
		metricLabelStyle.Render("GC:"),
		metricValueStyle.Render(fmt.Sprintf("%d (%.1fms)", m.mem.NumGC, float64(m.mem.PauseTotalNs)/1e6)))

	colWidth := max((m.width-6)/2, 0)
	rows.WriteString("\n")
	rows.WriteString(formatMetricCol("Terms/s:", fmt.Sprintf("%.1f", m.termRate), colWidth))
	rows.WriteString(formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.numGoroutine), colWidth))
	rows.WriteString("\n")
	rows.WriteString(formatMetricCol("Digits/s:", fmt.Sprintf("%.0f", m.termRate*chudnovsky.DigitsPerTerm), colWidth))
	rows.WriteString(formatMetricCol("Objects:", format.FormatCount(int(m.mem.HeapObjects)), colWidth))

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rows.String())
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", label)),
		metricValueStyle.Render(value))
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
