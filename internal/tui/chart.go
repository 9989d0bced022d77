package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/agbru/picalc/internal/format"
)

// historySize is the number of CPU and memory samples kept.
const historySize = 120

// ChartModel shows overall progress with ETA and system load sparklines.
type ChartModel struct {
	averageProgress float64
	eta             time.Duration
	finalElapsed    time.Duration
	done            bool
	cpuHistory      *RingBuffer
	memHistory      *RingBuffer
	width           int
	height          int
}

// NewChartModel creates an empty chart.
func NewChartModel() ChartModel {
	return ChartModel{
		cpuHistory: NewRingBuffer(historySize),
		memHistory: NewRingBuffer(historySize),
	}
}

// SetSize updates dimensions.
func (c *ChartModel) SetSize(w, h int) {
	c.width, c.height = w, h
}

// AddDataPoint records the average progress and its ETA.
func (c *ChartModel) AddDataPoint(average float64, eta time.Duration) {
	c.averageProgress = average
	c.eta = eta
}

// UpdateSysStats records a system load sample.
func (c *ChartModel) UpdateSysStats(cpuPercent, memPercent float64) {
	c.cpuHistory.Push(cpuPercent)
	c.memHistory.Push(memPercent)
}

// SetDone freezes the chart at 100% with the final elapsed time.
func (c *ChartModel) SetDone(elapsed time.Duration) {
	c.done = true
	c.averageProgress = 1
	c.finalElapsed = elapsed
}

// Reset clears all history.
func (c *ChartModel) Reset() {
	c.averageProgress = 0
	c.eta = 0
	c.done = false
	c.finalElapsed = 0
	c.cpuHistory.Reset()
	c.memHistory.Reset()
}

func (c ChartModel) barWidth() int {
	return max(c.width-40, 10)
}

// View renders the chart panel.
func (c ChartModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(" Progress"))
	b.WriteString("\n ")
	if c.done {
		fmt.Fprintf(&b, "[%s] %6.2f%% in %s",
			accentStyle.Render(format.ProgressBar(1, c.barWidth())), 100.0, format.FormatExecutionDuration(c.finalElapsed))
	} else {
		b.WriteString(accentStyle.Render(format.FormatProgressBarWithETA(c.averageProgress, c.eta, c.barWidth())))
	}

	sparkWidth := max(c.width-16, 1)
	fmt.Fprintf(&b, "\n\n %s %5.1f%% %s", metricLabelStyle.Render("CPU"), c.cpuHistory.Last(),
		cpuSparklineStyle.Render(RenderSparkline(c.cpuHistory.Slice(), sparkWidth)))
	fmt.Fprintf(&b, "\n %s %5.1f%% %s", metricLabelStyle.Render("MEM"), c.memHistory.Last(),
		memSparklineStyle.Render(RenderSparkline(c.memHistory.Slice(), sparkWidth)))

	return panelStyle.
		Width(max(c.width-2, 0)).
		Height(max(c.height-2, 0)).
		Render(b.String())
}
