package tui

import (
	"fmt"
	"time"

	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/vibetodo/internal/todo"
)

const (
	activityDays   = 14
	activityHeight = 8
	// Narrower charts have no room for axis labels.
	activityMinWidth = 24
)

// dailyCreated counts tasks created on each of the days days ending at now.
func dailyCreated(tasks []todo.Task, now time.Time, days int) ([]time.Time, []float64) {
	if days <= 0 {
		return nil, nil
	}
	end := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := end.AddDate(0, 0, -(days - 1))

	byDay := make(map[string]float64, days)
	for _, t := range tasks {
		byDay[t.CreatedAt.In(now.Location()).Format(time.DateOnly)]++
	}

	dates := make([]time.Time, 0, days)
	values := make([]float64, 0, days)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
		values = append(values, byDay[d.Format(time.DateOnly)])
	}
	return dates, values
}

func renderActivity(th theme, tasks []todo.Task, now time.Time, width int) string {
	if width < activityMinWidth {
		return ""
	}
	dates, values := dailyCreated(tasks, now, activityDays)
	if len(dates) == 0 {
		return ""
	}
	maxVal := 1.0
	total := 0.0
	for _, v := range values {
		maxVal = max(maxVal, v)
		total += v
	}

	chart := tslc.New(width, activityHeight)
	chart.SetStyle(lipgloss.NewStyle().Foreground(th.colors.Chart))
	chart.AxisStyle = lipgloss.NewStyle().Foreground(th.colors.Surface)
	chart.LabelStyle = lipgloss.NewStyle().Foreground(th.colors.Overlay)
	chart.SetTimeRange(dates[0], dates[len(dates)-1])
	chart.SetViewTimeRange(dates[0], dates[len(dates)-1])
	chart.SetYRange(0, maxVal)
	chart.SetViewYRange(0, maxVal)
	for i, d := range dates {
		chart.Push(tslc.TimePoint{Time: d, Value: values[i]})
	}
	chart.DrawBraille()

	caption := th.subtle.Render(fmt.Sprintf("created, last %d days: %d", activityDays, int(total)))
	return lipgloss.JoinVertical(lipgloss.Left, caption, chart.View())
}
