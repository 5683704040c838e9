package cli

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
	"github.com/theirongolddev/spendlog/internal/model"
)

func TestRenderTableAlignsColumns(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Category", "Total"},
		Rows: [][]string{
			{"Food", "$15.00"},
			{"---"},
			{"Transport", "$2.50"},
		},
	})

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("got %d lines, want 7:\n%s", len(lines), out)
	}
	width := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != width {
			t.Errorf("line %d width %d, want %d: %q", i, w, width, line)
		}
	}
	if !strings.Contains(out, " $2.50 ") || !strings.Contains(out, "Transport") {
		t.Errorf("missing cells:\n%s", out)
	}
}

func TestRenderTableLeftAlign(t *testing.T) {
	out := RenderTable(Table{
		Headers:   []string{"#", "Description"},
		Rows:      [][]string{{"1", "a"}, {"10", "longer text"}},
		LeftAlign: []bool{false, true},
	})
	if !strings.Contains(out, "│  1 │ a           │") {
		t.Errorf("unexpected alignment:\n%s", out)
	}
}

func TestRenderTableEmpty(t *testing.T) {
	if RenderTable(Table{}) != "" {
		t.Fatal("empty table should render nothing")
	}
}

func TestRenderBarChartScalesToLargest(t *testing.T) {
	summary := model.Summary{
		{Category: "Food", Total: decimal.NewFromInt(20)},
		{Category: "Bills", Total: decimal.NewFromInt(10)},
		{Category: "", Total: decimal.RequireFromString("0.01")},
	}

	out := RenderBarChart("Expenses by Category", summary, "$", 20)

	if !strings.Contains(out, "Expenses by Category") {
		t.Errorf("missing title:\n%s", out)
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	bars := lines[len(lines)-3:]

	counts := make([]int, len(bars))
	for i, line := range bars {
		counts[i] = strings.Count(line, "█")
	}
	if counts[0] != 20 || counts[1] != 10 || counts[2] != 1 {
		t.Errorf("bar lengths = %v, want [20 10 1]\n%s", counts, out)
	}
	if !strings.Contains(bars[2], "(none)") || !strings.Contains(bars[0], "$20.00") {
		t.Errorf("labels missing:\n%s", out)
	}
}

func TestRenderBarChartEmpty(t *testing.T) {
	if RenderBarChart("x", nil, "$", 10) != "" {
		t.Fatal("empty summary should render nothing")
	}
}

func TestRenderProgressBar(t *testing.T) {
	out := RenderProgressBar(0.5, 10)
	if strings.Count(out, "█") != 5 || !strings.Contains(out, "50.0%") {
		t.Errorf("half bar = %q", out)
	}
	over := RenderProgressBar(1.5, 10)
	if strings.Count(over, "█") != 10 || !strings.Contains(over, "150.0%") {
		t.Errorf("over bar = %q", over)
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 1, 2}); got != "▁▄█" {
		t.Errorf("RenderSparkline = %q", got)
	}
}
