package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	planningDomain "github.com/felixgeelhaar/focusos/internal/planning/domain"
	scoringDomain "github.com/felixgeelhaar/focusos/internal/scoring/domain"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5B8DEF"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	scoreStyle = lipgloss.NewStyle().Bold(true).Width(4).Align(lipgloss.Right)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#444444")).Padding(0, 1)

	bucketColors = map[planningDomain.BucketLabel]lipgloss.Color{
		planningDomain.BucketMust:   lipgloss.Color("#FF6B6B"),
		planningDomain.BucketShould: lipgloss.Color("#F5A623"),
		planningDomain.BucketCould:  lipgloss.Color("#7ED321"),
	}
)

// WriteJSON pretty-prints v.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderShortlist draws the Now and Next lists.
func RenderShortlist(s scoringDomain.Shortlist, scoredAt time.Time) string {
	sections := []string{
		titleStyle.Render("NOW"),
		renderScored(s.Now),
		"",
		titleStyle.Render("NEXT"),
		renderScored(s.Next),
		"",
		mutedStyle.Render("scored " + scoredAt.Format(time.RFC3339)),
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func renderScored(tasks []scoringDomain.ScoredTask) string {
	if len(tasks) == 0 {
		return mutedStyle.Render("  nothing actionable")
	}
	lines := make([]string, 0, len(tasks)*2)
	for _, t := range tasks {
		lines = append(lines, fmt.Sprintf("%s  %s %s",
			scoreStyle.Render(fmt.Sprint(t.PriorityScore)),
			t.Title,
			mutedStyle.Render("("+t.AreaName+") "+shortID(t.ID.String())),
		))
		lines = append(lines, mutedStyle.Render("      "+t.Explanation))
	}
	return strings.Join(lines, "\n")
}

// RenderPlan draws a daily plan bucket by bucket.
func RenderPlan(p *planningDomain.DailyPlan) string {
	header := titleStyle.Render("PLAN " + p.PlanDate)
	meta := mutedStyle.Render(fmt.Sprintf("%d min available, deep work %v, reused scores %v",
		p.Plan.AvailableMinutes, p.Inputs.DeepWork, p.Inputs.ReusedScores))

	sections := []string{header, meta}
	for _, b := range p.Plan.Buckets {
		label := lipgloss.NewStyle().Bold(true).Foreground(bucketColors[b.Label]).
			Render(fmt.Sprintf("%s (%d min)", strings.ToUpper(string(b.Label)), b.TotalMinutes))
		sections = append(sections, "", label)
		if len(b.Tasks) == 0 {
			sections = append(sections, mutedStyle.Render("  -"))
			continue
		}
		for _, t := range b.Tasks {
			sections = append(sections, fmt.Sprintf("%s  %s %s%s",
				scoreStyle.Render(fmt.Sprint(t.PriorityScore)),
				t.Title,
				areaTag(t.AreaName, t.AreaColor),
				mutedStyle.Render(fmt.Sprintf("%dm %s", t.EffortMinutes, shortID(t.ID.String()))),
			))
		}
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// areaTag renders "(name) " in the area's color, or nothing for an unnamed area.
func areaTag(name, color string) string {
	if name == "" {
		return ""
	}
	style := mutedStyle
	if color != "" {
		style = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
	}
	return style.Render("("+name+")") + " "
}

func shortID(id string) string {
	if len(id) < 8 {
		return id
	}
	return id[:8]
}
