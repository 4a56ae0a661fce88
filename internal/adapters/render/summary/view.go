package summary

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/bnema/sparky/internal/application"
	"github.com/bnema/sparky/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 20

func summaryView(summary domain.Summary, s styles) string {
	lines := []string{
		s.title.Render("Sparky session " + summary.SessionID),
		s.header.Render(fmt.Sprintf("state: %s%s", summary.State, endReasonSuffix(summary.EndReason))),
		field("turns", fmt.Sprintf("%d", summary.Turns), s),
		field("duration", formatDuration(summary.Duration), s),
		field("level", levelLabel(summary.Level), s),
		field("mood", fmt.Sprintf("%s (%s)", summary.CurrentEmotion.Label, summary.Trend), s),
		field("words", fmt.Sprintf("%d known, %d mastered", summary.Stats.WordsKnown, summary.Stats.WordsMastered), s),
	}

	lines = append(lines, s.section.Render(statsView(summary.Stats, s)))

	if summary.Farewell != "" {
		lines = append(lines, s.section.Render(s.farewell.Render(summary.Farewell)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func replayView(report application.ReplayReport, s styles) string {
	verdict := s.ok.Render("consistent")
	if !report.Consistent() {
		verdict = s.warning.Render(fmt.Sprintf("%d divergences, %d violations", len(report.Divergences), len(report.Violations)))
	}

	lines := []string{
		s.title.Render("Transcript replay"),
		s.header.Render(fmt.Sprintf("steps: %d", report.Steps)),
		field("verdict", verdict, s),
		field("level", levelLabel(report.Stats.FinalLevel), s),
		field("words", fmt.Sprintf("%d known, %d mastered", report.Stats.WordsKnown, report.Stats.WordsMastered), s),
	}

	for _, d := range report.Divergences {
		lines = append(lines, s.warning.Render(fmt.Sprintf(
			"turn %d: recorded %s, derived %s",
			d.Turn, decisionLabel(d.Recorded), decisionLabel(d.Derived),
		)))
	}
	for _, v := range report.Violations {
		lines = append(lines, s.warning.Render("violation: "+v))
	}

	lines = append(lines, s.section.Render(statsView(report.Stats, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func statsView(stats domain.TrajectoryStats, s styles) string {
	if stats.Steps == 0 {
		return s.empty.Render("No turns recorded.")
	}

	lines := []string{s.title.Render("Emotions")}
	for _, label := range domain.EmotionLabels {
		count := stats.EmotionCounts[label]
		if count == 0 {
			continue
		}
		share := stats.EmotionDistribution[label]
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.label.Render(fmt.Sprintf("%-10s", label)),
			" ",
			renderBar(share, barWidth, emotionColor(label.IsPositive(), label.IsDistressed()), s),
			" ",
			s.value.Render(fmt.Sprintf("%3.0f%% (%d)", share*100, count)),
		))
	}
	lines = append(lines, field("positive", fmt.Sprintf("%.0f%%", stats.PositiveEmotionRatio*100), s))

	actions := make([]string, 0, len(domain.Actions))
	for _, action := range domain.Actions {
		if count := stats.ActionCounts[action]; count > 0 {
			actions = append(actions, fmt.Sprintf("%s %d", action, count))
		}
	}
	lines = append(lines, field("actions", strings.Join(actions, ", "), s))

	if degraded := degradedLabel(stats.DegradedCounts); degraded != "" {
		lines = append(lines, s.warning.Render("degraded: "+degraded))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func wordsView(words []domain.CatalogWord, knowledge domain.KnowledgeSnapshot, s styles) string {
	lines := []string{
		s.title.Render("Vocabulary"),
		s.header.Render(fmt.Sprintf("words: %d", len(words))),
	}
	if len(words) == 0 {
		lines = append(lines, s.empty.Render("No words at this stage."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, word := range words {
		mark := " "
		if entry, ok := knowledge[word.Word]; ok {
			mark = "·"
			if entry.Mastered {
				mark = "★"
			}
		}
		lines = append(lines, lipgloss.JoinHorizontal(
			lipgloss.Top,
			s.value.Render(mark+" "),
			s.label.Render(word.Stage.String()+" "),
			s.word.Render(word.Word),
			s.value.Render(fmt.Sprintf(" %s %s %s", word.Emoji, word.Pinyin, word.English)),
			s.header.Render(" ["+word.Category+"]"),
		))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderBar(share float64, width int, fill lipgloss.Color, s styles) string {
	if width <= 0 {
		return ""
	}

	filled := int(math.Round(float64(width) * clampShare(share)))
	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		s.barFill.Foreground(fill).Render(strings.Repeat("=", filled)),
		s.barEmpty.Render(strings.Repeat("-", width-filled)),
		s.barBracket.Render("]"),
	)
}

func clampShare(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func field(label, value string, s styles) string {
	return s.label.Render(label+": ") + s.value.Render(value)
}

func levelLabel(level domain.LanguageLevel) string {
	if !level.Stage.Valid() {
		return "n/a"
	}
	return fmt.Sprintf("%s %s (score %.2f)", level.Stage, level.Stage.Title(), level.Score)
}

func decisionLabel(decision domain.Decision) string {
	if decision.TargetWord == "" {
		return string(decision.Action)
	}
	return fmt.Sprintf("%s %s", decision.Action, decision.TargetWord)
}

func endReasonSuffix(reason domain.EndReason) string {
	if reason == "" {
		return ""
	}
	return " (" + strings.ReplaceAll(string(reason), "_", " ") + ")"
}

func degradedLabel(counts map[domain.Signal]int) string {
	parts := make([]string, 0, 2)
	for _, signal := range []domain.Signal{domain.SignalEmotion, domain.SignalGeneration} {
		if counts[signal] > 0 {
			parts = append(parts, fmt.Sprintf("%s x%d", signal, counts[signal]))
		}
	}
	return strings.Join(parts, ", ")
}

func formatDuration(d time.Duration) string {
	if d <= 0 {
		return "0s"
	}
	return d.Round(time.Second).String()
}
