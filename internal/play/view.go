package play

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathpractice/internal/ui/components"
	"github.com/abhisek/mathpractice/internal/ui/layout"
	"github.com/abhisek/mathpractice/internal/ui/theme"
)

func (m Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

// render draws the full frame for the current window size.
func (m Model) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	header := layout.RenderHeader(m.title(), m.correct, m.answered, m.width)
	footer := layout.RenderFooter(m.keyHints(), m.width)
	return layout.RenderFrame(header, m.renderContent(m.width), footer, m.width, m.height)
}

func (m Model) title() string {
	switch m.state {
	case StateGenerating:
		return "New problem"
	case StateFeedbackShown:
		return "Feedback"
	case StateError:
		return "Error"
	case StateIdle:
		return "Welcome"
	}
	return "Problem"
}

func (m Model) keyHints() []layout.KeyHint {
	switch m.state {
	case StateGenerating, StateSubmitting:
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	case StateProblemShown:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Submit"},
			{Key: "g", Description: "New problem"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	case StateError:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Dismiss"},
			{Key: "g", Description: "Try again"},
			{Key: "q", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "g", Description: "New problem"},
		{Key: "q", Description: "Quit"},
	}
}

// renderContent renders everything between header and footer.
func (m Model) renderContent(width int) string {
	inner := width - 8
	if inner < 20 {
		inner = 20
	}

	var b strings.Builder

	generate := components.NewButton("g", m.generateLabel(), m.state.CanGenerate())
	b.WriteString("\n  " + generate.View() + "\n\n")

	if m.state == StateError {
		b.WriteString("  " + theme.ErrorBanner.Width(inner).Render("✗ "+m.errMsg) + "\n\n")
	}

	if m.session == nil {
		if m.state == StateGenerating {
			b.WriteString("  " + m.spinner.View() + " Generating a problem...\n")
		} else {
			b.WriteString(m.renderWelcome(inner))
		}
		return b.String()
	}

	problem := theme.Title.Render("Problem") + "\n\n" +
		theme.Body.Width(inner-6).Render(m.session.ProblemText)
	b.WriteString(indent(theme.Card.Width(inner).Render(problem)) + "\n\n")

	switch {
	case m.state == StateGenerating:
		b.WriteString("  " + m.spinner.View() + " Generating a problem...\n")
	case m.submission != nil:
		b.WriteString(m.renderFeedback(inner))
	default:
		b.WriteString(m.renderAnswer())
	}
	return b.String()
}

func (m Model) generateLabel() string {
	if m.state == StateGenerating {
		return "Generating..."
	}
	return "Generate New Problem"
}

func (m Model) renderWelcome(width int) string {
	text := "Press g to generate a Primary 5 math word problem.\n\n" +
		"Enter whole numbers or decimals. Answers within 0.01 of the\n" +
		"correct value are accepted. Give fractions as decimals,\n" +
		"for example 0.75 for 3/4."
	return indent(theme.Card.Width(width).Render(theme.Hint.Render(text))) + "\n"
}

func (m Model) renderAnswer() string {
	var b strings.Builder
	b.WriteString("  Your answer: " + m.input.View() + "\n\n")

	submit := components.NewButton("Enter", m.submitLabel(), m.canSubmit())
	b.WriteString("  " + submit.View() + "\n")
	return b.String()
}

func (m Model) submitLabel() string {
	if m.state == StateSubmitting {
		return m.spinner.View() + " Submitting..."
	}
	return "Submit Answer"
}

func (m Model) canSubmit() bool {
	if m.state != StateProblemShown {
		return false
	}
	_, err := m.input.FloatValue()
	return err == nil
}

func (m Model) renderFeedback(width int) string {
	sub := m.submission

	var verdict string
	if sub.IsCorrect {
		verdict = theme.Correct.Render("✓ Correct!")
	} else {
		verdict = theme.Incorrect.Render("✗ Not quite")
	}

	lines := []string{
		verdict,
		"",
		fmt.Sprintf("Your answer: %s", formatNumber(sub.UserAnswer)),
	}
	if !sub.IsCorrect {
		lines = append(lines, fmt.Sprintf("Correct answer: %s", formatNumber(m.session.CorrectAnswer)))
	}
	lines = append(lines, "", theme.Feedback.Width(width-6).Render(sub.FeedbackText))

	return indent(theme.Card.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))) + "\n"
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
