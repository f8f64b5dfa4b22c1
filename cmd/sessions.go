package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/abhisek/mathpractice/internal/store"
	"github.com/abhisek/mathpractice/internal/ui/theme"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "Inspect stored problem sessions and submissions",
}

var sessionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent problem sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, _, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()
		sessions, err := s.ProblemRepo().ListSessions(ctx, limit)
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No problem sessions found.")
			return nil
		}

		rows := make([][]string, 0, len(sessions))
		for _, sess := range sessions {
			subs, err := s.ProblemRepo().ListSubmissions(ctx, sess.ID)
			if err != nil {
				return fmt.Errorf("list submissions: %w", err)
			}
			rows = append(rows, []string{
				sess.ID,
				sess.CreatedAt.Local().Format("2006-01-02 15:04"),
				formatAnswer(sess.CorrectAnswer),
				attemptSummary(subs),
				truncate(firstLine(sess.ProblemText), 48),
			})
		}

		fmt.Println(renderTable([]string{"ID", "Created", "Answer", "Attempts", "Problem"}, rows))
		return nil
	},
}

var sessionsViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show a problem session with all its submissions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer s.Close()

		ctx := cmd.Context()
		sess, err := s.ProblemRepo().GetSession(ctx, args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("session %s not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("get session: %w", err)
		}
		subs, err := s.ProblemRepo().ListSubmissions(ctx, sess.ID)
		if err != nil {
			return fmt.Errorf("list submissions: %w", err)
		}

		sep := strings.Repeat("─", 60)
		fmt.Printf("ID:        %s\n", sess.ID)
		fmt.Printf("Created:   %s\n", sess.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("Answer:    %s\n", formatAnswer(sess.CorrectAnswer))
		fmt.Println()
		fmt.Println(sess.ProblemText)

		if len(subs) == 0 {
			fmt.Println()
			fmt.Println("No submissions yet.")
			return nil
		}

		for i, sub := range subs {
			verdict := theme.Correct.Render("correct")
			if !sub.IsCorrect {
				verdict = theme.Incorrect.Render("incorrect")
			}
			fmt.Println()
			fmt.Println(sep)
			fmt.Printf("#%d  %s  answer %s  %s\n",
				i+1, sub.CreatedAt.Local().Format("15:04:05"), formatAnswer(sub.UserAnswer), verdict)
			fmt.Println(sep)
			fmt.Println(sub.FeedbackText)
		}
		return nil
	},
}

func renderTable(headers []string, rows [][]string) string {
	header := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		}).
		String()
}

func attemptSummary(subs []store.Submission) string {
	if len(subs) == 0 {
		return "-"
	}
	correct := 0
	for _, s := range subs {
		if s.IsCorrect {
			correct++
		}
	}
	return fmt.Sprintf("%d/%d correct", correct, len(subs))
}

func formatAnswer(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func init() {
	sessionsListCmd.Flags().IntP("limit", "n", 20, "Number of sessions to show")

	sessionsCmd.AddCommand(sessionsListCmd)
	sessionsCmd.AddCommand(sessionsViewCmd)
}
