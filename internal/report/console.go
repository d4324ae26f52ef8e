package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Reaishma/Automated-grading-app/internal/classroom"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5B8DEF")).
			MarginBottom(1)
	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA"))
	scoreStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#50FA7B"))
	pendingStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#FFB86C"))
	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

// Classroom lists the students and the assignments with their max score.
func Classroom(students []classroom.Student, assignments []classroom.Assignment) string {
	lines := []string{titleStyle.Render("Students")}
	if len(students) == 0 {
		lines = append(lines, pendingStyle.Render("No students."))
	}
	for _, st := range students {
		line := "- " + st.Name
		if st.Email != "" {
			line += labelStyle.Render(" (" + st.Email + ")")
		}
		lines = append(lines, line)
	}
	lines = append(lines, "", titleStyle.Render("Assignments"))
	if len(assignments) == 0 {
		lines = append(lines, pendingStyle.Render("No assignments."))
	}
	for _, a := range assignments {
		line := "- " + a.Title
		if a.Description != "" {
			line += ": " + a.Description
		}
		lines = append(lines, line, labelStyle.Render(fmt.Sprintf("  Max Score: %g", a.MaxScore)))
	}
	return strings.Join(lines, "\n")
}

// Submissions renders one card per roster entry under a heading. With
// showContent each card also carries the submitted text.
func Submissions(title string, entries []classroom.Entry, showContent bool) string {
	cards := []string{titleStyle.Render(title)}
	if len(entries) == 0 {
		cards = append(cards, pendingStyle.Render("No submissions."))
	}
	for _, e := range entries {
		cards = append(cards, card(e, showContent))
	}
	return lipgloss.JoinVertical(lipgloss.Left, cards...)
}

func card(e classroom.Entry, showContent bool) string {
	student, title := "(unknown student)", "(unknown assignment)"
	var max float64
	if e.Student != nil {
		student = e.Student.Name
	}
	if e.Assignment != nil {
		title, max = e.Assignment.Title, e.Assignment.MaxScore
	}
	lines := []string{
		labelStyle.Render("Student:    ") + student,
		labelStyle.Render("Assignment: ") + title,
	}
	sub := e.Submission
	if showContent {
		lines = append(lines, labelStyle.Render("Content:"), indent(sub.Content))
	}
	if sub.Graded() {
		lines = append(lines,
			labelStyle.Render("Score:      ")+scoreStyle.Render(fmt.Sprintf("%.1f/%g", *sub.Score, max)),
			labelStyle.Render("Feedback:"),
			indent(*sub.Feedback))
	} else {
		lines = append(lines, pendingStyle.Render("Not graded yet"))
	}
	return cardStyle.Render(strings.Join(lines, "\n"))
}

// Batch summarizes a GradeAll run.
func Batch(res classroom.BatchResult) string {
	head := scoreStyle.Render(fmt.Sprintf("Graded %d of %d submissions", res.Graded, res.Total))
	if len(res.Failures) == 0 {
		return head
	}
	lines := []string{head}
	for _, f := range res.Failures {
		lines = append(lines, failStyle.Render(fmt.Sprintf("  #%d %s: %s", f.Index, f.SubmissionID, f.Message)))
	}
	return strings.Join(lines, "\n")
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
