package cmd

import (
	"fmt"
	"strings"

	"github.com/sauerdaniel/taskledger/internal/agenda"
	"github.com/sauerdaniel/taskledger/internal/style"
	"github.com/sauerdaniel/taskledger/internal/task"
)

// printTasks renders a task list, one line each.
func printTasks(tasks []task.Task, today string) {
	if len(tasks) == 0 {
		fmt.Println(style.Subtle.Render("(no tasks)"))
		return
	}
	for i := range tasks {
		printTask(&tasks[i], today)
	}
}

func printTask(t *task.Task, today string) {
	box := "[ ]"
	titleStyle := style.Bold
	if t.Completed {
		box = "[x]"
		titleStyle = style.Done
	}

	var parts []string
	parts = append(parts, box, titleStyle.Render(t.Title))

	if t.Project != "" {
		parts = append(parts, style.Subtle.Render("project:"+t.Project))
	}
	if t.Context != "" {
		parts = append(parts, style.Subtle.Render("context:"+t.Context))
	}
	if d, ok := t.Planned.Canonical(); ok {
		parts = append(parts, style.Date.Render("planned:"+d))
	}
	if d, ok := t.Due.Canonical(); ok {
		s := style.Date
		if agenda.IsOverdue(t, today) {
			s = style.Overdue
		}
		parts = append(parts, s.Render("due:"+d))
	}
	for _, tag := range t.Tags {
		parts = append(parts, style.Tag.Render(tag))
	}
	parts = append(parts, style.Subtle.Render(fmt.Sprintf("(%s:%d)", t.Document, t.Line)))

	fmt.Println(strings.Join(parts, " "))

	for _, sub := range t.SubItems {
		switch sub.Kind {
		case task.SubItemTask:
			subBox := "[ ]"
			if sub.Completed {
				subBox = "[x]"
			}
			fmt.Println("    " + subBox + " " + sub.Text)
		default:
			fmt.Println("    " + style.Subtle.Render("- "+sub.Text))
		}
	}
}

// printGroups renders project/context/tag groups with derived state.
func printGroups(groups []agenda.Group, today string) {
	if len(groups) == 0 {
		fmt.Println(style.Subtle.Render("(no groups)"))
		return
	}
	width := style.TermWidth()
	if width > 72 {
		width = 72
	}
	divider := style.Subtle.Render(strings.Repeat("-", width))
	for _, g := range groups {
		fmt.Println(divider)
		fmt.Println(style.Header.Render(g.Name))
		if g.NextAction != "" {
			fmt.Println("  next action: " + style.Bold.Render(g.NextAction))
		}
		if g.LastReview != "" {
			fmt.Println("  last review: " + style.Date.Render(g.LastReview))
		} else {
			fmt.Println("  last review: " + style.Subtle.Render("never"))
		}
		for i := range g.Tasks {
			fmt.Print("  ")
			printTask(&g.Tasks[i], today)
		}
		fmt.Println()
	}
}
