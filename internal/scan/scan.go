// Package scan walks document text line by line and extracts task
// entities with their indented sub-items.
package scan

import (
	"regexp"
	"strings"

	"github.com/sauerdaniel/taskledger/internal/codec"
	"github.com/sauerdaniel/taskledger/internal/task"
)

var (
	// taskLine matches a checklist line: optional leading whitespace, a
	// bullet, one space, a checkbox, one space, then text.
	taskLine = regexp.MustCompile(`^([ \t]*)([-*]) \[( |[xX])\] (.*)$`)

	// bulletLine matches a plain (non-checkbox) bullet line.
	bulletLine = regexp.MustCompile(`^[ \t]*[-*] (.*)$`)
)

// Scan extracts all tasks from a document. Line numbers are 1-based
// positions at scan time. Lines consumed as sub-items are never
// re-emitted as top-level tasks.
func Scan(documentID, fullText string) []task.Task {
	lines := splitLines(fullText)

	var tasks []task.Task
	for i := 0; i < len(lines); i++ {
		m := taskLine.FindStringSubmatch(lines[i])
		if m == nil {
			continue
		}

		parsed := codec.Parse(m[4])
		if parsed.Title == "" {
			// ParseSkip: looks like a checklist item but nothing remains
			// after stripping metadata. The line is omitted and its
			// trailing lines stay available to the outer scan.
			continue
		}

		t := task.Task{
			Document:  documentID,
			Line:      i + 1,
			Title:     parsed.Title,
			Completed: m[3] == "x" || m[3] == "X",
			Project:   parsed.Project,
			Context:   parsed.Context,
			Planned:   parsed.Planned,
			Due:       parsed.Due,
			Review:    parsed.Review,
			Tags:      parsed.Tags,
		}

		indent := len(m[1])
		j := i + 1
		for ; j < len(lines); j++ {
			line := lines[j]
			if strings.TrimSpace(line) == "" {
				break
			}
			if leadingWhitespace(line) <= indent {
				break
			}
			if sub, ok := classifySubItem(line); ok {
				t.SubItems = append(t.SubItems, sub)
			}
		}
		i = j - 1

		tasks = append(tasks, t)
	}
	return tasks
}

// classifySubItem turns a consumed indented line into a sub-item.
// A nested checklist line becomes a sub-task with its metadata stripped;
// a plain bullet becomes a note with the marker removed; anything else is
// a raw note. Nested checklist lines whose title strips to empty are
// dropped, mirroring the top-level skip rule.
func classifySubItem(line string) (task.SubItem, bool) {
	if m := taskLine.FindStringSubmatch(line); m != nil {
		parsed := codec.Parse(m[4])
		if parsed.Title == "" {
			return task.SubItem{}, false
		}
		return task.SubItem{
			Kind:      task.SubItemTask,
			Text:      parsed.Title,
			Completed: m[3] == "x" || m[3] == "X",
		}, true
	}
	if m := bulletLine.FindStringSubmatch(line); m != nil {
		return task.SubItem{Kind: task.SubItemNote, Text: strings.TrimSpace(m[1])}, true
	}
	return task.SubItem{Kind: task.SubItemNote, Text: strings.TrimSpace(line)}, true
}

// splitLines splits on line boundaries, tolerating both conventions.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// leadingWhitespace returns the length of the line's leading whitespace.
func leadingWhitespace(line string) int {
	return len(line) - len(strings.TrimLeft(line, " \t"))
}
