package agenda

import (
	"sort"
	"strings"

	"github.com/sauerdaniel/taskledger/internal/task"
)

// Group is a named task bucket with derived review state.
type Group struct {
	Name  string
	Tasks []task.Task

	// NextAction is the title of the earliest-by-date incomplete task.
	NextAction string
	// LastReview is the most recent canonical review date in the group,
	// empty when no task has ever been reviewed.
	LastReview string
}

// MetadataLookup resolves fallback project names for a document id, as
// supplied by the document-metadata collaborator (front matter). Multiple
// names are joined with ", " to form one group key.
type MetadataLookup func(documentID string) []string

// GroupByProject groups tasks by project. The explicit project field
// wins; tasks without one fall back to the document's metadata project
// name. Tasks with no resolvable project are excluded. Groups come back
// sorted by name.
func GroupByProject(tasks []task.Task, lookup MetadataLookup) []Group {
	byName := make(map[string][]task.Task)
	for i := range tasks {
		name := tasks[i].Project
		if name == "" && lookup != nil {
			if names := lookup(tasks[i].Document); len(names) > 0 {
				name = strings.Join(names, ", ")
			}
		}
		if name == "" {
			continue
		}
		byName[name] = append(byName[name], tasks[i])
	}
	return finishGroups(byName)
}

// GroupByContext groups tasks by their context field. Tasks without a
// context are excluded.
func GroupByContext(tasks []task.Task) []Group {
	byName := make(map[string][]task.Task)
	for i := range tasks {
		if tasks[i].Context == "" {
			continue
		}
		byName[tasks[i].Context] = append(byName[tasks[i].Context], tasks[i])
	}
	return finishGroups(byName)
}

// GroupByTags groups tasks under each selected tag. Selection is an AND
// filter: a task belongs to a group only if it carries every selected
// tag, so all selected groups share one membership rule and a task can
// appear under several tags at once. An empty selection yields an empty
// result, never "all tasks".
func GroupByTags(tasks []task.Task, selected []string) []Group {
	selected = normalizeSelection(selected)
	if len(selected) == 0 {
		return nil
	}

	byName := make(map[string][]task.Task)
	for _, tag := range selected {
		byName[tag] = nil
	}
	for i := range tasks {
		if !hasAllTags(&tasks[i], selected) {
			continue
		}
		for _, tag := range selected {
			byName[tag] = append(byName[tag], tasks[i])
		}
	}
	return finishGroups(byName)
}

// FilterByTags keeps tasks carrying every selected tag. An empty
// selection keeps nothing.
func FilterByTags(tasks []task.Task, selected []string) []task.Task {
	selected = normalizeSelection(selected)
	if len(selected) == 0 {
		return nil
	}
	return filter(tasks, func(t *task.Task) bool { return hasAllTags(t, selected) })
}

func hasAllTags(t *task.Task, selected []string) bool {
	for _, tag := range selected {
		if !t.HasTag(tag) {
			return false
		}
	}
	return true
}

func normalizeSelection(selected []string) []string {
	var out []string
	for _, tag := range selected {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		out = append(out, tag)
	}
	return out
}

// finishGroups sorts each group's tasks, derives the next action and last
// review, and returns the groups ordered by name.
func finishGroups(byName map[string][]task.Task) []Group {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]Group, 0, len(names))
	for _, name := range names {
		g := Group{Name: name, Tasks: SortByDate(byName[name])}
		for i := range g.Tasks {
			if !g.Tasks[i].Completed {
				g.NextAction = g.Tasks[i].Title
				break
			}
		}
		for i := range g.Tasks {
			if review, ok := g.Tasks[i].Review.Canonical(); ok && review > g.LastReview {
				g.LastReview = review
			}
		}
		groups = append(groups, g)
	}
	return groups
}
