package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sauerdaniel/taskledger/internal/agenda"
	"github.com/sauerdaniel/taskledger/internal/task"
)

// List command flags
var (
	listProject string
	listContext string
	listTags    []string
	listAll     bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks across the vault",
	Long: `List all tasks, sorted by date (planned, else due; undated last).

Incomplete tasks are shown by default; --all includes completed ones.
--tag may be given multiple times and combines as an AND filter.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listProject, "project", "", "Only tasks in this project")
	listCmd.Flags().StringVar(&listContext, "context", "", "Only tasks in this context")
	listCmd.Flags().StringArrayVar(&listTags, "tag", nil, "Only tasks carrying this tag (repeatable, AND)")
	listCmd.Flags().BoolVar(&listAll, "all", false, "Include completed tasks")

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	tasks := a.ledger.Tasks()
	if !listAll {
		tasks = keepIncomplete(tasks)
	}
	if listProject != "" {
		tasks = keepWhere(tasks, func(t *task.Task) bool { return t.Project == listProject })
	}
	if listContext != "" {
		tasks = keepWhere(tasks, func(t *task.Task) bool { return t.Context == listContext })
	}
	if len(listTags) > 0 {
		tasks = agenda.FilterByTags(tasks, listTags)
	}

	printTasks(agenda.SortByDate(tasks), referenceDay())
	return nil
}

func keepIncomplete(tasks []task.Task) []task.Task {
	return keepWhere(tasks, func(t *task.Task) bool { return !t.Completed })
}

func keepWhere(tasks []task.Task, keep func(*task.Task) bool) []task.Task {
	var out []task.Task
	for i := range tasks {
		if keep(&tasks[i]) {
			out = append(out, tasks[i])
		}
	}
	return out
}
