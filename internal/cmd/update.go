package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sauerdaniel/taskledger/internal/codec"
	"github.com/sauerdaniel/taskledger/internal/mutate"
	"github.com/sauerdaniel/taskledger/internal/task"
)

// Update command flags
var (
	updateTitle   string
	updateProject string
	updateContext string
	updatePlanned string
	updateDue     string
	updateReview  string
	updateTags    []string
	updateDone    bool
	updateReopen  bool
	updateClear   []string
)

var updateCmd = &cobra.Command{
	Use:   "update <document> <line>",
	Short: "Update one task's fields in place",
	Long: `Rewrite a single checklist line with the given field changes, keeping
the surrounding text and the annotation spellings already used on the
line. Fields not mentioned keep their current value; --clear removes one.

If the line has changed underneath the recorded location the update is
dropped silently; rescan (any listing command) and retry.

Examples:
  tl update notes/launch.md 12 --due 2024-07-01
  tl update inbox.md 3 --done
  tl update inbox.md 3 --clear planned --clear due`,
	Args: cobra.ExactArgs(2),
	RunE: runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateTitle, "title", "", "New title")
	updateCmd.Flags().StringVar(&updateProject, "project", "", "New project")
	updateCmd.Flags().StringVar(&updateContext, "context", "", "New context")
	updateCmd.Flags().StringVar(&updatePlanned, "planned", "", "New planned date (YYYY-MM-DD)")
	updateCmd.Flags().StringVar(&updateDue, "due", "", "New due date (YYYY-MM-DD)")
	updateCmd.Flags().StringVar(&updateReview, "review", "", "New review date (YYYY-MM-DD)")
	updateCmd.Flags().StringArrayVar(&updateTags, "tags", nil, "Replace the tag set (repeatable)")
	updateCmd.Flags().BoolVar(&updateDone, "done", false, "Mark completed")
	updateCmd.Flags().BoolVar(&updateReopen, "reopen", false, "Mark not completed")
	updateCmd.Flags().StringArrayVar(&updateClear, "clear", nil, "Clear a field: project, context, planned, due, review, tags (repeatable)")

	rootCmd.AddCommand(updateCmd)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	if updateDone && updateReopen {
		return fmt.Errorf("--done and --reopen are mutually exclusive")
	}

	line, err := strconv.Atoi(args[1])
	if err != nil || line < 1 {
		return fmt.Errorf("line must be a positive integer, got %q", args[1])
	}

	u, err := buildUpdate(cmd)
	if err != nil {
		return err
	}

	a, err := loadApp()
	if err != nil {
		return err
	}

	t := &task.Task{Document: args[0], Line: line}
	w := mutate.NewWriter(a.store, nil)
	if err := w.Apply(t, u); err != nil {
		return err
	}

	fmt.Printf("Updated %s:%d\n", args[0], line)
	return nil
}

// buildUpdate translates flags to the codec's tri-state update: an unset
// flag keeps the current value, a set flag replaces it, --clear empties it.
func buildUpdate(cmd *cobra.Command) (codec.Update, error) {
	var u codec.Update

	if cmd.Flags().Changed("title") {
		u.Title = &updateTitle
	}
	if cmd.Flags().Changed("project") {
		u.Project = &updateProject
	}
	if cmd.Flags().Changed("context") {
		u.Context = &updateContext
	}
	if cmd.Flags().Changed("planned") {
		u.Planned = &updatePlanned
	}
	if cmd.Flags().Changed("due") {
		u.Due = &updateDue
	}
	if cmd.Flags().Changed("review") {
		u.Review = &updateReview
	}
	if cmd.Flags().Changed("tags") {
		tags := codec.NormalizeTags(updateTags)
		u.Tags = &tags
	}
	if updateDone {
		done := true
		u.Completed = &done
	}
	if updateReopen {
		done := false
		u.Completed = &done
	}

	empty := ""
	var noTags []string
	for _, field := range updateClear {
		switch strings.ToLower(field) {
		case "project":
			u.Project = &empty
		case "context":
			u.Context = &empty
		case "planned":
			u.Planned = &empty
		case "due":
			u.Due = &empty
		case "review":
			u.Review = &empty
		case "tags":
			u.Tags = &noTags
		default:
			return u, fmt.Errorf("unknown field %q for --clear", field)
		}
	}

	return u, nil
}
