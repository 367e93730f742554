package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sauerdaniel/taskledger/internal/agenda"
)

var tagsSelected []string

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Tasks grouped by project",
	Long: `Group tasks by project. A task's explicit project annotation wins;
tasks without one fall back to the project declared in their document's
front matter. Tasks with no resolvable project are omitted.`,
	RunE: runProjects,
}

var contextsCmd = &cobra.Command{
	Use:   "contexts",
	Short: "Tasks grouped by context",
	RunE:  runContexts,
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Tasks grouped by selected tags",
	Long: `Group tasks under the selected tags. Selection is an AND filter: a
task appears only if it carries every selected tag. With no --tag flags
the selection is empty and so is the result.`,
	RunE: runTags,
}

func init() {
	tagsCmd.Flags().StringArrayVar(&tagsSelected, "tag", nil, "Selected tag (repeatable, AND)")

	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(contextsCmd)
	rootCmd.AddCommand(tagsCmd)
}

func runProjects(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	groups := agenda.GroupByProject(a.ledger.Tasks(), a.store.ProjectNamesFor)
	printGroups(groups, referenceDay())
	return nil
}

func runContexts(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	printGroups(agenda.GroupByContext(a.ledger.Tasks()), referenceDay())
	return nil
}

func runTags(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	printGroups(agenda.GroupByTags(a.ledger.Tasks(), tagsSelected), referenceDay())
	return nil
}
