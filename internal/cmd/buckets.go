package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sauerdaniel/taskledger/internal/agenda"
	"github.com/sauerdaniel/taskledger/internal/style"
	"github.com/sauerdaniel/taskledger/internal/task"
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Tasks planned for today",
	Long: `Tasks active today: planned today, or inside their planned..due range.
Tasks with only a due date surface under 'overdue' and 'forecast', not here.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBucket("Today", agenda.Today)
	},
}

var tomorrowCmd = &cobra.Command{
	Use:   "tomorrow",
	Short: "Tasks planned for tomorrow",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBucket("Tomorrow", agenda.Tomorrow)
	},
}

var overdueCmd = &cobra.Command{
	Use:   "overdue",
	Short: "Tasks past their due (or planned) date",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBucket("Overdue", agenda.Overdue)
	},
}

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Tasks never reviewed or stale for review",
	RunE:  runReview,
}

func init() {
	rootCmd.AddCommand(todayCmd)
	rootCmd.AddCommand(tomorrowCmd)
	rootCmd.AddCommand(overdueCmd)
	rootCmd.AddCommand(reviewCmd)
}

func runBucket(title string, bucket func([]task.Task, string) []task.Task) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	today := referenceDay()
	fmt.Println(style.Header.Render(title) + " " + style.Subtle.Render("("+today+")"))
	printTasks(keepIncomplete(bucket(a.ledger.Tasks(), today)), today)
	return nil
}

func runReview(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	today := referenceDay()
	tasks := keepWhere(a.ledger.Tasks(), func(t *task.Task) bool {
		return agenda.NeedsReviewAfter(t, today, a.cfg.ReviewStaleDays)
	})
	fmt.Println(style.Header.Render("Review") + " " + style.Subtle.Render("("+today+")"))
	printTasks(agenda.SortByDate(tasks), today)
	return nil
}
