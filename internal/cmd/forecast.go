package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sauerdaniel/taskledger/internal/agenda"
	"github.com/sauerdaniel/taskledger/internal/calendar"
	"github.com/sauerdaniel/taskledger/internal/style"
)

var forecastDays int

var forecastCmd = &cobra.Command{
	Use:   "forecast",
	Short: "N-day task forecast with calendar events",
	Long: `Bucket tasks over the coming days. Every day in the window is shown,
tasks or not. A task with both planned and due dates appears on every day
of its range; a task with a single date appears on that day alone.
Calendar events from the configured feed are merged in per day.`,
	RunE: runForecast,
}

func init() {
	forecastCmd.Flags().IntVar(&forecastDays, "days", 0, "Window length in days (default from config)")
	rootCmd.AddCommand(forecastCmd)
}

func runForecast(cmd *cobra.Command, args []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	days := forecastDays
	if days <= 0 {
		days = a.cfg.ForecastDays
	}
	today := referenceDay()

	feed, err := calendar.Load(a.cfg.CalendarFeed)
	if err != nil {
		return err
	}

	buckets := agenda.Forecast(keepIncomplete(a.ledger.Tasks()), today, days)
	for i := 0; i < days; i++ {
		day, ok := agenda.AddDays(today, i)
		if !ok {
			return fmt.Errorf("invalid reference day %q", today)
		}

		fmt.Println(style.Header.Render(day))
		for _, ev := range feed.EventsOn(day) {
			when := "all day"
			if !ev.AllDay && ev.Start != "" {
				when = ev.Start
				if ev.End != "" {
					when += "-" + ev.End
				}
			}
			fmt.Println("  " + style.Date.Render(when) + " " + ev.Title)
		}

		tasks := buckets[day]
		if len(tasks) == 0 {
			fmt.Println("  " + style.Subtle.Render("(no tasks)"))
		}
		for i := range tasks {
			fmt.Print("  ")
			printTask(&tasks[i], today)
		}
		fmt.Println()
	}
	return nil
}
