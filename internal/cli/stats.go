package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

func (a *App) Stats(ctx context.Context) error {
	if !a.isLoggedIn() {
		toast("Please login to continue")
		return nil
	}

	days := a.config.AnalyticsWindowDays
	answer, err := GetSimpleText(a.reader,
		fmt.Sprintf("Window in days (empty for %d)", days), os.Stdout)
	if err != nil {
		return err
	}
	if answer != "" {
		if n, convErr := strconv.Atoi(answer); convErr == nil && n > 0 {
			days = n
		}
	}

	report, err := a.analytics.Compute(ctx, a.user.ID, days)
	if err != nil {
		toast(err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Last %d days: %d rides, $%d spent, $%.0f avg, %.0f%% completed",
		days, report.TotalRides, report.TotalSpent, report.AvgCost, report.CompletionRate))

	for _, tc := range report.TypeBreakdown {
		printlnFn(fmt.Sprintf("  %-8s %3d ride(s)  %3d%%", tc.Type, tc.Count, tc.Percentage))
	}

	if len(report.MonthlySpending) > 0 {
		printlnFn("Monthly spending:")
		for _, m := range report.MonthlySpending {
			printlnFn(fmt.Sprintf("  %s  $%d", m.Month, m.Total))
		}
	}

	for _, insight := range report.Insights {
		printlnFn(fmt.Sprintf("%s: %s", insight.Title, insight.Description))
	}
	return nil
}
