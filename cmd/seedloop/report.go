package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent resolution attempts",
	RunE:  runList,
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show overall and per-category outcome statistics",
	RunE:  runReport,
}

var (
	windowDays   int
	listCategory string
	asJSON       bool
)

func init() {
	listCmd.Flags().IntVar(&windowDays, "days", 0, "Window in days (default from config)")
	listCmd.Flags().StringVar(&listCategory, "category", "", "Filter by category")

	reportCmd.Flags().IntVar(&windowDays, "days", 0, "Window in days (default from config)")
	reportCmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	l, s, cfg, err := openLoop()
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := l.Recent(windowFromDays(windowDays, cfg), listCategory)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No attempts recorded")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ISSUE\tTITLE\tCATEGORY\tSTATUS\tPR\tCREATED")
	for _, r := range records {
		pr := ""
		if r.PRNumber != 0 {
			pr = fmt.Sprintf("#%d", r.PRNumber)
		}
		fmt.Fprintf(w, "#%d\t%s\t%s\t%s\t%s\t%s\n",
			r.IssueNumber, truncate(r.IssueTitle, 40), r.Category, r.Status, pr,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	w.Flush()
	return nil
}

func runReport(cmd *cobra.Command, args []string) error {
	l, s, cfg, err := openLoop()
	if err != nil {
		return err
	}
	defer s.Close()

	report, err := l.Report(windowFromDays(windowDays, cfg))
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Println(titleStyle.Render("Outcome Report"))
	fmt.Println()
	fmt.Println(sectionStyle.Render("Overall"))

	o := report.Overall
	fmt.Printf("  Attempts:      %d\n", o.Total)
	fmt.Printf("  Resolved:      %d\n", o.ResolvedCount)
	fmt.Printf("  Merged:        %d\n", o.MergedCount)
	fmt.Printf("  Failed:        %d\n", o.FailedCount)
	fmt.Printf("  Success rate:  %s\n", rateStyle(o.SuccessRate).Render(percent(o.SuccessRate)))
	fmt.Printf("  Merge rate:    %s\n", rateStyle(o.MergeRate).Render(percent(o.MergeRate)))
	if o.AvgResolveMinutes > 0 {
		fmt.Printf("  Avg resolve:   %.1f min\n", o.AvgResolveMinutes)
	}
	if o.AvgMergeMinutes > 0 {
		fmt.Printf("  Avg merge:     %.1f min\n", o.AvgMergeMinutes)
	}

	if len(report.Categories) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println(sectionStyle.Render("By Category"))

	names := make([]string, 0, len(report.Categories))
	for name := range report.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  CATEGORY\tATTEMPTS\tRESOLVED\tMERGED\tFAILED\tSUCCESS\tMERGE\tAVG RESOLVE")
	for _, name := range names {
		c := report.Categories[name]
		avgResolve := "-"
		if c.AvgResolveMinutes > 0 {
			avgResolve = fmt.Sprintf("%.1f min", c.AvgResolveMinutes)
		}
		fmt.Fprintf(w, "  %s\t%d\t%d\t%d\t%d\t%s\t%s\t%s\n",
			c.Category, c.TotalAttempts, c.ResolvedCount, c.MergedCount, c.FailedCount,
			percent(c.SuccessRate), percent(c.MergeRate), avgResolve)
	}
	w.Flush()
	return nil
}

// --- Helpers ---

func percent(rate float64) string {
	return fmt.Sprintf("%.0f%%", rate*100)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
