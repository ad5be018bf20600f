package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var guidanceCmd = &cobra.Command{
	Use:   "guidance",
	Short: "Derive generation guidance from outcome history",
	Long: `Derive weighted generation guidance from outcome history.

Categories with a strong resolution history are listed as high priority;
categories that rarely resolve are de-emphasized. The prompt adjustment
string is intended to be appended to an issue-generation prompt.`,
	RunE: runGuidance,
}

func init() {
	guidanceCmd.Flags().IntVar(&windowDays, "days", 0, "Window in days (default from config)")
	guidanceCmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
}

func runGuidance(cmd *cobra.Command, args []string) error {
	l, s, cfg, err := openLoop()
	if err != nil {
		return err
	}
	defer s.Close()

	g, err := l.Guidance(windowFromDays(windowDays, cfg))
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(g)
	}

	fmt.Println(titleStyle.Render("Generation Guidance"))
	fmt.Println()

	if len(g.HighPriorityCategories) > 0 {
		fmt.Printf("%s %s\n", sectionStyle.Render("Prioritize:"), goodStyle.Render(strings.Join(g.HighPriorityCategories, ", ")))
	}
	if len(g.LowPriorityCategories) > 0 {
		fmt.Printf("%s %s\n", sectionStyle.Render("De-emphasize:"), badStyle.Render(strings.Join(g.LowPriorityCategories, ", ")))
	}

	if len(g.CategoryWeights) > 0 {
		fmt.Println()
		fmt.Println(sectionStyle.Render("Weights"))

		names := make([]string, 0, len(g.CategoryWeights))
		for name := range g.CategoryWeights {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			if g.CategoryWeights[names[i]] != g.CategoryWeights[names[j]] {
				return g.CategoryWeights[names[i]] > g.CategoryWeights[names[j]]
			}
			return names[i] < names[j]
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		for _, name := range names {
			fmt.Fprintf(w, "  %s\t%.3f\n", name, g.CategoryWeights[name])
		}
		w.Flush()
	}

	fmt.Println()
	fmt.Println(sectionStyle.Render("Prompt adjustment"))
	fmt.Printf("  %s\n", g.PromptAdjustment)
	return nil
}
