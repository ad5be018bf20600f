package main

import (
	"fmt"

	"github.com/seedplanter/seedloop/internal/models"
	"github.com/seedplanter/seedloop/internal/store"
	"github.com/spf13/cobra"
)

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record the start of a resolution attempt",
	RunE:  runRecord,
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the status of a resolution attempt",
	Long: `Update the status of a resolution attempt.

Valid transitions:
  pending  -> resolved (PR created) or failed
  resolved -> merged or closed (PR disposition)

merged, closed, and failed are terminal; further updates are rejected.`,
	RunE: runUpdate,
}

var (
	issueNumber  int
	issueTitle   string
	issueLabels  []string
	issueCat     string
	newStatus    string
	prNumber     int
	filesChanged int
	errorMessage string
)

func init() {
	recordCmd.Flags().IntVar(&issueNumber, "issue", 0, "Issue number (required)")
	recordCmd.Flags().StringVar(&issueTitle, "title", "", "Issue title")
	recordCmd.Flags().StringSliceVar(&issueLabels, "label", nil, "Issue label (repeatable)")
	recordCmd.Flags().StringVar(&issueCat, "category", "", "Category (derived from labels if omitted)")
	recordCmd.MarkFlagRequired("issue")

	updateCmd.Flags().IntVar(&issueNumber, "issue", 0, "Issue number (required)")
	updateCmd.Flags().StringVar(&newStatus, "status", "", "New status: resolved, merged, closed, failed (required)")
	updateCmd.Flags().IntVar(&prNumber, "pr", 0, "Pull request number")
	updateCmd.Flags().IntVar(&filesChanged, "files-changed", 0, "Number of files changed")
	updateCmd.Flags().StringVar(&errorMessage, "error", "", "Error message (for failed)")
	updateCmd.MarkFlagRequired("issue")
	updateCmd.MarkFlagRequired("status")
}

func runRecord(cmd *cobra.Command, args []string) error {
	l, s, _, err := openLoop()
	if err != nil {
		return err
	}
	defer s.Close()

	record, err := l.RecordAttempt(issueNumber, issueTitle, issueLabels, issueCat)
	if err != nil {
		return err
	}

	fmt.Printf("Recorded attempt for issue #%d (category: %s)\n", record.IssueNumber, record.Category)
	return nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	l, s, _, err := openLoop()
	if err != nil {
		return err
	}
	defer s.Close()

	record, err := l.UpdateStatus(issueNumber, models.Status(newStatus), store.UpdateOptions{
		PRNumber:     prNumber,
		FilesChanged: filesChanged,
		ErrorMessage: errorMessage,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Issue #%d -> %s\n", record.IssueNumber, record.Status)
	if record.TimeToResolveMinutes != nil {
		fmt.Printf("Time to resolve: %.1f min\n", *record.TimeToResolveMinutes)
	}
	if record.TimeToMergeMinutes != nil {
		fmt.Printf("Time to merge:   %.1f min\n", *record.TimeToMergeMinutes)
	}
	return nil
}
