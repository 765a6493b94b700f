package main

import (
	"github.com/deepikaoppangi/lbg-financial-overview/internal/models"
	"github.com/deepikaoppangi/lbg-financial-overview/internal/service"
	"github.com/spf13/cobra"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Print the snapshot and summary for a profile",
	RunE:  runSnapshot,
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Answer a scenario question for a profile",
	RunE:  runSimulate,
}

func init() {
	for _, c := range []*cobra.Command{snapshotCmd, simulateCmd} {
		c.Flags().StringVarP(&flagProfile, "profile", "p", "", "Profile id (default profile when empty)")
		c.Flags().StringVar(&flagPeriod, "period", service.DefaultPeriod, "Period: 6M, 1Y, 3Y or 5Y")
		c.Flags().StringVarP(&flagQuestion, "question", "q", "", "Scenario question")
		rootCmd.AddCommand(c)
	}
}

func request() service.SnapshotRequest {
	return service.SnapshotRequest{Profile: flagProfile, Period: flagPeriod, Question: flagQuestion}
}

func runSnapshot(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	snap, summary, err := a.Service.Snapshot(cmd.Context(), request())
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), struct {
		Snapshot *models.Snapshot `json:"snapshot"`
		Summary  models.Summary   `json:"summary"`
	}{snap, summary})
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := a.Service.Simulate(cmd.Context(), request())
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), result)
}
