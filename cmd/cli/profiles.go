package main

import (
	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List available profiles",
	RunE:  runProfiles,
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}

func runProfiles(cmd *cobra.Command, _ []string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}
	defer a.Close()

	profiles, err := a.Service.Profiles(cmd.Context())
	if err != nil {
		return err
	}
	return printJSON(cmd.OutOrStdout(), map[string]interface{}{"profiles": profiles})
}
