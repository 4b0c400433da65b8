package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gokul-sureshkumar/Tariff-AI/pkg/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version and build information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().Bool("short", false, "print only the version number")
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.Get()

	if short, _ := cmd.Flags().GetBool("short"); short {
		fmt.Println(info.Version)
		return nil
	}

	if viperOutputFormat() == "json" {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println(info.String())
	return nil
}
