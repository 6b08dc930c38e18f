package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexiusacademia/gotruss/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of gotruss",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gotruss v%s\n", version.Version)
		fmt.Println("Planar Truss Analysis Tool (method of joints)")
		fmt.Println("Load combinations per NSCP 2015 (National Structural Code of the Philippines)")
		fmt.Printf("commit: %s\nbuilt: %s\n", version.GitCommit, version.BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
