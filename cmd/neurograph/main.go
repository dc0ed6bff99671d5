// Package main provides the neurograph CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const version = "v0.1.0-dev"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "neurograph",
	Short: "Scalar computational-graph engine with reverse-mode autodiff",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("neurograph %s\n", version)
	},
}

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Train the a + 2b demo regression",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRegression(configPath)
	},
}

func init() {
	trainCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML config file (learning_rate, epochs, samples, seed)")
	rootCmd.AddCommand(versionCmd, trainCmd)
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
