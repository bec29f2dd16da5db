package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "btc-signal-bot",
	Short: "Bitcoin RSI buy-signal telegram bot",
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(checkCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
