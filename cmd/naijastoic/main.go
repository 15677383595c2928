package main

import (
	"fmt"
	"github.com/Odunjoy/NaijaStoic-props/cleanup"
	"github.com/Odunjoy/NaijaStoic-props/config"
	"github.com/Odunjoy/NaijaStoic-props/discord"
	"github.com/spf13/cobra"
	"os"
	"syscall"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "naijastoic",
		Short:         "Turn stoic monologues into NaijaStoic production packages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.Configure()
			discord.Start()
			cleanup.InitSignalCallback()
		},
	}

	rootCmd.AddCommand(newTransformCmd())
	rootCmd.AddCommand(newTemplatesCmd())
	rootCmd.AddCommand(newServeCmd())

	err := rootCmd.Execute()
	cleanup.RunStopFunc(syscall.SIGTERM, cleanup.Discord)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
