package main

import (
	"fmt"
	"os"
	"survey/internal/di"
	"survey/internal/structures"

	"github.com/spf13/cobra"
)

func main() {
	flags := &structures.CliFlags{}

	rootCmd := &cobra.Command{
		Use:           "survey",
		Short:         "LIFF survey API server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, cleanup, err := di.InitApp(flags)
			if err != nil {
				return fmt.Errorf("init: %w", err)
			}
			defer cleanup()
			return app.Run()
		},
	}

	rootCmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "configs/config.yaml", "path to the YAML config file")
	rootCmd.Flags().BoolVarP(&flags.DebugMode, "debug", "d", false, "mirror logs to the console")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
