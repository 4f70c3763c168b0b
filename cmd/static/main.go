package main

import (
	"fmt"
	"os"

	"partner-funnel/internal/pkg/logger"

	"github.com/spf13/cobra"
)

func main() {
	logger.Setup()
	defer logger.Sync()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		port int
		dir  string
	)

	cmd := &cobra.Command{
		Use:   "static",
		Short: "Serve the built SPA with health and mock endpoints for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(dir); err != nil {
				return fmt.Errorf("dist directory %q: %w", dir, err)
			}
			logger.HTTP.Printf("Static server on :%d serving %s\n", port, dir)
			return newEngine(dir).Run(fmt.Sprintf(":%d", port))
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 3000, "Port to listen on")
	cmd.Flags().StringVarP(&dir, "dir", "d", "web/dist", "Directory holding the built SPA")

	return cmd
}
