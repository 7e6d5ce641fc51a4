package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sevigo/code-critic/internal/apiclient"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the Code Critic server is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		client := newClient()

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()

		health, err := client.Health(ctx)
		if err != nil {
			errorColor.Fprintln(cmd.ErrOrStderr(), apiclient.Describe(err))
			return fmt.Errorf("health check failed: %w", err)
		}

		out := cmd.OutOrStdout()
		successColor.Fprintf(out, "✅ %s is %s\n", client.BaseURL(), health.Status)
		dimColor.Fprintf(out, "   %s\n", health.Message)
		dimColor.Fprintf(out, "   review endpoint: %s\n", health.Endpoints.Review)
		if len(health.CORS.AllowedOrigins) > 0 {
			dimColor.Fprintf(out, "   allowed origins: %s\n", strings.Join(health.CORS.AllowedOrigins, ", "))
		}
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra command registration
	rootCmd.AddCommand(healthCmd)
}
