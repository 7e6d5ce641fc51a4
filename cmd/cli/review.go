package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sevigo/code-critic/internal/api"
	"github.com/sevigo/code-critic/internal/apiclient"
)

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
	formatYAML     = "yaml"
)

var (
	outputFormat string
	rawOutput    bool
)

// Color definitions
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed)
	dimColor     = color.New(color.FgHiBlack)
)

var reviewCmd = &cobra.Command{
	Use:   "review [file|-]",
	Short: "Send source code to the server and print the AI review",
	Long: `Send source code to the server and print the AI review.

The code is read from the given file, or from standard input when the
argument is "-" or omitted.

Examples:
  critic-cli review main.go
  cat main.go | critic-cli review --format json
  critic-cli review --server http://10.0.0.5:5000 --format yaml main.go`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReview,
}

func init() { //nolint:gochecknoinits // Cobra command registration
	reviewCmd.Flags().StringVarP(&outputFormat, "format", "f", formatMarkdown, "Output format: markdown, json or yaml")
	reviewCmd.Flags().BoolVar(&rawOutput, "raw", false, "Print the Markdown review without terminal rendering")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	switch outputFormat {
	case formatMarkdown, formatJSON, formatYAML:
	default:
		return fmt.Errorf("unknown format %q: use markdown, json or yaml", outputFormat)
	}

	source := "-"
	if len(args) == 1 {
		source = args[0]
	}
	code, err := readSource(source, cmd.InOrStdin())
	if err != nil {
		return err
	}

	client := newClient()
	out := cmd.OutOrStdout()
	if outputFormat == formatMarkdown {
		titleColor.Fprintln(out, "💡 Code Critic - AI Review")
		dimColor.Fprintf(out, "   Server: %s\n\n", client.BaseURL())
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), apiclient.DefaultTimeout)
	defer cancel()

	start := time.Now()
	resp, err := client.Review(ctx, code)
	if err != nil {
		errorColor.Fprintln(cmd.ErrOrStderr(), apiclient.Describe(err))
		return fmt.Errorf("review failed: %w", err)
	}

	if err := writeReview(out, resp, outputFormat, rawOutput); err != nil {
		return err
	}
	if outputFormat == formatMarkdown {
		dimColor.Fprintf(out, "\n⏱️  %s • prompt %d chars • review %d chars\n",
			time.Since(start).Round(time.Millisecond), resp.PromptLength, resp.ReviewLength)
	}
	return nil
}

// readSource reads a file, or stdin for "-".
func readSource(source string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if source == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read code from %s: %w", source, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errors.New("no code to review: input is empty")
	}
	return string(data), nil
}

func writeReview(w io.Writer, resp *api.ReviewResponse, format string, raw bool) error {
	switch format {
	case formatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(resp)
	case formatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(resp); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return encoder.Close()
	}

	if raw {
		_, err := fmt.Fprintln(w, resp.Review)
		return err
	}

	rendered, err := glamour.Render(resp.Review, "dark")
	if err != nil {
		_, err = fmt.Fprintln(w, resp.Review)
		return err
	}
	_, err = fmt.Fprint(w, rendered)
	return err
}
