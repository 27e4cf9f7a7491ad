// Package main provides the entrypoint for the Tripcast terminal client.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tripcast/tripcast/internal/client"
	"github.com/tripcast/tripcast/internal/tui"
)

var apiURL string

var rootCmd = &cobra.Command{
	Use:   "tripcast",
	Short: "Plan a route and see the weather along it",
	Long: `Tripcast asks for a source, a destination, a transport mode and a start
time, then shows the calculated route as a timeline with the weather and
road conditions expected at each point.

You need a TomTom API key (geocoding, routing, traffic) and a WeatherAPI
key; both are entered in the form and sent with each request.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractive()
	},
}

func runInteractive() error {
	// The TUI owns the terminal, so client logs go to a file when
	// requested and are discarded otherwise.
	logger := zerolog.Nop()
	if path := os.Getenv("TRIPCAST_LOG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer f.Close()
		logger = zerolog.New(f).With().Timestamp().Logger()
	}

	api := client.New(client.Config{
		BaseURL: apiURL,
		Logger:  logger,
	})

	p := tea.NewProgram(tui.NewModel(api))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}

func init() {
	defaultURL := os.Getenv("TRIPCAST_API_URL")
	if defaultURL == "" {
		defaultURL = client.DefaultBaseURL
	}
	rootCmd.Flags().StringVar(&apiURL, "api-url", defaultURL, "Base URL of the Tripcast API")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
