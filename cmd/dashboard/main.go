package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"project-dashboard/client"
	"project-dashboard/config"
	"project-dashboard/dashboard"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		apiURL  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:          "dashboard",
		Short:        "Browse project assignments in the terminal",
		SilenceUsage: true,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			cfg, err := config.LoadDashboard()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("api-url") {
				apiURL = cfg.APIURL
			}
			if !cmd.Flags().Changed("timeout") {
				timeout = cfg.Timeout
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c := client.New(apiURL, &http.Client{Timeout: timeout})
			p := tea.NewProgram(dashboard.NewModel(c, timeout), tea.WithAltScreen())
			_, err := p.Run()
			return err
		},
	}

	cmd.Flags().StringVar(&apiURL, "api-url", "http://localhost:5000/api", "base URL of the API (env API_URL)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout (env API_TIMEOUT)")
	return cmd
}
