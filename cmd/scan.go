package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/autoapply/fillengine/internal/observability"
	"github.com/autoapply/fillengine/pkg/browser"
	"github.com/autoapply/fillengine/pkg/scanner"
)

var scanURL string

// scanCmd observes a page and prints its typed snapshot without filling
// anything. Useful for debugging field classification and matching inputs.
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan a page and print its interactive surface as JSON.",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := observability.GetLogger()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		mgr := browser.NewManager(cfg.Browser, logger)
		defer mgr.Close()
		session, err := mgr.NewSession(ctx)
		if err != nil {
			return err
		}
		defer session.Close()

		if err := session.Navigate(ctx, scanURL); err != nil {
			return fmt.Errorf("navigate to %s: %w", scanURL, err)
		}
		page, err := scanner.New(session, logger).Scan(ctx)
		if err != nil {
			return err
		}
		return printJSON(cmd, page)
	},
}

func init() {
	scanCmd.Flags().StringVarP(&scanURL, "url", "u", "", "page URL to scan (required)")
	scanCmd.MarkFlagRequired("url")
	rootCmd.AddCommand(scanCmd)
}
