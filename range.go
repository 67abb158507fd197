package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"librarybox.klederson.com/internal/app"
	"librarybox.klederson.com/internal/config"
	"librarybox.klederson.com/internal/gauge"
)

var (
	flagDemo      bool
	flagAdapter   string
	flagLandscape bool
)

var rangeCmd = &cobra.Command{
	Use:   "range",
	Short: "Show nearby beacons on the distance gauge",
	RunE:  runRange,
}

func init() {
	rangeCmd.Flags().BoolVar(&flagDemo, "demo", false, "Run in demo mode with fake beacons (no Bluetooth required)")
	rangeCmd.Flags().StringVar(&flagAdapter, "adapter", "hci0", "Bluetooth adapter to use")
	rangeCmd.Flags().BoolVar(&flagLandscape, "landscape", false, "Start with the landscape layout")
	rootCmd.AddCommand(rangeCmd)
}

func runRange(cmd *cobra.Command, _ []string) error {
	demo := cfg.Ranging.Demo
	if cmd.Flags().Changed("demo") {
		demo = flagDemo
	}
	adapter := cfg.Ranging.Adapter
	if cmd.Flags().Changed("adapter") || adapter == "" {
		adapter = flagAdapter
	}
	orientation := gauge.Portrait
	if flagLandscape {
		orientation = gauge.Landscape
	}

	model := app.New(demo, adapter, orientation)
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithFPS(config.TargetFPS*3),
	)

	// Start the scanner with a reference to the tea program.
	if err := model.StartScanner(p); err != nil {
		zap.L().Error("range: scanner failed to start", zap.Error(err))
		if !demo {
			fmt.Fprintf(os.Stderr, "\nError: %v\n\n", err)
			fmt.Fprintln(os.Stderr, "Bluetooth scanning requires elevated permissions.")
			fmt.Fprintln(os.Stderr, "Try one of:")
			fmt.Fprintln(os.Stderr, "  sudo ./librarybox range")
			fmt.Fprintln(os.Stderr, "  sudo setcap cap_net_admin+ep ./librarybox")
			fmt.Fprintln(os.Stderr, "  ./librarybox range --demo    (demo mode, no hardware needed)")
			return err
		}
	}

	_, err := p.Run()
	return err
}
