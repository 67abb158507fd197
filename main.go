package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"librarybox.klederson.com/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "librarybox",
	Short: "LibraryBox - find nearby boxes and pin new ones",
	Long: `LibraryBox ranges iBeacons onto a logarithmic distance gauge in the
terminal and pins new box locations to a shared database after checking the
address against boxes already on the map.

Ranging requires sudo or CAP_NET_ADMIN capability for real Bluetooth scanning.
Use "librarybox range --demo" for demonstration mode without Bluetooth hardware.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		cfg = c

		// The gauge owns the terminal, so its logs go to a file.
		if cmd.Name() == "range" && cfg.Log.File == "" {
			cfg.Log.File = config.DefaultRangeLogFile
		}
		if err := config.InitLogger(cfg.Log); err != nil {
			return eris.Wrap(err, "init logger")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
