package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tern/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "tern",
	Short: "Arbitrary-precision integer toolkit",
	Long:  `Tern evaluates bigint literals, performs exact integer arithmetic, and manages on-disk constant pools`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := applyLogLevel(cmd); err != nil {
			return err
		}
		return applyColorMode(cmd)
	},
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd.Version = version.Version

	rootCmd.AddCommand(evalCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(subCmd)
	rootCmd.AddCommand(cmpCmd)
	rootCmd.AddCommand(poolCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("log-level", "warn", "log verbosity (debug|info|warn|error)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func applyLogLevel(cmd *cobra.Command) error {
	value, err := cmd.Root().PersistentFlags().GetString("log-level")
	if err != nil {
		return fmt.Errorf("failed to get log-level flag: %w", err)
	}
	level, err := zerolog.ParseLevel(strings.TrimSpace(strings.ToLower(value)))
	if err != nil {
		return fmt.Errorf("invalid --log-level value %q: %w", value, err)
	}
	zerolog.SetGlobalLevel(level)
	return nil
}

func applyColorMode(cmd *cobra.Command) error {
	value, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		color.NoColor = !isTerminal(os.Stdout)
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", value)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
