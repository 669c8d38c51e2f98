package main

import (
	"encoding/hex"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tern/internal/bigint"
)

var (
	evalRadix     int
	evalShowBytes bool
)

func init() {
	evalCmd.Flags().IntVar(&evalRadix, "radix", 10, "output radix (2-36)")
	evalCmd.Flags().BoolVar(&evalShowBytes, "bytes", false, "also print the canonical little-endian bytes")
}

var evalCmd = &cobra.Command{
	Use:   "eval <literal>",
	Short: "Evaluate a bigint literal and print its value",
	Long: `Eval accepts decimal, hex (0x), octal (0o), and binary (0b) literals,
with an optional sign on decimal ones, and prints the exact value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := parseLiteralArg(args[0])
		if err != nil {
			return err
		}

		s, err := bigint.ToString(value.Ref(), evalRadix)
		if err != nil {
			return fmt.Errorf("radix %d: %w", evalRadix, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)

		if evalShowBytes {
			label := color.New(color.FgCyan).Sprint("bytes:")
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", label, hex.EncodeToString(bigint.Bytes(value.Ref())))
		}
		return nil
	},
}

// parseLiteralArg turns a command-line literal into a materialized value.
func parseLiteralArg(lit string) (bigint.MutableBigInt, error) {
	parsed, err := bigint.ParseStringIntegerLiteral(lit)
	if err != nil {
		return bigint.MutableBigInt{}, fmt.Errorf("%q: %w", lit, err)
	}
	m := bigint.Mutable(make([]uint64, parsed.NumDigits()))
	if err := bigint.InitWithBytes(&m, parsed.Bytes()); err != nil {
		return bigint.MutableBigInt{}, fmt.Errorf("%q: %w", lit, err)
	}
	return m, nil
}
