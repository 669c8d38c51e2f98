package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tern/internal/bigint"
)

var (
	addRadix int
	subRadix int
)

func init() {
	addCmd.Flags().IntVar(&addRadix, "radix", 10, "output radix (2-36)")
	subCmd.Flags().IntVar(&subRadix, "radix", 10, "output radix (2-36)")
}

var addCmd = &cobra.Command{
	Use:   "add <lhs> <rhs>",
	Short: "Add two bigint literals",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdditive(cmd, args, addRadix, false)
	},
}

var subCmd = &cobra.Command{
	Use:   "sub <lhs> <rhs>",
	Short: "Subtract one bigint literal from another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAdditive(cmd, args, subRadix, true)
	},
}

var cmpCmd = &cobra.Command{
	Use:   "cmp <lhs> <rhs>",
	Short: "Compare two bigint literals",
	Long:  `Cmp prints -1, 0, or 1 depending on whether the first value is below, equal to, or above the second.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		lhs, rhs, err := parseOperands(args)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), bigint.Compare(lhs.Ref(), rhs.Ref()))
		return nil
	},
}

func parseOperands(args []string) (lhs, rhs bigint.MutableBigInt, err error) {
	if lhs, err = parseLiteralArg(args[0]); err != nil {
		return lhs, rhs, err
	}
	rhs, err = parseLiteralArg(args[1])
	return lhs, rhs, err
}

func runAdditive(cmd *cobra.Command, args []string, radix int, subtract bool) error {
	lhs, rhs, err := parseOperands(args)
	if err != nil {
		return err
	}

	var dst bigint.MutableBigInt
	if subtract {
		dst = bigint.Mutable(make([]uint64, bigint.SubtractResultSize(lhs.Ref(), rhs.Ref())))
		err = bigint.Subtract(&dst, lhs.Ref(), rhs.Ref())
	} else {
		dst = bigint.Mutable(make([]uint64, bigint.AddResultSize(lhs.Ref(), rhs.Ref())))
		err = bigint.Add(&dst, lhs.Ref(), rhs.Ref())
	}
	if err != nil {
		return err
	}

	s, err := bigint.ToString(dst.Ref(), radix)
	if err != nil {
		return fmt.Errorf("radix %d: %w", radix, err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), s)
	return nil
}
