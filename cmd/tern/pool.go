package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"tern/internal/constpool"
)

var (
	poolBuildOutput string
	poolBuildFile   string
	poolBuildJobs   int
	poolShowRadix   int
)

func init() {
	poolBuildCmd.Flags().StringVarP(&poolBuildOutput, "output", "o", "", "pool file to write (defaults to [pool].output in tern.toml)")
	poolBuildCmd.Flags().StringVar(&poolBuildFile, "file", "", "read literals from a file, one per line")
	poolBuildCmd.Flags().IntVar(&poolBuildJobs, "jobs", 0, "parallel parse workers (0 = GOMAXPROCS)")
	poolShowCmd.Flags().IntVar(&poolShowRadix, "radix", 10, "radix for the value column (2-36)")

	poolCmd.AddCommand(poolBuildCmd)
	poolCmd.AddCommand(poolShowCmd)
}

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Build and inspect bigint constant pools",
}

var poolBuildCmd = &cobra.Command{
	Use:   "build [literals...]",
	Short: "Parse literals into a deduplicated constant pool file",
	RunE: func(cmd *cobra.Command, args []string) error {
		literals := args
		if poolBuildFile != "" {
			fromFile, err := readLiteralLines(poolBuildFile)
			if err != nil {
				return err
			}
			literals = append(literals, fromFile...)
		}
		if len(literals) == 0 {
			return fmt.Errorf("no literals: pass them as arguments or via --file")
		}

		manifest, _, err := loadProjectManifest(".")
		if err != nil {
			return err
		}
		output, err := resolvePoolOutput(poolBuildOutput, manifest)
		if err != nil {
			return err
		}

		pool, _, err := constpool.BuildFromLiterals(cmd.Context(), literals, poolBuildJobs)
		if err != nil {
			return err
		}
		if err := pool.Save(output); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d constants to %s\n", pool.Len(), output)
		return nil
	},
}

var poolShowCmd = &cobra.Command{
	Use:   "show <pool file>",
	Short: "List the constants stored in a pool file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pool, err := constpool.Load(args[0])
		if err != nil {
			return err
		}
		lines, err := pool.Dump(poolShowRadix)
		if err != nil {
			return err
		}
		header := color.New(color.Bold).Sprint("id\tbytes\tvalue")
		fmt.Fprintln(cmd.OutOrStdout(), header)
		for _, line := range lines {
			fmt.Fprintln(cmd.OutOrStdout(), line)
		}
		return nil
	},
}

// readLiteralLines reads literals from path, one per line, skipping
// blank lines and # comments.
func readLiteralLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "failed to close %s: %v\n", path, closeErr)
		}
	}()

	var literals []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		literals = append(literals, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return literals, nil
}
