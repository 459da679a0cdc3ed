// Command ec8-assembler turns EC8 assembler mnemonic source (.eca) into a
// .c8 program binary.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/emmachip8/ec8/internal/assembler"
	"github.com/spf13/cobra"
)

func main() {
	var output string
	var desc string
	var noEC8Warn bool

	rootCmd := &cobra.Command{
		Use:   "ec8-assembler",
		Short: "Assemble and describe EC8 mnemonic source",
	}

	assembleCmd := &cobra.Command{
		Use:   "assemble <in.eca>",
		Short: "Assemble EC8 mnemonic source into a .c8 program binary",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return assemble(args[0], output, desc, noEC8Warn)
		},
	}
	assembleCmd.Flags().StringVarP(&output, "output", "o", "", "output .c8 path (defaults to the source path with its extension replaced)")
	assembleCmd.Flags().StringVar(&desc, "desc", "", "also write a human-readable description of the assembled program to this path")
	assembleCmd.Flags().BoolVar(&noEC8Warn, "no-ec8-warn", false, "don't warn about opcodes beyond classic Chip-8")

	rootCmd.AddCommand(assembleCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func assemble(sourcePath, output, descPath string, noEC8Warn bool) error {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", sourcePath, err)
	}

	program, err := assembler.Parse(strings.Split(string(data), "\n"))
	if err != nil {
		return fmt.Errorf("assembling %s: %w", sourcePath, err)
	}

	for _, warning := range program.Warnings(noEC8Warn) {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	if descPath != "" {
		if err := os.WriteFile(descPath, []byte(program.Describe()), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", descPath, err)
		}
	}

	if output == "" {
		output = replaceExt(sourcePath, ".c8")
	}
	if err := os.WriteFile(output, program.IntoBytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Printf("Wrote %s\n", output)
	return nil
}

func replaceExt(path, ext string) string {
	if at := strings.LastIndexByte(path, '.'); at >= 0 {
		return path[:at] + ext
	}
	return path + ext
}
