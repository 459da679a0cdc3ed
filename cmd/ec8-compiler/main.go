// Command ec8-compiler lowers EC8 structured source (.ecc: labels, data,
// aliases, macros, loops, if-guards) to assembler mnemonic text (.eca),
// ready for ec8-assembler.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/emmachip8/ec8/internal/compiler"
	"github.com/spf13/cobra"
)

// checkLevel is how seriously a diagnostic class is taken: dropped,
// printed as a warning, or escalated to a fatal error.
type checkLevel int

const (
	levelOff checkLevel = iota
	levelWarn
	levelError
)

func parseLevel(name string) (checkLevel, error) {
	switch name {
	case "off":
		return levelOff, nil
	case "warn":
		return levelWarn, nil
	case "error":
		return levelError, nil
	default:
		return levelOff, fmt.Errorf("unknown check level %q, want off|warn|error", name)
	}
}

func main() {
	var output string
	var ec8Level string
	var lintLevel string

	rootCmd := &cobra.Command{
		Use:   "ec8-compiler",
		Short: "Compile EC8 structured source to assembler mnemonic text",
	}

	compileCmd := &cobra.Command{
		Use:   "compile <in.ecc>",
		Short: "Compile EC8 structured source (.ecc) into assembler mnemonic text (.eca)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return compile(args[0], output, ec8Level, lintLevel)
		},
	}
	compileCmd.Flags().StringVarP(&output, "output", "o", "", "output .eca path (defaults to the source path with its extension replaced)")
	compileCmd.Flags().StringVar(&ec8Level, "ec8", "warn", "how to treat opcodes beyond classic Chip-8: off|warn|error")
	compileCmd.Flags().StringVar(&lintLevel, "lint", "warn", "how to treat unused label/data names: off|warn|error")

	rootCmd.AddCommand(compileCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func compile(sourcePath, output, ec8Name, lintName string) error {
	ec8Level, err := parseLevel(ec8Name)
	if err != nil {
		return fmt.Errorf("--ec8: %w", err)
	}
	lintLevel, err := parseLevel(lintName)
	if err != nil {
		return fmt.Errorf("--lint: %w", err)
	}

	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", sourcePath, err)
	}

	asmLines, lintWarning, err := compiler.CompileToAsm(strings.Split(string(data), "\n"))
	if err != nil {
		return fmt.Errorf("compiling %s: %w", sourcePath, err)
	}

	if lintWarning != "" {
		switch lintLevel {
		case levelError:
			return fmt.Errorf("%s", lintWarning)
		case levelWarn:
			fmt.Fprintln(os.Stderr, lintWarning)
		}
	}

	if ec8Level != levelOff {
		if uses, found := usesEC8Only(asmLines); found {
			msg := fmt.Sprintf("uses EC8-only mnemonic(s) beyond classic Chip-8: %s", uses)
			if ec8Level == levelError {
				return fmt.Errorf("%s", msg)
			}
			fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
		}
	}

	if output == "" {
		output = replaceExt(sourcePath, ".eca")
	}
	if err := os.WriteFile(output, []byte(strings.Join(asmLines, "\n")+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}
	fmt.Printf("Wrote %s\n", output)
	return nil
}

// ec8OnlyMnemonics are the assembler mnemonics compiled output can contain
// that classic Chip-8 hardware doesn't support.
var ec8OnlyMnemonics = []string{"asc"}

func usesEC8Only(asmLines []string) (string, bool) {
	for _, line := range asmLines {
		for _, mnem := range ec8OnlyMnemonics {
			if strings.HasPrefix(line, mnem+" ") || line == mnem {
				return mnem, true
			}
		}
	}
	return "", false
}

func replaceExt(path, ext string) string {
	if at := strings.LastIndexByte(path, '.'); at >= 0 {
		return path[:at] + ext
	}
	return path + ext
}
