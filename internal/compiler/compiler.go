package compiler

import (
	"fmt"

	"github.com/emmachip8/ec8/internal/vm"
)

// Compile runs the full structured-source pipeline: parse, validate, verify
// labels, extract and expand macros, lower to opcodes, size-check, and
// resolve addresses. It returns the resolved program, any non-fatal warning
// text (unused labels/data), and an error if compilation failed.
func Compile(source []string) (*Program, string, error) {
	var lines []Line
	var defs []Definition
	for i, raw := range source {
		line, ok := ParseLine(i+1, raw, defs)
		if !ok {
			continue
		}
		lines = append(lines, line)
		defs = append(defs, line.Defs()...)
	}

	if err := HandleErrors(lines); err != nil {
		return nil, "", err
	}
	if err := ValidateCode(lines); err != nil {
		return nil, "", err
	}
	warning, err := VerifyLabels(lines)
	if err != nil {
		return nil, "", err
	}

	strippedLines, macros, err := ExtractMacros(lines)
	if err != nil {
		return nil, "", err
	}
	for name, macro := range BuiltinMacros() {
		if _, exists := macros[name]; !exists {
			macros[name] = macro
		}
	}

	expanded, err := ExpandMacros(strippedLines, macros)
	if err != nil {
		return nil, "", err
	}

	program, err := BuildOpcodes(expanded)
	if err != nil {
		return nil, "", err
	}

	progBytes := program.CountAsmBytes()
	dataBytes := program.CountDataBytes()
	if progBytes+dataBytes > vm.MaxProgSize {
		return nil, "", fmt.Errorf("Program and data are too large, max %db\nProgram %db\nData %db", vm.MaxProgSize, progBytes, dataBytes)
	}

	if err := program.SetAddresses(); err != nil {
		return nil, "", err
	}

	return program, warning, nil
}

// CompileToAsm runs Compile and renders the resolved program as assembler
// mnemonic text, ready to hand to the assembler package.
func CompileToAsm(source []string) ([]string, string, error) {
	program, warning, err := Compile(source)
	if err != nil {
		return nil, "", err
	}
	return program.ToAsm(), warning, nil
}
