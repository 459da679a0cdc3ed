package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// HandleErrors collects every line the parser could not make sense of into
// one compile-blocking error.
func HandleErrors(lines []Line) error {
	var messages []string
	for _, line := range lines {
		if line.Kind != LineErrorKind {
			continue
		}
		messages = append(messages, fmt.Sprintf("Line %d: expected %s line. Error: %s", line.LineNo, line.Expected, line.Message))
	}
	if len(messages) == 0 {
		return nil
	}
	return fmt.Errorf("Unable to compile:\n\n%s", strings.Join(messages, "\n"))
}

// ValidateCode checks every code line's operand shapes, accumulating all
// violations into a single error.
func ValidateCode(lines []Line) error {
	var messages []string
	for _, line := range lines {
		if line.Kind != LineCode {
			continue
		}
		if msg := line.Token.Validate(); msg != "" {
			messages = append(messages, fmt.Sprintf("Line %d: %s", line.LineNo, msg))
		}
	}
	if len(messages) == 0 {
		return nil
	}
	return fmt.Errorf("Syntax error:\n\n%s", strings.Join(messages, "\n"))
}

func markParamUse(p Param, usedLabels, usedDatas map[string]bool) {
	switch p.Kind {
	case ParamLabel:
		usedLabels[p.Text] = true
	case ParamData:
		usedDatas[p.Text] = true
	case ParamUnknown:
		usedLabels[p.Text] = true
		usedDatas[p.Text] = true
	}
}

func markTokenUses(t Token, usedLabels, usedDatas map[string]bool) {
	switch t.Kind {
	case TokSet:
		markParamUse(t.P2, usedLabels, usedDatas)
	case TokGoto, TokCall:
		markParamUse(t.P1, usedLabels, usedDatas)
	case TokGotoOffset:
		markParamUse(t.P1, usedLabels, usedDatas)
	case TokMacroCall:
		for _, p := range t.CallParams {
			markParamUse(p, usedLabels, usedDatas)
		}
	case TokIf:
		markParamUse(t.Cond.P1, usedLabels, usedDatas)
		markParamUse(t.Cond.P2, usedLabels, usedDatas)
		if t.Inner != nil {
			markTokenUses(*t.Inner, usedLabels, usedDatas)
		}
	}
}

// VerifyLabels checks every label/data name is defined at most once and
// reports (non-fatally) any defined but never referenced. The returned
// string is warning text for an otherwise successful pass; err is non-nil
// only when a duplicate definition was found.
func VerifyLabels(lines []Line) (string, error) {
	definedLabels := map[string]int{}
	definedDatas := map[string]int{}
	usedLabels := map[string]bool{}
	usedDatas := map[string]bool{}
	var dupErrors []string

	recordLabel := func(name string, lineNo int) {
		if prev, ok := definedLabels[name]; ok {
			dupErrors = append(dupErrors, fmt.Sprintf("Label '%s' defined twice, on line %d and line %d", name, prev, lineNo))
			return
		}
		if prev, ok := definedDatas[name]; ok {
			dupErrors = append(dupErrors, fmt.Sprintf("Label '%s' clashes with data defined on line %d, on line %d", name, prev, lineNo))
			return
		}
		definedLabels[name] = lineNo
	}
	recordData := func(name string, lineNo int) {
		if prev, ok := definedDatas[name]; ok {
			dupErrors = append(dupErrors, fmt.Sprintf("Data '%s' defined twice, on line %d and line %d", name, prev, lineNo))
			return
		}
		if prev, ok := definedLabels[name]; ok {
			dupErrors = append(dupErrors, fmt.Sprintf("Data '%s' clashes with label defined on line %d, on line %d", name, prev, lineNo))
			return
		}
		definedDatas[name] = lineNo
	}

	for _, line := range lines {
		switch line.Kind {
		case LineLabel:
			recordLabel(line.Name, line.LineNo)
		case LineData:
			recordData(line.Name, line.LineNo)
		case LineCode:
			if line.HasLabel {
				recordLabel(line.Label, line.LineNo)
			}
			markTokenUses(line.Token, usedLabels, usedDatas)
		}
	}

	if len(dupErrors) > 0 {
		sort.Strings(dupErrors)
		return "", fmt.Errorf("Errors:\n\n%s", strings.Join(dupErrors, "\n"))
	}

	var warnings []string
	for name, lineNo := range definedLabels {
		if !usedLabels[name] {
			warnings = append(warnings, fmt.Sprintf("Label '%s' defined on line %d is never used", name, lineNo))
		}
	}
	for name, lineNo := range definedDatas {
		if !usedDatas[name] {
			warnings = append(warnings, fmt.Sprintf("Data '%s' defined on line %d is never used", name, lineNo))
		}
	}
	if len(warnings) == 0 {
		return "", nil
	}
	sort.Strings(warnings)
	return fmt.Sprintf("Warnings:\n\n%s", strings.Join(warnings, "\n")), nil
}
