package compiler

import "fmt"

// Macro is a user-defined or builtin instruction template: a fixed formal
// parameter list plus a body of tokens with Placeholder operands.
type Macro struct {
	Name   string
	Params []MacroParamKind
	Body   []Token
}

// BuiltinMacros returns the three instruction templates available in every
// program without a user `macro` definition.
func BuiltinMacros() map[string]Macro {
	return map[string]Macro{
		"draw_ascii": {
			Name:   "draw_ascii",
			Params: []MacroParamKind{MacroParamReg, MacroParamReg, MacroParamReg},
			Body: []Token{
				{Kind: TokAscii, P1: Placeholder(3)},
				{Kind: TokDraw, P1: Placeholder(1), P2: Placeholder(2), P3: Num(5)},
			},
		},
		"draw_digit": {
			Name:   "draw_digit",
			Params: []MacroParamKind{MacroParamReg, MacroParamReg, MacroParamReg},
			Body: []Token{
				{Kind: TokDigit, P1: Placeholder(3)},
				{Kind: TokDraw, P1: Placeholder(1), P2: Placeholder(2), P3: Num(5)},
			},
		},
		"read_data": {
			Name:   "read_data",
			Params: []MacroParamKind{MacroParamDataAddr, MacroParamReg},
			Body: []Token{
				{Kind: TokSet, P1: MemReg, P2: Placeholder(1)},
				{Kind: TokAdd, P1: MemReg, P2: Placeholder(2)},
				{Kind: TokLoadReg, P1: Reg(0)},
			},
		},
	}
}

// Expand validates a call's actual arguments against this macro's formal
// parameters, then substitutes them into a fresh copy of the body.
func (m Macro) Expand(callLine int, params []Param) ([]Token, error) {
	if len(params) != len(m.Params) {
		return nil, fmt.Errorf("Macro call on line %d to %s expects %d params, got %d", callLine, m.Name, len(m.Params), len(params))
	}
	for i, formal := range m.Params {
		if err := formal.CheckCompat(callLine, i+1, params[i]); err != nil {
			return nil, err
		}
	}
	out := make([]Token, len(m.Body))
	for i, tok := range m.Body {
		out[i] = tok.ReplacePlaceholders(params)
	}
	return out, nil
}

// checkLineAllowed reports an error for any line shape forbidden inside a
// macro body: definitions, labels, and nested control flow.
func checkLineAllowed(line Line) error {
	switch line.Kind {
	case LineAlias:
		return fmt.Errorf("alias not allowed inside macro definition, line %d", line.LineNo)
	case LineData:
		return fmt.Errorf("data not allowed inside macro definition, line %d", line.LineNo)
	case LineLabel:
		return fmt.Errorf("label not allowed inside macro definition, line %d", line.LineNo)
	case LineCode:
		if line.HasLabel {
			return fmt.Errorf("label not allowed inside macro definition, line %d", line.LineNo)
		}
		switch line.Token.Kind {
		case TokLoop, TokAgain, TokBreak, TokMacroStart:
			return fmt.Errorf("%s not allowed inside macro definition, line %d", line.Token.Kind, line.LineNo)
		}
	}
	return nil
}

// ExtractMacros pulls every `macro ... end` block out of lines, returning
// the remaining lines (with macro bodies removed) and the macros defined.
func ExtractMacros(lines []Line) ([]Line, map[string]Macro, error) {
	output := make([]Line, 0, len(lines))
	macros := make(map[string]Macro)

	var currentName string
	var currentParams []MacroParamKind
	var currentBody []Token
	inMacro := false
	var startLine int

	for _, line := range lines {
		if line.Kind == LineCode && !line.HasLabel && line.Token.Kind == TokMacroStart {
			if inMacro {
				return nil, nil, fmt.Errorf("nested macro definition not allowed, line %d", line.LineNo)
			}
			inMacro = true
			startLine = line.LineNo
			currentName = line.Token.Name
			currentParams = line.Token.DefParams
			currentBody = nil
			continue
		}
		if line.Kind == LineCode && !line.HasLabel && line.Token.Kind == TokMacroEnd {
			if !inMacro {
				return nil, nil, fmt.Errorf("end without matching macro definition, line %d", line.LineNo)
			}
			macros[currentName] = Macro{Name: currentName, Params: currentParams, Body: currentBody}
			inMacro = false
			continue
		}
		if inMacro {
			if err := checkLineAllowed(line); err != nil {
				return nil, nil, err
			}
			currentBody = append(currentBody, line.Token)
			continue
		}
		output = append(output, line)
	}

	if inMacro {
		return nil, nil, fmt.Errorf("macro definition starting on line %d never closed with end", startLine)
	}

	return output, macros, nil
}

// ExpandMacros replaces every MacroCall line with its macro's expanded
// token sequence.
func ExpandMacros(lines []Line, macros map[string]Macro) ([]Line, error) {
	output := make([]Line, 0, len(lines))
	for _, line := range lines {
		if line.Kind != LineCode || line.Token.Kind != TokMacroCall {
			output = append(output, line)
			continue
		}
		macro, ok := macros[line.Token.Name]
		if !ok {
			return nil, fmt.Errorf("Unknown macro %s called on line %d", line.Token.Name, line.LineNo)
		}
		tokens, err := macro.Expand(line.LineNo, line.Token.CallParams)
		if err != nil {
			return nil, err
		}
		for _, tok := range tokens {
			output = append(output, newCodeLine(line.LineNo, "", false, tok))
		}
	}
	return output, nil
}
