package compiler

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

func (k TokenKind) String() string {
	names := map[TokenKind]string{
		TokLoop: "Loop", TokAgain: "Again", TokBreak: "Break", TokReturn: "Return",
		TokClear: "Clear", TokMacroCall: "MacroCall", TokAdd: "Add", TokSub: "Sub",
		TokSubr: "Subr", TokOr: "Or", TokXor: "Xor", TokAnd: "And", TokSet: "Set",
		TokShr: "Shr", TokShl: "Shl", TokWaitForKey: "WaitForKey", TokRand: "Rand",
		TokDraw: "Draw", TokStoreReg: "StoreReg", TokLoadReg: "LoadReg", TokBcd: "Bcd",
		TokIf: "If", TokGoto: "Goto", TokGotoOffset: "GotoOffset", TokDigit: "Digit",
		TokAscii: "Ascii", TokCall: "Call", TokMacroStart: "MacroStart", TokMacroEnd: "MacroEnd",
	}
	if s, ok := names[k]; ok {
		return s
	}
	return "Token(?)"
}

// splitWords splits a source line the way the compiler's front end does:
// on any run of whitespace or commas.
func splitWords(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return unicode.IsSpace(r) || r == ','
	})
}

// cleanup trims stray leading '(' ',' and trailing ')' ',' off each part,
// dropping any part that becomes empty.
func cleanup(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.TrimLeft(p, "(,")
		p = strings.TrimRight(p, "),")
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

func splitOnce(s, sep string) (string, string, bool) {
	idx := strings.Index(s, sep)
	if idx < 0 {
		return "", "", false
	}
	return s[:idx], s[idx+len(sep):], true
}

// explodeParen splits parts[idx] on its first '(' into two elements
// (keyword, remaining-args), when present.
func explodeParen(parts []string, idx int) []string {
	arg, remaining, ok := splitOnce(parts[idx], "(")
	if !ok {
		return parts
	}
	out := make([]string, 0, len(parts)+1)
	out = append(out, parts[:idx]...)
	out = append(out, arg, remaining)
	out = append(out, parts[idx+1:]...)
	return out
}

// tokenise turns one (already label-agnostic) source line into a Token,
// returning any leading `label:` it carried.
func tokenise(i int, line string, defs []Definition) (label string, hasLabel bool, token Token, err error) {
	raw := splitWords(line)
	if len(raw) == 0 {
		panic(fmt.Sprintf("found empty string %d when trying to tokenise, please raise an issue", i))
	}
	parts := cleanup(raw)

	if strings.HasSuffix(parts[0], ":") {
		hasLabel = true
		label = strings.TrimSuffix(parts[0], ":")
		parts = parts[1:]
	}

	parts[0] = strings.ToLower(parts[0])
	parts = explodeParen(parts, 0)

	if strings.HasSuffix(parts[0], "!") {
		tok, err := tokeniseMacroCall(parts, defs)
		return label, hasLabel, tok, err
	}

	switch parts[0] {
	case "loop", "again", "break", "return", "clear", "end":
		tok, err := tokeniseNoParam(parts)
		return label, hasLabel, tok, err
	case "reg_store", "reg_load", "bcd", "shr", "shl", "digit", "ascii", "wait_for_key", "call":
		tok, err := tokeniseOneParam(parts, defs)
		return label, hasLabel, tok, err
	case "rand":
		tok, err := tokeniseTwoParam(parts, defs)
		return label, hasLabel, tok, err
	case "draw":
		tok, err := tokeniseThreeParam(parts, defs)
		return label, hasLabel, tok, err
	case "goto":
		tok, err := tokeniseOneTwoParam(parts, defs)
		return label, hasLabel, tok, err
	case "macro":
		tok, err := tokeniseMacroDef(parts)
		return label, hasLabel, tok, err
	case "if":
		tok, err := tokeniseIf(i, parts, defs)
		return label, hasLabel, tok, err
	}

	tok, ok, mathErr := tokeniseMath(parts, defs)
	if mathErr != nil {
		return "", false, Token{}, mathErr
	}
	if ok {
		return label, hasLabel, tok, nil
	}

	return "", false, Token{}, fmt.Errorf("Unable to parse line %d, unknown instruction '%s'", i, line)
}

func tokeniseIf(i int, parts []string, defs []Definition) (Token, error) {
	parts = explodeParen(parts, 1)
	condKeyword := parts[1]
	rest := cleanup(parts[2:])

	negate := false
	if strings.HasPrefix(condKeyword, "!") {
		negate = true
		condKeyword = strings.TrimPrefix(condKeyword, "!")
	}

	cond, rest, err := parseConditional(condKeyword, negate, rest, defs)
	if err != nil {
		return Token{}, err
	}

	label, hasLabel, token, err := tokenise(i, strings.Join(rest, " "), defs)
	if err != nil {
		return Token{}, fmt.Errorf("Error parsing op after if: %v", err)
	}
	if hasLabel || label != "" {
		return Token{}, fmt.Errorf("label not allowed after if")
	}
	switch token.Kind {
	case TokIf, TokMacroEnd, TokMacroCall, TokMacroStart, TokLoop, TokAgain:
		return Token{}, fmt.Errorf("%s not allowed after if", token.Kind)
	}
	inner := token
	return Token{Kind: TokIf, Cond: cond, Inner: &inner}, nil
}

func parseConditional(condKeyword string, negate bool, params []string, defs []Definition) (Condition, []string, error) {
	switch strings.TrimSpace(condKeyword) {
	case "eq":
		if len(params) < 2 {
			return Condition{}, nil, fmt.Errorf("if eq() requires two params")
		}
		p1, err := parseParam(params[0], defs)
		if err != nil {
			return Condition{}, nil, err
		}
		p2, err := parseParam(params[1], defs)
		if err != nil {
			return Condition{}, nil, err
		}
		return Condition{Kind: CondEq, Negated: negate, P1: p1, P2: p2}, params[2:], nil
	case "pressed":
		if len(params) < 1 {
			return Condition{}, nil, fmt.Errorf("if pressed() requires one param")
		}
		p1, err := parseParam(params[0], defs)
		if err != nil {
			return Condition{}, nil, err
		}
		return Condition{Kind: CondPressed, Negated: negate, P1: p1}, params[1:], nil
	default:
		return Condition{}, nil, fmt.Errorf("Unknown cond for if: %s", condKeyword)
	}
}

func tokeniseNoParam(parts []string) (Token, error) {
	if len(parts) > 1 {
		return Token{}, fmt.Errorf("%s doesn't take params", parts[0])
	}
	switch parts[0] {
	case "loop":
		return Token{Kind: TokLoop}, nil
	case "again":
		return Token{Kind: TokAgain}, nil
	case "break":
		return Token{Kind: TokBreak}, nil
	case "return":
		return Token{Kind: TokReturn}, nil
	case "clear":
		return Token{Kind: TokClear}, nil
	case "end":
		return Token{Kind: TokMacroEnd}, nil
	default:
		panic(fmt.Sprintf("found %s inside match arg, please raise an issue", parts[0]))
	}
}

func tokeniseOneParam(parts []string, defs []Definition) (Token, error) {
	if len(parts) != 2 {
		return Token{}, fmt.Errorf("%s requires one param", parts[0])
	}
	param, err := parseParam(parts[1], defs)
	if err != nil {
		return Token{}, err
	}
	switch parts[0] {
	case "shr":
		return Token{Kind: TokShr, P1: param}, nil
	case "shl":
		return Token{Kind: TokShl, P1: param}, nil
	case "digit":
		return Token{Kind: TokDigit, P1: param}, nil
	case "ascii":
		return Token{Kind: TokAscii, P1: param}, nil
	case "call":
		return Token{Kind: TokCall, P1: param}, nil
	case "bcd":
		return Token{Kind: TokBcd, P1: param}, nil
	case "wait_for_key":
		return Token{Kind: TokWaitForKey, P1: param}, nil
	case "reg_load":
		return Token{Kind: TokLoadReg, P1: param}, nil
	case "reg_store":
		return Token{Kind: TokStoreReg, P1: param}, nil
	default:
		panic(fmt.Sprintf("failed match keyword for one param for %s, please raise an issue", parts[0]))
	}
}

func tokeniseTwoParam(parts []string, defs []Definition) (Token, error) {
	if len(parts) != 3 {
		return Token{}, fmt.Errorf("%s requires two params", parts[0])
	}
	p1, err := parseParam(parts[1], defs)
	if err != nil {
		return Token{}, err
	}
	p2, err := parseParam(parts[2], defs)
	if err != nil {
		return Token{}, err
	}
	switch parts[0] {
	case "rand":
		return Token{Kind: TokRand, P1: p1, P2: p2}, nil
	default:
		panic(fmt.Sprintf("failed match keyword for two param for %s, please raise an issue", parts[0]))
	}
}

func tokeniseThreeParam(parts []string, defs []Definition) (Token, error) {
	if len(parts) != 4 {
		return Token{}, fmt.Errorf("%s requires three params", parts[0])
	}
	p1, err := parseParam(parts[1], defs)
	if err != nil {
		return Token{}, err
	}
	p2, err := parseParam(parts[2], defs)
	if err != nil {
		return Token{}, err
	}
	p3, err := parseParam(parts[3], defs)
	if err != nil {
		return Token{}, err
	}
	switch parts[0] {
	case "draw":
		return Token{Kind: TokDraw, P1: p1, P2: p2, P3: p3}, nil
	default:
		panic(fmt.Sprintf("failed match keyword for three param for %s, please raise an issue", parts[0]))
	}
}

func tokeniseOneTwoParam(parts []string, defs []Definition) (Token, error) {
	switch len(parts) {
	case 2:
		param, err := parseParam(parts[1], defs)
		if err != nil {
			return Token{}, err
		}
		switch parts[0] {
		case "goto":
			return Token{Kind: TokGoto, P1: param}, nil
		default:
			panic(fmt.Sprintf("failed match keyword for one/two param for %s (1), please raise an issue", parts[0]))
		}
	case 3:
		p1, err := parseParam(parts[1], defs)
		if err != nil {
			return Token{}, err
		}
		p2, err := parseParam(parts[2], defs)
		if err != nil {
			return Token{}, err
		}
		switch parts[0] {
		case "goto":
			return Token{Kind: TokGotoOffset, P1: p1, P2: p2}, nil
		default:
			panic(fmt.Sprintf("failed match keyword for one/two param for %s (2), please raise an issue", parts[0]))
		}
	default:
		return Token{}, fmt.Errorf("%s requires one or two params", parts[0])
	}
}

// tokeniseMath parses an infix assignment line (`lhs OP rhs`, with the
// special 5-part `lhs = rhs - lhs` spelling for Subr). ok is false when
// parts don't look like a math line at all, distinct from a parse error.
func tokeniseMath(parts []string, defs []Definition) (token Token, ok bool, err error) {
	if len(parts) < 3 {
		return Token{}, false, nil
	}
	lhs, err := parseParam(parts[0], defs)
	if err != nil {
		return Token{}, false, err
	}
	rhs, err := parseParam(parts[2], defs)
	if err != nil {
		return Token{}, false, err
	}
	switch parts[1] {
	case "=":
		if len(parts) == 5 && parts[3] == "-" {
			if parts[0] != parts[4] {
				return Token{}, false, fmt.Errorf("Target and subtrahend must be the same")
			}
			return Token{Kind: TokSubr, P1: lhs, P2: rhs}, true, nil
		}
		if len(parts) != 3 {
			return Token{}, false, fmt.Errorf("Unable to parse assign")
		}
		return Token{Kind: TokSet, P1: lhs, P2: rhs}, true, nil
	case "+=":
		if len(parts) != 3 {
			return Token{}, false, fmt.Errorf("Unable to parse add")
		}
		return Token{Kind: TokAdd, P1: lhs, P2: rhs}, true, nil
	case "-=":
		if len(parts) != 3 {
			return Token{}, false, fmt.Errorf("Unable to parse add")
		}
		return Token{Kind: TokSub, P1: lhs, P2: rhs}, true, nil
	case "|=":
		if len(parts) != 3 {
			return Token{}, false, fmt.Errorf("Unable to parse add")
		}
		return Token{Kind: TokOr, P1: lhs, P2: rhs}, true, nil
	case "&=":
		if len(parts) != 3 {
			return Token{}, false, fmt.Errorf("Unable to parse add")
		}
		return Token{Kind: TokAnd, P1: lhs, P2: rhs}, true, nil
	case "^=":
		if len(parts) != 3 {
			return Token{}, false, fmt.Errorf("Unable to parse add")
		}
		return Token{Kind: TokXor, P1: lhs, P2: rhs}, true, nil
	default:
		return Token{}, false, nil
	}
}

func tokeniseMacroCall(parts []string, defs []Definition) (Token, error) {
	name := strings.TrimRight(parts[0], "!")
	var params []Param
	for _, part := range parts[1:] {
		p, err := parseParam(part, defs)
		if err != nil {
			return Token{}, err
		}
		params = append(params, p)
	}
	return Token{Kind: TokMacroCall, Name: name, CallParams: params}, nil
}

func tokeniseMacroDef(parts []string) (Token, error) {
	if len(parts) < 2 {
		return Token{}, fmt.Errorf("macro definition requires a name")
	}
	name := strings.Trim(parts[1], ",(")
	var params []MacroParamKind
	for _, part := range parts[2:] {
		mp, err := parseMacroParam(part)
		if err != nil {
			return Token{}, err
		}
		params = append(params, mp)
	}
	return Token{Kind: TokMacroStart, Name: name, DefParams: params}, nil
}

func parseMacroParam(param string) (MacroParamKind, error) {
	p := strings.Trim(strings.TrimSpace(param), "(),")
	switch p {
	case "r":
		return MacroParamReg, nil
	case "l":
		return MacroParamLabel, nil
	case "n":
		return MacroParamNibble, nil
	case "nn":
		return MacroParamNum, nil
	case "a":
		return MacroParamAddr, nil
	case "la":
		return MacroParamLabelAddr, nil
	case "d":
		return MacroParamData, nil
	case "da":
		return MacroParamDataAddr, nil
	default:
		return 0, fmt.Errorf("Unable to parse macro param %s", param)
	}
}

// parseParam resolves one operand: aliases/labels/data first, then the
// literal forms (registers, placeholders, addresses, numbers).
func parseParam(param string, defs []Definition) (Param, error) {
	p := strings.TrimRight(strings.ToLower(strings.TrimSpace(param)), ")")

	for _, def := range defs {
		if p == def.Name {
			switch def.DefType {
			case DefLabel:
				return Label(p), nil
			case DefAlias:
				return parseParam(def.Value, defs)
			case DefData:
				return Data(p), nil
			}
		}
	}

	switch p {
	case "sound":
		return Sound, nil
	case "delay":
		return Delay, nil
	case "i":
		return MemReg, nil
	}

	if strings.HasPrefix(p, "$") {
		n, err := strconv.ParseUint(strings.TrimPrefix(p, "$"), 10, 8)
		if err != nil {
			return Param{}, err
		}
		if n == 0 {
			return Param{}, fmt.Errorf("Placeholders start at 1")
		}
		return Placeholder(byte(n)), nil
	}

	if strings.HasPrefix(p, "v") {
		num := strings.TrimPrefix(p, "v")
		base := 16
		if len([]rune(num)) == 2 {
			base = 10
		}
		n, err := strconv.ParseUint(num, base, 8)
		if err != nil {
			return Param{}, err
		}
		return Reg(byte(n)), nil
	}

	if strings.HasPrefix(p, "'") && strings.HasSuffix(p, "'") && len(p) == 3 {
		return Num(p[1]), nil
	}

	if strings.HasPrefix(p, "-") {
		n, err := strconv.ParseInt(p, 10, 8)
		if err != nil {
			return Param{}, fmt.Errorf("Can't parse param %s: %v", p, err)
		}
		return Num(byte(int8(n))), nil
	}

	if strings.HasPrefix(p, "x") {
		n, err := strconv.ParseUint(strings.TrimPrefix(p, "x"), 16, 8)
		if err != nil {
			return Param{}, fmt.Errorf("Can't parse param %s: %v", p, err)
		}
		return Num(byte(n)), nil
	}

	if strings.HasPrefix(p, "b") {
		n, err := strconv.ParseUint(strings.TrimPrefix(p, "b"), 2, 8)
		if err != nil {
			return Param{}, fmt.Errorf("Can't parse param %s: %v", p, err)
		}
		return Num(byte(n)), nil
	}

	if strings.HasPrefix(p, "@") {
		if strings.HasPrefix(p, "@x") {
			n, err := strconv.ParseUint(strings.TrimPrefix(p, "@x"), 16, 16)
			if err != nil {
				return Param{}, fmt.Errorf("Can't parse param %s: %v", p, err)
			}
			return Addr(uint16(n)), nil
		}
		n, err := strconv.ParseUint(strings.TrimPrefix(p, "@"), 10, 16)
		if err != nil {
			return Param{}, fmt.Errorf("Can't parse param %s: %v", p, err)
		}
		return Addr(uint16(n)), nil
	}

	if n, err := strconv.ParseUint(p, 10, 8); err == nil {
		return Num(byte(n)), nil
	}

	return Unknown(p), nil
}
