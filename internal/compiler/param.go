// Package compiler implements the EmmaChip-8 structured source language: an
// aliasable, macro-capable dialect that lowers through tokenising, macro
// expansion, and opcode construction into assembler mnemonic text.
package compiler

import "fmt"

// ParamKind distinguishes the ways an operand can appear in compiler source.
type ParamKind int

const (
	ParamReg ParamKind = iota
	ParamPlaceholder
	ParamAddr
	ParamNum
	ParamSound
	ParamDelay
	ParamMemReg
	ParamLabel
	ParamData
	ParamUnknown
)

// Param is one resolved operand. Which fields are meaningful depends on
// Kind: Reg/Placeholder/Num use N as a byte, Addr uses N as a 16-bit value,
// Label/Data/Unknown use Text.
type Param struct {
	Kind ParamKind
	N    uint16
	Text string
}

func Reg(n byte) Param         { return Param{Kind: ParamReg, N: uint16(n)} }
func Placeholder(n byte) Param { return Param{Kind: ParamPlaceholder, N: uint16(n)} }
func Addr(n uint16) Param      { return Param{Kind: ParamAddr, N: n} }
func Num(n byte) Param         { return Param{Kind: ParamNum, N: uint16(n)} }
func Label(name string) Param  { return Param{Kind: ParamLabel, Text: name} }
func Data(name string) Param   { return Param{Kind: ParamData, Text: name} }
func Unknown(name string) Param { return Param{Kind: ParamUnknown, Text: name} }

var (
	Sound  = Param{Kind: ParamSound}
	Delay  = Param{Kind: ParamDelay}
	MemReg = Param{Kind: ParamMemReg}
)

func (p Param) String() string {
	switch p.Kind {
	case ParamReg:
		return fmt.Sprintf("Reg(%d)", p.N)
	case ParamPlaceholder:
		return fmt.Sprintf("Placeholder(%d)", p.N)
	case ParamAddr:
		return fmt.Sprintf("Addr(%d)", p.N)
	case ParamNum:
		return fmt.Sprintf("Num(%d)", p.N)
	case ParamSound:
		return "Sound"
	case ParamDelay:
		return "Delay"
	case ParamMemReg:
		return "MemReg"
	case ParamLabel:
		return fmt.Sprintf("Label(%s)", p.Text)
	case ParamData:
		return fmt.Sprintf("Data(%s)", p.Text)
	case ParamUnknown:
		return fmt.Sprintf("Unknown(%s)", p.Text)
	default:
		return "Param(?)"
	}
}

// ConditionKind distinguishes the two forms an `if` guard can take.
type ConditionKind int

const (
	CondEq ConditionKind = iota
	CondPressed
)

// Condition is an `if` guard: either a register comparison (Eq) or a
// key-pressed test (Pressed, which only uses P1).
type Condition struct {
	Kind    ConditionKind
	Negated bool
	P1, P2  Param
}

// MacroParamKind enumerates the shapes a macro definition's formal
// parameters can demand.
type MacroParamKind int

const (
	MacroParamReg MacroParamKind = iota
	MacroParamNibble
	MacroParamNum
	MacroParamLabel
	MacroParamData
	MacroParamAddr
	MacroParamLabelAddr
	MacroParamDataAddr
)

// CheckCompat reports whether an actual call argument matches this formal
// parameter's shape.
func (mp MacroParamKind) CheckCompat(line, idx int, param Param) error {
	ok := false
	switch mp {
	case MacroParamReg:
		ok = param.Kind == ParamReg
	case MacroParamNibble:
		ok = param.Kind == ParamNum && param.N < 16
		if param.Kind == ParamNum && !ok {
			return fmt.Errorf("Macro call on line %d requires nibble (number too large) for param %d", line, idx)
		}
	case MacroParamNum:
		ok = param.Kind == ParamNum
	case MacroParamLabel:
		ok = param.Kind == ParamLabel
	case MacroParamData:
		ok = param.Kind == ParamData
	case MacroParamAddr:
		ok = param.Kind == ParamAddr
	case MacroParamLabelAddr:
		ok = param.Kind == ParamLabel || param.Kind == ParamAddr
	case MacroParamDataAddr:
		ok = param.Kind == ParamData || param.Kind == ParamAddr
	}
	if ok {
		return nil
	}
	return fmt.Errorf("Macro call on line %d requires %s for param %d", line, mp.describe(), idx)
}

func (mp MacroParamKind) describe() string {
	switch mp {
	case MacroParamReg:
		return "register"
	case MacroParamNibble:
		return "nibble"
	case MacroParamNum:
		return "number"
	case MacroParamLabel:
		return "label"
	case MacroParamData:
		return "data"
	case MacroParamAddr:
		return "addr"
	case MacroParamLabelAddr:
		return "label or addr"
	case MacroParamDataAddr:
		return "data or addr"
	default:
		return "?"
	}
}
