package compiler

import (
	"fmt"

	"github.com/emmachip8/ec8/internal/opcode"
)

// AsmLine is one lowered instruction: an opcode plus its operands, carrying
// forward any labels attached to it from the source.
type AsmLine struct {
	Line   int
	Labels []string
	Opcode opcode.Code
	Params []Param
}

// Program is the compiler's own intermediate form: the lowered instruction
// stream plus its data segment, before address resolution.
type Program struct {
	Datas    []DataSegment
	AsmLines []AsmLine
}

func (p *Program) CountDataBytes() int { return totalDataBytes(p.Datas) }
func (p *Program) CountAsmBytes() int  { return len(p.AsmLines) * 2 }

func genLblForLoop(count int) string  { return fmt.Sprintf("__loop_%d_start", count) }
func genLblForAgain(count int) string { return fmt.Sprintf("__loop_%d_end", count) }

// BuildOpcodes lowers a macro-expanded line stream into a Program, resolving
// loop/again/break into jumps against synthetic labels and if-guards into
// skip opcodes.
func BuildOpcodes(lines []Line) (*Program, error) {
	datas, err := ExtractData(lines)
	if err != nil {
		return nil, err
	}

	var asmLines []AsmLine
	var pendingLabels []string
	loopCount := 0

	consumeLabels := func() []string {
		out := pendingLabels
		pendingLabels = nil
		return out
	}

	for _, line := range lines {
		switch line.Kind {
		case LineData:
			continue
		case LineLabel:
			pendingLabels = append(pendingLabels, line.Name)
			continue
		case LineCode:
			if line.HasLabel {
				pendingLabels = append(pendingLabels, line.Label)
			}
		default:
			continue
		}

		switch line.Token.Kind {
		case TokLoop:
			loopCount++
			pendingLabels = append(pendingLabels, genLblForLoop(loopCount))
			continue
		case TokAgain:
			if loopCount < 1 {
				return nil, fmt.Errorf("again used outside of a loop, line %d", line.LineNo)
			}
			asmLines = append(asmLines, AsmLine{
				Line: line.LineNo, Labels: consumeLabels(),
				Opcode: opcode.Jump, Params: []Param{Label(genLblForLoop(loopCount))},
			})
			pendingLabels = append(pendingLabels, genLblForAgain(loopCount))
			loopCount--
			continue
		case TokBreak:
			if loopCount < 1 {
				return nil, fmt.Errorf("break used outside of a loop, line %d", line.LineNo)
			}
			asmLines = append(asmLines, AsmLine{
				Line: line.LineNo, Labels: consumeLabels(),
				Opcode: opcode.Jump, Params: []Param{Label(genLblForAgain(loopCount))},
			})
			continue
		case TokIf:
			skip, err := ifConditionOpcode(line.LineNo, line.Token.Cond, consumeLabels())
			if err != nil {
				return nil, err
			}
			asmLines = append(asmLines, skip)

			inner := line.Token.Inner
			if inner == nil {
				return nil, fmt.Errorf("if with no inner instruction, line %d", line.LineNo)
			}
			if inner.Kind == TokBreak {
				if loopCount < 1 {
					return nil, fmt.Errorf("break used outside of a loop, line %d", line.LineNo)
				}
				asmLines = append(asmLines, AsmLine{
					Line: line.LineNo, Opcode: opcode.Jump,
					Params: []Param{Label(genLblForAgain(loopCount))},
				})
				continue
			}
			asm, err := getOpcode(line.LineNo, nil, *inner)
			if err != nil {
				return nil, err
			}
			asmLines = append(asmLines, asm)
			continue
		case TokMacroCall, TokMacroStart, TokMacroEnd:
			panic(fmt.Sprintf("unexpanded macro token reached build_opcodes on line %d, please raise an issue", line.LineNo))
		default:
			asm, err := getOpcode(line.LineNo, consumeLabels(), line.Token)
			if err != nil {
				return nil, err
			}
			asmLines = append(asmLines, asm)
		}
	}

	if loopCount > 0 {
		return nil, fmt.Errorf("%d loops not finished at end of program", loopCount)
	}
	if len(pendingLabels) > 0 {
		if len(pendingLabels[0]) >= 7 && pendingLabels[0][:7] == "__loop_" {
			return nil, fmt.Errorf("again is not allowed as the last instruction")
		}
		return nil, fmt.Errorf("%d unused labels at end of program", len(pendingLabels))
	}

	return &Program{Datas: datas, AsmLines: asmLines}, nil
}

// ifConditionOpcode lowers an `if` guard's Condition to its skip opcode. A
// plain (non-negated) condition skips the next instruction when it holds;
// a negated one (`!eq`, `!pressed`) skips when it doesn't.
func ifConditionOpcode(lineNo int, cond Condition, labels []string) (AsmLine, error) {
	var op opcode.Code
	var params []Param

	switch cond.Kind {
	case CondEq:
		switch {
		case cond.P1.Kind == ParamReg && cond.P2.Kind == ParamReg:
			if cond.Negated {
				op = opcode.SkipIfNotEqualReg
			} else {
				op = opcode.SkipIfEqualReg
			}
			params = []Param{cond.P1, cond.P2}
		case cond.P1.Kind == ParamReg && cond.P2.Kind == ParamNum:
			if cond.Negated {
				op = opcode.SkipIfNotEqualNum
			} else {
				op = opcode.SkipIfEqualNum
			}
			params = []Param{cond.P1, cond.P2}
		default:
			return AsmLine{}, fmt.Errorf("if eq() only supports R,R or R,N, line %d", lineNo)
		}
	case CondPressed:
		if cond.Negated {
			op = opcode.SkipIfKeyNotPressed
		} else {
			op = opcode.SkipIfKeyPressed
		}
		params = []Param{cond.P1}
	default:
		return AsmLine{}, fmt.Errorf("unknown condition kind on line %d", lineNo)
	}

	return AsmLine{Line: lineNo, Labels: labels, Opcode: op, Params: params}, nil
}

// getOpcode dispatches one simple (non control-flow) token to its opcode.
func getOpcode(lineNo int, labels []string, t Token) (AsmLine, error) {
	mk := func(op opcode.Code, params ...Param) (AsmLine, error) {
		return AsmLine{Line: lineNo, Labels: labels, Opcode: op, Params: params}, nil
	}

	switch t.Kind {
	case TokReturn:
		return mk(opcode.Return)
	case TokClear:
		return mk(opcode.ClearDisplay)
	case TokAdd:
		switch {
		case t.P1.Kind == ParamReg && t.P2.Kind == ParamReg:
			return mk(opcode.AddReg, t.P1, t.P2)
		case t.P1.Kind == ParamReg && t.P2.Kind == ParamNum:
			return mk(opcode.AddNumToReg, t.P1, t.P2)
		case t.P1.Kind == ParamMemReg && t.P2.Kind == ParamReg:
			return mk(opcode.AddMemReg, t.P2)
		default:
			return AsmLine{}, fmt.Errorf("invalid operands for add, line %d", lineNo)
		}
	case TokSub:
		return mk(opcode.SubRightReg, t.P1, t.P2)
	case TokSubr:
		return mk(opcode.SubLeftReg, t.P1, t.P2)
	case TokOr:
		return mk(opcode.BitwiseOr, t.P1, t.P2)
	case TokXor:
		return mk(opcode.BitwiseXor, t.P1, t.P2)
	case TokAnd:
		return mk(opcode.BitwiseAnd, t.P1, t.P2)
	case TokSet:
		switch {
		case t.P1.Kind == ParamReg && t.P2.Kind == ParamReg:
			return mk(opcode.SetRegFromReg, t.P1, t.P2)
		case t.P1.Kind == ParamReg && t.P2.Kind == ParamNum:
			return mk(opcode.SetRegFromNum, t.P1, t.P2)
		case t.P1.Kind == ParamMemReg:
			return mk(opcode.SetMemReg, t.P2)
		default:
			return AsmLine{}, fmt.Errorf("invalid operands for set, line %d", lineNo)
		}
	case TokShr:
		return mk(opcode.ShiftRight, t.P1)
	case TokShl:
		return mk(opcode.ShiftLeft, t.P1)
	case TokWaitForKey:
		return mk(opcode.WaitForKey, t.P1)
	case TokRand:
		return mk(opcode.SetRegRand, t.P1, t.P2)
	case TokDraw:
		return mk(opcode.DrawSprite, t.P1, t.P2, t.P3)
	case TokStoreReg:
		return mk(opcode.StoreRegs, t.P1)
	case TokLoadReg:
		return mk(opcode.LoadRegs, t.P1)
	case TokBcd:
		return mk(opcode.StoreBcd, t.P1)
	case TokGoto:
		return mk(opcode.Jump, t.P1)
	case TokGotoOffset:
		return mk(opcode.JumpOffset, t.P1, t.P2)
	case TokDigit:
		return mk(opcode.SetMemRegToDigitSprite, t.P1)
	case TokAscii:
		return mk(opcode.SetMemRegToAsciiSprite, t.P1)
	case TokCall:
		return mk(opcode.Call, t.P1)
	default:
		panic(fmt.Sprintf("Unhandled instruction on line %d, please raise an issue", lineNo))
	}
}
