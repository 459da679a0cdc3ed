package opcode

import (
	"fmt"
	"strings"

	"github.com/emmachip8/ec8/internal/bits"
)

// SimpleDescribe renders a one-line, context-free human description of an
// instruction word, used by the assembler's describe report.
func (c Code) SimpleDescribe(hi, lo byte) string {
	x := fmt.Sprintf("V%01X", bits.LowNibble(hi))
	y := fmt.Sprintf("V%01X", bits.HighNibbleShifted(lo))
	n := fmt.Sprintf("%01X", bits.LowNibble(lo))
	nn := fmt.Sprintf("%02X", lo)
	nnn := fmt.Sprintf("%03X", bits.Mash12(hi, lo))

	switch c {
	case SysCall:
		return fmt.Sprintf("SysCall to %s (Unsupported)", nnn)
	case ClearDisplay:
		return "Clear the display"
	case Return:
		return "Return from subroutine"
	case Jump:
		return fmt.Sprintf("Jump to %s", nnn)
	case Call:
		return fmt.Sprintf("Call subroutine at %s", nnn)
	case SkipIfEqualNum:
		return fmt.Sprintf("Skip if %s == %s", x, nn)
	case SkipIfNotEqualNum:
		return fmt.Sprintf("Skip if %s != %s", x, nn)
	case SkipIfEqualReg:
		return fmt.Sprintf("Skip if %s == %s", x, y)
	case SetRegFromNum:
		return fmt.Sprintf("Set %s to %s", x, nn)
	case AddNumToReg:
		return fmt.Sprintf("Set %s to %s + %s", x, x, nn)
	case SetRegFromReg:
		return fmt.Sprintf("Set %s to %s", x, y)
	case BitwiseOr:
		return fmt.Sprintf("Set %s to %s | %s", x, x, y)
	case BitwiseAnd:
		return fmt.Sprintf("Set %s to %s & %s", x, x, y)
	case BitwiseXor:
		return fmt.Sprintf("Set %s to %s ^ %s", x, x, y)
	case AddReg:
		return fmt.Sprintf("Set %s to %s + %s", x, x, y)
	case SubRightReg:
		return fmt.Sprintf("Set %s to %s - %s", x, x, y)
	case ShiftRight:
		return fmt.Sprintf("Set VF to first bit of %s, set %s to %s >> 1", x, x, x)
	case SubLeftReg:
		return fmt.Sprintf("Set %s to %s - %s", x, y, x)
	case ShiftLeft:
		return fmt.Sprintf("Set VF to last bit of %s, set %s to %s << 1", x, x, x)
	case SkipIfNotEqualReg:
		return fmt.Sprintf("Skip if %s != %s", x, y)
	case SetMemReg:
		return fmt.Sprintf("Set I to %s", nnn)
	case JumpOffset:
		return fmt.Sprintf("Jump to %s + V0", nnn)
	case SetRegRand:
		return fmt.Sprintf("Set %s to rand(0..=255) & %s", x, nn)
	case DrawSprite:
		return fmt.Sprintf("Draw sprite at %s,%s with %s rows from I", x, y, n)
	case SkipIfKeyPressed:
		return fmt.Sprintf("Skipping if key in %s is pressed", x)
	case SkipIfKeyNotPressed:
		return fmt.Sprintf("Skipping if key in %s is not pressed", x)
	case SetRegFromTimer:
		return fmt.Sprintf("Set %s to delay timer", x)
	case WaitForKey:
		return fmt.Sprintf("Wait for key press, and store it in %s", x)
	case SetDelayTimer:
		return fmt.Sprintf("Set delay timer to %s", x)
	case SetSoundTimer:
		return fmt.Sprintf("Set sound timer to %s", x)
	case AddMemReg:
		return fmt.Sprintf("Set I to I + %s", x)
	case SetMemRegToDigitSprite:
		return fmt.Sprintf("Set I to addr of digit in %s", x)
	case SetMemRegToAsciiSprite:
		return fmt.Sprintf("Set I to addr of ASCII in %s", x)
	case StoreBcd:
		return fmt.Sprintf("Store %s as BCD starting at I", x)
	case StoreRegs:
		return fmt.Sprintf("Store regs from V0 to %s in memory starting at I", x)
	case LoadRegs:
		return fmt.Sprintf("Load regs from V0 to %s from memory starting at I", x)
	default:
		return fmt.Sprintf("unknown opcode %s", c)
	}
}

// Describe renders a contextualized description of an executed instruction,
// showing register values from before and after execution. pc is the
// address the instruction executed at; registers is the 16-register file.
func (c Code) Describe(hi, lo byte, preRegisters, postRegisters [16]byte, preMemReg, postMemReg, pc uint16) string {
	x := fmt.Sprintf("V%01X", bits.LowNibble(hi))
	y := fmt.Sprintf("V%01X", bits.HighNibbleShifted(lo))
	n := fmt.Sprintf("%01X", bits.LowNibble(lo))
	nn := fmt.Sprintf("%02X", lo)
	addr := fmt.Sprintf("%03X", bits.Mash12(hi, lo))

	xIdx := bits.LowNibble(hi)
	yIdx := bits.HighNibbleShifted(lo)
	preVx := fmt.Sprintf("%s (%02X)", x, preRegisters[xIdx])
	postVx := fmt.Sprintf("%s (%02X)", x, postRegisters[xIdx])
	preVy := fmt.Sprintf("%s (%02X)", y, preRegisters[yIdx])
	preMemRegStr := fmt.Sprintf("I (%02X)", preMemReg)
	postMemRegStr := fmt.Sprintf("I (%02X)", postMemReg)

	var text string
	switch c {
	case SysCall:
		text = fmt.Sprintf("SysCall to %s (Unsupported)", addr)
	case ClearDisplay:
		text = "Clear the display"
	case Return:
		text = fmt.Sprintf("Return from %s", addr)
	case Jump:
		text = fmt.Sprintf("Jump to %s", addr)
	case Call:
		text = fmt.Sprintf("Call subroutine at %s", addr)
	case SkipIfEqualNum:
		text = fmt.Sprintf("Skipping if %s == %s", preVx, nn)
	case SkipIfNotEqualNum:
		text = fmt.Sprintf("Skipping if %s != %s", preVx, nn)
	case SkipIfEqualReg:
		text = fmt.Sprintf("Skipping if %s == %s", preVx, preVy)
	case SetRegFromNum:
		text = fmt.Sprintf("Set %s to %s", x, nn)
	case AddNumToReg:
		text = fmt.Sprintf("Set %s to %s + %s", postVx, preVx, nn)
	case SetRegFromReg:
		text = fmt.Sprintf("Set %s from %s", x, preVy)
	case BitwiseOr:
		text = fmt.Sprintf("Set %s to %s | %s", postVx, preVx, preVy)
	case BitwiseAnd:
		text = fmt.Sprintf("Set %s to %s & %s", postVx, preVx, preVy)
	case BitwiseXor:
		text = fmt.Sprintf("Set %s to %s ^ %s", postVx, preVx, preVy)
	case AddReg:
		text = fmt.Sprintf("Set %s to %s + %s", postVx, preVx, preVy)
	case SubRightReg:
		text = fmt.Sprintf("Set %s to %s - %s", postVx, preVx, preVy)
	case ShiftRight:
		text = fmt.Sprintf("Set %s to %s >> 1, set VF (%02X) to first bit of %s", postVx, preVx, postRegisters[15], preVx)
	case SubLeftReg:
		text = fmt.Sprintf("Set %s to %s - %s", postVx, preVy, preVx)
	case ShiftLeft:
		text = fmt.Sprintf("Set %s to %s << 1, set VF (%02X) to last bit of %s", postVx, preVx, postRegisters[15], preVx)
	case SkipIfNotEqualReg:
		text = fmt.Sprintf("Skipping if %s != %s", preVx, preVy)
	case SetMemReg:
		text = fmt.Sprintf("Set I to %s", addr)
	case JumpOffset:
		text = fmt.Sprintf("Jump to V0 (%02X) + %s", preRegisters[0], addr)
	case SetRegRand:
		text = fmt.Sprintf("Set %s to rand(0..=255) & %s", postVx, nn)
	case DrawSprite:
		text = fmt.Sprintf("Draw sprite at %s,%s with %s rows from %s", preVx, preVy, n, preMemRegStr)
	case SkipIfKeyPressed:
		text = fmt.Sprintf("Skipping if key in %s is pressed", preVx)
	case SkipIfKeyNotPressed:
		text = fmt.Sprintf("Skipping if key in %s is not pressed", preVx)
	case SetRegFromTimer:
		text = fmt.Sprintf("Set %s to delay timer", x)
	case WaitForKey:
		text = fmt.Sprintf("Wait for key press, and store it in %s", x)
	case SetDelayTimer:
		text = fmt.Sprintf("Set delay timer to %s", preVx)
	case SetSoundTimer:
		text = fmt.Sprintf("Set sound timer to %s", preVx)
	case AddMemReg:
		text = fmt.Sprintf("Set %s to %s + %s", postMemRegStr, preMemRegStr, preVx)
	case SetMemRegToDigitSprite:
		text = fmt.Sprintf("Set %s to addr of digit %s", postMemRegStr, preVx)
	case SetMemRegToAsciiSprite:
		text = fmt.Sprintf("Set %s to addr of ASCII %s", postMemRegStr, preVx)
	case StoreBcd:
		text = fmt.Sprintf("Store %s as BCD starting at %s", preVx, preMemRegStr)
	case StoreRegs:
		text = fmt.Sprintf("Store registers (%s) to %s", joinRegs(preRegisters), preMemRegStr)
	case LoadRegs:
		text = fmt.Sprintf("Load registers (%s) from %s", joinRegs(preRegisters), preMemRegStr)
	default:
		text = fmt.Sprintf("unknown opcode %s", c)
	}

	return fmt.Sprintf("[%04X] %02X%02X %s", pc, hi, lo, text)
}

func joinRegs(registers [16]byte) string {
	parts := make([]string, len(registers))
	for i, v := range registers {
		parts[i] = fmt.Sprintf("%02X", v)
	}
	return strings.Join(parts, ", ")
}
