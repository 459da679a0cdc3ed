package compiler

import (
	"fmt"
	"strings"
)

// ToAsm renders a resolved operand the way the assembler's mnemonic text
// expects it to look.
func (p Param) ToAsm() string {
	switch p.Kind {
	case ParamReg:
		return fmt.Sprintf("v%X", p.N)
	case ParamAddr:
		return fmt.Sprintf("%03X", p.N)
	case ParamNum:
		return fmt.Sprintf("%02X", p.N)
	case ParamMemReg:
		return "I"
	case ParamData:
		return p.Text
	default:
		panic(fmt.Sprintf("param %s cannot be rendered to assembler text, please raise an issue", p))
	}
}

// ToAsm renders one lowered instruction as an assembler mnemonic line.
func (a AsmLine) ToAsm() string {
	mnem := a.Opcode.Mnemonic()
	switch len(a.Params) {
	case 0:
		return mnem
	case 1:
		return fmt.Sprintf("%s %s", mnem, a.Params[0].ToAsm())
	case 2:
		return fmt.Sprintf("%s %s, %s", mnem, a.Params[0].ToAsm(), a.Params[1].ToAsm())
	case 3:
		return fmt.Sprintf("%s %s, %s, %s", mnem, a.Params[0].ToAsm(), a.Params[1].ToAsm(), a.Params[2].ToAsm())
	default:
		panic(fmt.Sprintf("asm line with %d params cannot be rendered, please raise an issue", len(a.Params)))
	}
}

// ToAsm renders a data declaration as an assembler `dat` line.
func (d DataSegment) ToAsm() string {
	var b strings.Builder
	b.WriteString("dat [")
	for _, by := range d.Bytes {
		fmt.Fprintf(&b, "%02X", by)
	}
	b.WriteString("]")
	return b.String()
}

// ToAsm renders the full program: one line per instruction, followed by one
// line per data declaration, ready to feed into the assembler.
func (p *Program) ToAsm() []string {
	out := make([]string, 0, len(p.AsmLines)+len(p.Datas))
	for _, line := range p.AsmLines {
		out = append(out, line.ToAsm())
	}
	for _, d := range p.Datas {
		out = append(out, d.ToAsm())
	}
	return out
}
