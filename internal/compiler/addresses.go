package compiler

import (
	"fmt"

	"github.com/emmachip8/ec8/internal/vm"
)

// SetAddresses resolves every Label/Data/Unknown operand in the program to
// an absolute address, mutating the program's asm lines in place.
func (p *Program) SetAddresses() error {
	labels := map[string]uint16{}
	for idx, line := range p.AsmLines {
		for _, name := range line.Labels {
			labels[name] = uint16(idx * 2)
		}
	}

	dataByName := map[string]DataSegment{}
	for _, d := range p.Datas {
		dataByName[d.Name] = d
	}
	dataStart := uint16(len(p.AsmLines) * 2)

	resolveLabel := func(name string) (Param, bool) {
		if addr, ok := labels[name]; ok {
			return Addr(addr + vm.ProgStartAddr), true
		}
		return Param{}, false
	}
	resolveData := func(name string) (Param, bool) {
		if d, ok := dataByName[name]; ok {
			return Addr(uint16(d.Addr) + dataStart + vm.ProgStartAddr), true
		}
		return Param{}, false
	}

	for i := range p.AsmLines {
		for j, param := range p.AsmLines[i].Params {
			switch param.Kind {
			case ParamLabel:
				resolved, ok := resolveLabel(param.Text)
				if !ok {
					return fmt.Errorf("undefined label %s referenced on line %d, please raise an issue", param.Text, p.AsmLines[i].Line)
				}
				p.AsmLines[i].Params[j] = resolved
			case ParamData:
				resolved, ok := resolveData(param.Text)
				if !ok {
					return fmt.Errorf("undefined data %s referenced on line %d, please raise an issue", param.Text, p.AsmLines[i].Line)
				}
				p.AsmLines[i].Params[j] = resolved
			case ParamUnknown:
				if resolved, ok := resolveLabel(param.Text); ok {
					p.AsmLines[i].Params[j] = resolved
					continue
				}
				if resolved, ok := resolveData(param.Text); ok {
					p.AsmLines[i].Params[j] = resolved
					continue
				}
				return fmt.Errorf("unresolved name %s referenced on line %d, please raise an issue", param.Text, p.AsmLines[i].Line)
			}
		}
	}
	return nil
}
