// Package assembler translates EmmaChip-8 mnemonic source lines into a
// stream of big-endian opcode bytes, alongside a describe report and
// assembly warnings.
package assembler

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/emmachip8/ec8/internal/opcode"
)

// Program is an ordered sequence of assembled lines.
type Program struct {
	Lines []Line
}

// Describe renders one human-readable line per source line.
func (p *Program) Describe() string {
	var b strings.Builder
	for _, line := range p.Lines {
		b.WriteString(line.String())
		b.WriteByte('\n')
	}
	return b.String()
}

// IntoBytes concatenates the bytes of every Code and Data line, in order.
// Comment lines contribute nothing.
func (p *Program) IntoBytes() []byte {
	var out []byte
	for _, line := range p.Lines {
		if line.Kind == KindCode || line.Kind == KindData {
			out = append(out, line.Bytes...)
		}
	}
	return out
}

// Warnings reports SysCall usage and, unless suppressEC8 is set, EC8-only
// opcode usage, each listing the source lines responsible.
func (p *Program) Warnings(suppressEC8 bool) []string {
	var sysCallLines []int
	ec8Lines := map[opcode.Code][]int{}

	for _, line := range p.Lines {
		if line.Kind != KindCode {
			continue
		}
		if line.Opcode == opcode.SysCall {
			sysCallLines = append(sysCallLines, line.Idx)
		}
		if line.Opcode.IsEC8Only() {
			ec8Lines[line.Opcode] = append(ec8Lines[line.Opcode], line.Idx)
		}
	}

	var warnings []string
	if len(sysCallLines) > 0 {
		warnings = append(warnings, fmt.Sprintf("SysCall opcode used on line(s): %s", joinIdx(sysCallLines)))
	}
	if !suppressEC8 && len(ec8Lines) > 0 {
		ops := make([]opcode.Code, 0, len(ec8Lines))
		for op := range ec8Lines {
			ops = append(ops, op)
		}
		sort.Slice(ops, func(a, b int) bool { return ops[a] < ops[b] })
		for _, op := range ops {
			warnings = append(warnings, fmt.Sprintf("EC8-only opcode %s (%s) used on line(s): %s", op, op.Mnemonic(), joinIdx(ec8Lines[op])))
		}
	}
	return warnings
}

func joinIdx(idxs []int) string {
	parts := make([]string, len(idxs))
	for i, v := range idxs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
