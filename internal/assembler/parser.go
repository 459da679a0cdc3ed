package assembler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/emmachip8/ec8/internal/opcode"
)

// cleanLine is one source line split at its first ';' into code and
// comment, with blank code+comment lines dropped.
type cleanLine struct {
	idx     int
	code    string
	comment string
}

func cleanUp(source []string) []cleanLine {
	var result []cleanLine
	for i, line := range source {
		code, comment := line, ""
		if at := strings.IndexByte(line, ';'); at >= 0 {
			code, comment = line[:at], line[at+1:]
		}
		if code == "" && comment == "" {
			continue
		}
		result = append(result, cleanLine{idx: i, code: strings.TrimSpace(code), comment: comment})
	}
	return result
}

// Parse turns mnemonic source lines into a Program. Every line that fails
// to parse is reported, one per line, in a single returned error.
func Parse(source []string) (*Program, error) {
	cleaned := cleanUp(source)

	lines := make([]Line, 0, len(cleaned))
	var errs []string
	for _, cl := range cleaned {
		if cl.code == "" {
			lines = append(lines, newComment(cl.idx, cl.comment))
			continue
		}
		line, err := parseLine(cl.idx, cl.code)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		lines = append(lines, line.appendComment(cl.comment))
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("%s", strings.Join(errs, "\n"))
	}

	return &Program{Lines: lines}, nil
}

func parseLine(i int, line string) (Line, error) {
	line = strings.TrimSpace(line)
	runes := []rune(line)
	if len(runes) < 3 {
		return Line{}, fmt.Errorf("Line %d is invalid", i)
	}
	op := string(runes[:3])
	params := string(runes[3:])

	switch strings.ToLower(strings.TrimSpace(op)) {
	case "clr":
		return newCode(i, opcode.ClearDisplay, [2]byte{0x00, 0xE0}), nil
	case "ret":
		return newCode(i, opcode.Return, [2]byte{0x00, 0xEE}), nil
	case "jmp":
		return lineNNN(i, opcode.Jump, 0x10, params)
	case "cal":
		return lineNNN(i, opcode.Call, 0x20, params)
	case "ske":
		return lineXnnXy(i, opcode.SkipIfEqualNum, 0x30, opcode.SkipIfEqualReg, 0x50, 0x00, params)
	case "skn":
		return lineXnnXy(i, opcode.SkipIfNotEqualNum, 0x40, opcode.SkipIfNotEqualReg, 0x90, 0x00, params)
	case "set":
		return lineXnnXy(i, opcode.SetRegFromNum, 0x60, opcode.SetRegFromReg, 0x80, 0x00, params)
	case "add":
		return lineXnnXy(i, opcode.AddNumToReg, 0x70, opcode.AddReg, 0x80, 0x04, params)
	case "or":
		return lineXY(i, opcode.BitwiseOr, 0x80, 0x01, params)
	case "and":
		return lineXY(i, opcode.BitwiseAnd, 0x80, 0x02, params)
	case "xor":
		return lineXY(i, opcode.BitwiseXor, 0x80, 0x03, params)
	case "sub":
		return lineXY(i, opcode.SubRightReg, 0x80, 0x05, params)
	case "shr":
		return lineXY(i, opcode.ShiftRight, 0x80, 0x06, params)
	case "sbr":
		return lineXY(i, opcode.SubLeftReg, 0x80, 0x07, params)
	case "shl":
		return lineXY(i, opcode.ShiftLeft, 0x80, 0x0E, params)
	case "sti":
		return lineNNN(i, opcode.SetMemReg, 0xA0, params)
	case "jp0":
		return lineNNN(i, opcode.JumpOffset, 0xB0, params)
	case "rnd":
		return lineXNN(i, opcode.SetRegRand, 0xC0, params)
	case "drw":
		return lineXYN(i, opcode.DrawSprite, 0xD0, params)
	case "skp":
		return lineX(i, opcode.SkipIfKeyPressed, 0xE0, 0x9E, params)
	case "skr":
		return lineX(i, opcode.SkipIfKeyNotPressed, 0xE0, 0xA1, params)
	case "rdt":
		return lineX(i, opcode.SetRegFromTimer, 0xF0, 0x07, params)
	case "key":
		return lineX(i, opcode.WaitForKey, 0xF0, 0x0A, params)
	case "sdt":
		return lineX(i, opcode.SetDelayTimer, 0xF0, 0x15, params)
	case "sst":
		return lineX(i, opcode.SetSoundTimer, 0xF0, 0x18, params)
	case "adi":
		return lineX(i, opcode.AddMemReg, 0xF0, 0x1E, params)
	case "chr":
		return lineX(i, opcode.SetMemRegToDigitSprite, 0xF0, 0x29, params)
	case "asc":
		return lineX(i, opcode.SetMemRegToAsciiSprite, 0xF0, 0x30, params)
	case "bcd":
		return lineX(i, opcode.StoreBcd, 0xF0, 0x33, params)
	case "str":
		return lineX(i, opcode.StoreRegs, 0xF0, 0x55, params)
	case "ldr":
		return lineX(i, opcode.LoadRegs, 0xF0, 0x65, params)
	case "dat":
		return lineData(i, params)
	default:
		return Line{}, fmt.Errorf("Line %d) mnemonic %s is unknown", i, op)
	}
}

func lineX(i int, op opcode.Code, first, last byte, params string) (Line, error) {
	vx, err := parseReg(params, 1)
	if err != nil {
		return Line{}, fmt.Errorf("Line %d) %v", i, err)
	}
	return newCode(i, op, [2]byte{first | vx, last}), nil
}

func lineXY(i int, op opcode.Code, first, last byte, params string) (Line, error) {
	parts := strings.SplitN(params, ",", 2)
	if len(parts) != 2 {
		return Line{}, fmt.Errorf("Line %d) Two registers required", i)
	}
	vx, err := parseReg(parts[0], 1)
	if err != nil {
		return Line{}, fmt.Errorf("Line %d) %v", i, err)
	}
	vy, err := parseReg(parts[1], 2)
	if err != nil {
		return Line{}, fmt.Errorf("Line %d) %v", i, err)
	}
	return newCode(i, op, [2]byte{first | vx, last | vy}), nil
}

func lineNNN(i int, op opcode.Code, first byte, addrParam string) (Line, error) {
	addrParam = strings.TrimSpace(addrParam)
	if len([]rune(addrParam)) > 3 {
		return Line{}, fmt.Errorf("Line %d) Address param is too long", i)
	}
	addr, err := strconv.ParseUint(addrParam, 16, 16)
	if err != nil {
		return Line{}, fmt.Errorf("Line %d) Unable to parse address %v", i, err)
	}
	hiNibble := byte(addr>>8) & 0x0F
	lo := byte(addr)
	return newCode(i, op, [2]byte{first | hiNibble, lo}), nil
}

func lineXYN(i int, op opcode.Code, first byte, params string) (Line, error) {
	params = strings.ToLower(params)
	parts := splitTrim(params, ",")
	if len(parts) != 3 {
		return Line{}, fmt.Errorf("Line %d) Three params required", i)
	}
	x, err := parseReg(parts[0], 1)
	if err != nil {
		return Line{}, fmt.Errorf("Line %d) %v", i, err)
	}
	y, err := parseReg(parts[1], 2)
	if err != nil {
		return Line{}, fmt.Errorf("Line %d) %v", i, err)
	}
	if len([]rune(parts[2])) > 1 {
		return Line{}, fmt.Errorf("Line %d) Number param is too long", i)
	}
	num, err := strconv.ParseUint(parts[2], 16, 8)
	if err != nil {
		return Line{}, fmt.Errorf("Line %d) Unable to parse number %v", i, err)
	}
	return newCode(i, op, [2]byte{first | x, y | byte(num)}), nil
}

func lineXNN(i int, op opcode.Code, first byte, params string) (Line, error) {
	params = strings.ToLower(params)
	parts := strings.SplitN(params, ",", 2)
	if len(parts) != 2 {
		return Line{}, fmt.Errorf("Line %d) Two params required", i)
	}
	x, err := parseReg(parts[0], 1)
	if err != nil {
		return Line{}, fmt.Errorf("Line %d) %v", i, err)
	}
	nn := strings.TrimSpace(parts[1])
	if len([]rune(nn)) > 2 {
		return Line{}, fmt.Errorf("Line %d) Number param is too long", i)
	}
	num, err := strconv.ParseUint(nn, 16, 8)
	if err != nil {
		return Line{}, fmt.Errorf("Line %d) Unable to parse number %v", i, err)
	}
	return newCode(i, op, [2]byte{first | x, byte(num)}), nil
}

// lineXnnXy handles the polymorphic ske/skn/set/add mnemonics: the second
// operand is register-register if it names a register, else register-literal.
func lineXnnXy(i int, xnnOp opcode.Code, xnnFirst byte, xyOp opcode.Code, xyFirst, xyLast byte, params string) (Line, error) {
	params = strings.ToLower(params)
	parts := strings.SplitN(params, ",", 2)
	if len(parts) != 2 {
		return Line{}, fmt.Errorf("Line %d) Two params required", i)
	}
	x, err := parseReg(parts[0], 1)
	if err != nil {
		return Line{}, fmt.Errorf("Line %d) %v", i, err)
	}
	nnY := strings.TrimSpace(parts[1])

	if strings.Contains(nnY, "v") {
		y, err := parseReg(nnY, 2)
		if err != nil {
			return Line{}, fmt.Errorf("Line %d) %v", i, err)
		}
		return newCode(i, xyOp, [2]byte{xyFirst | x, xyLast | y}), nil
	}

	if len([]rune(nnY)) > 2 {
		return Line{}, fmt.Errorf("Line %d) Number param is too long", i)
	}
	num, err := strconv.ParseUint(nnY, 16, 8)
	if err != nil {
		return Line{}, fmt.Errorf("Line %d) Unable to parse number %v", i, err)
	}
	return newCode(i, xnnOp, [2]byte{xnnFirst | x, byte(num)}), nil
}

func parseReg(reg string, which int) (byte, error) {
	reg = strings.ToLower(strings.TrimSpace(reg))
	if len([]rune(reg)) != 2 || !strings.HasPrefix(reg, "v") {
		return 0, fmt.Errorf("Reg %d is invalid", which)
	}
	digit, err := strconv.ParseUint(reg[1:2], 16, 8)
	if err != nil {
		return 0, fmt.Errorf("Unable to parse reg %d: %v", which, err)
	}
	switch which {
	case 1:
		return byte(digit), nil
	case 2:
		return byte(digit) << 4, nil
	default:
		panic(fmt.Sprintf("invalid parseReg which %d", which))
	}
}

func splitTrim(s, sep string) []string {
	parts := strings.Split(s, sep)
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
