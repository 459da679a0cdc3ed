package assembler

import (
	"reflect"
	"testing"

	"github.com/emmachip8/ec8/internal/opcode"
)

func TestParse(t *testing.T) {
	source := []string{"CLR", "RET", "JMP 123", "ADD V0, ve"}
	prog, err := Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	wantDescribe := "00E0 Clear the display \n00EE Return from subroutine \n1123 Jump to 123 \n80E4 Set V0 to V0 + VE \n"
	if got := prog.Describe(); got != wantDescribe {
		t.Errorf("Describe = %q, want %q", got, wantDescribe)
	}
	wantBytes := []byte{0x00, 0xE0, 0x00, 0xEE, 0x11, 0x23, 0x80, 0xE4}
	if got := prog.IntoBytes(); !reflect.DeepEqual(got, wantBytes) {
		t.Errorf("IntoBytes = %v, want %v", got, wantBytes)
	}

	source = []string{";test", "CLR", "RET;no ret", "JMP 123", "ADD V0, ve"}
	prog, err = Parse(source)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	wantDescribe = ";test\n00E0 Clear the display \n00EE Return from subroutine ;no ret\n1123 Jump to 123 \n80E4 Set V0 to V0 + VE \n"
	if got := prog.Describe(); got != wantDescribe {
		t.Errorf("Describe (with comments) = %q, want %q", got, wantDescribe)
	}
	if got := prog.IntoBytes(); !reflect.DeepEqual(got, wantBytes) {
		t.Errorf("IntoBytes (with comments) = %v, want %v", got, wantBytes)
	}
}

func TestParseLine(t *testing.T) {
	got, err := parseLine(4, "JMP 41A")
	if err != nil || !reflect.DeepEqual(got.Bytes, []byte{0x14, 0x1A}) {
		t.Errorf("parseLine(JMP 41A) = %v, %v", got, err)
	}

	got, err = parseLine(6, " XOR  V3 , va")
	if err != nil || !reflect.DeepEqual(got.Bytes, []byte{0x83, 0xA3}) {
		t.Errorf("parseLine(XOR) = %v, %v", got, err)
	}
}

func TestCleanUp(t *testing.T) {
	cleaned := cleanUp([]string{"ASM 1", "ASM 2"})
	want := []cleanLine{{0, "ASM 1", ""}, {1, "ASM 2", ""}}
	if !reflect.DeepEqual(cleaned, want) {
		t.Errorf("cleanUp = %+v, want %+v", cleaned, want)
	}

	cleaned = cleanUp([]string{"", "ASM 1", ";whole line", "ASM 2;note"})
	want = []cleanLine{
		{1, "ASM 1", ""},
		{2, "", "whole line"},
		{3, "ASM 2", "note"},
	}
	if !reflect.DeepEqual(cleaned, want) {
		t.Errorf("cleanUp = %+v, want %+v", cleaned, want)
	}
}

func TestLineX(t *testing.T) {
	l, err := lineX(0, opcode.AddMemReg, 0xF0, 0x1E, "v4")
	if err != nil || !reflect.DeepEqual(l.Bytes, []byte{0xF4, 0x1E}) {
		t.Errorf("lineX(v4) = %v, %v", l, err)
	}

	if _, err := lineX(4, opcode.AddMemReg, 0xF0, 0x1E, ""); err == nil || err.Error() != "Line 4) Reg 1 is invalid" {
		t.Errorf("lineX(empty) err = %v", err)
	}
	if _, err := lineX(8, opcode.AddMemReg, 0xF0, 0x1E, "12"); err == nil || err.Error() != "Line 8) Reg 1 is invalid" {
		t.Errorf("lineX(12) err = %v", err)
	}
	if _, err := lineX(99, opcode.AddMemReg, 0xF0, 0x1E, "vp"); err == nil {
		t.Error("lineX(vp) expected error")
	}
}

func TestLineXNN(t *testing.T) {
	l, err := lineXNN(53, opcode.SkipIfEqualNum, 0x30, "VB , 18")
	if err != nil || !reflect.DeepEqual(l.Bytes, []byte{0x3B, 0x18}) {
		t.Errorf("lineXNN = %v, %v", l, err)
	}
	if _, err := lineXNN(54, opcode.SkipIfNotEqualNum, 0x40, "VB , 181"); err == nil || err.Error() != "Line 54) Number param is too long" {
		t.Errorf("lineXNN(too long) err = %v", err)
	}
}

func TestLineNNN(t *testing.T) {
	l, err := lineNNN(3, opcode.Jump, 0x10, "1ad")
	if err != nil || !reflect.DeepEqual(l.Bytes, []byte{0x11, 0xAD}) {
		t.Errorf("lineNNN = %v, %v", l, err)
	}
	if _, err := lineNNN(6, opcode.Call, 0x20, "v1"); err == nil {
		t.Error("lineNNN(v1) expected error")
	}
	if _, err := lineNNN(7, opcode.SetMemReg, 0xA0, "1234"); err == nil || err.Error() != "Line 7) Address param is too long" {
		t.Errorf("lineNNN(too long) err = %v", err)
	}
}

func TestLineXY(t *testing.T) {
	l, err := lineXY(1, opcode.AddReg, 0x80, 0x04, "v4, va")
	if err != nil || !reflect.DeepEqual(l.Bytes, []byte{0x84, 0xA4}) {
		t.Errorf("lineXY = %v, %v", l, err)
	}
	if _, err := lineXY(10, opcode.BitwiseOr, 0x80, 0x01, "v1"); err == nil || err.Error() != "Line 10) Two registers required" {
		t.Errorf("lineXY(v1) err = %v", err)
	}
	if _, err := lineXY(12, opcode.BitwiseAnd, 0x80, 0x02, ", v2"); err == nil || err.Error() != "Line 12) Reg 1 is invalid" {
		t.Errorf("lineXY(', v2') err = %v", err)
	}
	if _, err := lineXY(9, opcode.BitwiseXor, 0x80, 0x03, "1, 3"); err == nil || err.Error() != "Line 9) Reg 1 is invalid" {
		t.Errorf("lineXY('1, 3') err = %v", err)
	}
}

func TestLineXYN(t *testing.T) {
	l, err := lineXYN(1, opcode.DrawSprite, 0xD0, "v4, va, 6")
	if err != nil || !reflect.DeepEqual(l.Bytes, []byte{0xD4, 0xA6}) {
		t.Errorf("lineXYN = %v, %v", l, err)
	}
	if _, err := lineXYN(2, opcode.DrawSprite, 0xD0, "v1"); err == nil || err.Error() != "Line 2) Three params required" {
		t.Errorf("lineXYN(v1) err = %v", err)
	}
}

func TestParseReg(t *testing.T) {
	if v, err := parseReg("v3", 1); err != nil || v != 0x03 {
		t.Errorf("parseReg(v3,1) = %v,%v", v, err)
	}
	if v, err := parseReg("v3", 2); err != nil || v != 0x30 {
		t.Errorf("parseReg(v3,2) = %v,%v", v, err)
	}
	if v, err := parseReg("vF", 1); err != nil || v != 0x0F {
		t.Errorf("parseReg(vF,1) = %v,%v", v, err)
	}
	if v, err := parseReg("vA", 2); err != nil || v != 0xA0 {
		t.Errorf("parseReg(vA,2) = %v,%v", v, err)
	}

	for _, bad := range []string{"1", "V11", "Vp", "V"} {
		if _, err := parseReg(bad, 1); err == nil {
			t.Errorf("parseReg(%q) expected error", bad)
		}
	}
}

// Concrete scenario B: mixed code and data lines.
func TestParseWithData(t *testing.T) {
	prog, err := Parse([]string{"set v0, 5", "dat [aaaa]", "add v2, v1"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []byte{0x60, 0x05, 0xAA, 0xAA, 0x82, 0x14}
	if got := prog.IntoBytes(); !reflect.DeepEqual(got, want) {
		t.Errorf("IntoBytes = %#v, want %#v", got, want)
	}
}

func TestWarnings(t *testing.T) {
	prog, err := Parse([]string{"asc v0", "CLR"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	warnings := prog.Warnings(false)
	if len(warnings) != 1 {
		t.Fatalf("Warnings = %v, want 1 entry", warnings)
	}

	if suppressed := prog.Warnings(true); len(suppressed) != 0 {
		t.Errorf("Warnings(suppressEC8) = %v, want none", suppressed)
	}
}

func TestUnknownMnemonic(t *testing.T) {
	if _, err := Parse([]string{"xyz v0"}); err == nil {
		t.Error("Parse(unknown mnemonic) expected error")
	}
}

func TestLineTooShort(t *testing.T) {
	if _, err := parseLine(0, "ab"); err == nil || err.Error() != "Line 0 is invalid" {
		t.Errorf("parseLine(short) err = %v", err)
	}
}
