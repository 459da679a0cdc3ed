package opcode

import "testing"

func TestSimpleDescribe(t *testing.T) {
	got := Jump.SimpleDescribe(0x13, 0x34)
	if got != "Jump to 334" {
		t.Errorf("SimpleDescribe(Jump) = %q, want %q", got, "Jump to 334")
	}

	got = AddNumToReg.SimpleDescribe(0x7B, 0x9A)
	if got != "Set VB to VB + 9A" {
		t.Errorf("SimpleDescribe(AddNumToReg) = %q, want %q", got, "Set VB to VB + 9A")
	}
}

func TestDescribe(t *testing.T) {
	var zero [16]byte
	got := ClearDisplay.Describe(0x00, 0xE0, zero, zero, 0x12, 0x12, 0x12)
	if got != "[0012] 00E0 Clear the display" {
		t.Errorf("Describe(ClearDisplay) = %q", got)
	}

	got = SetMemReg.Describe(0xA0, 0x67, zero, zero, 0x3AA, 0x3AA, 0x3AA)
	if got != "[03AA] A067 Set I to 067" {
		t.Errorf("Describe(SetMemReg) = %q", got)
	}

	pre := [16]byte{0, 0x67, 0, 0x34}
	post := [16]byte{0, 0x67, 0, 0x9B}
	got = AddReg.Describe(0x83, 0x14, pre, post, 0, 0, 0x9)
	want := "[0009] 8314 Set V3 (9B) to V3 (34) + V1 (67)"
	if got != want {
		t.Errorf("Describe(AddReg) = %q, want %q", got, want)
	}
}
