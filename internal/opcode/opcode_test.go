package opcode

import "testing"

func TestFromBytes(t *testing.T) {
	if op, ok := FromBytes(0xF1, 0x07); !ok || op != SetRegFromTimer {
		t.Errorf("FromBytes(0xF1,0x07) = %v,%v want SetRegFromTimer,true", op, ok)
	}
	if op, ok := FromBytes(0xFF, 0x07); !ok || op != SetRegFromTimer {
		t.Errorf("FromBytes(0xFF,0x07) = %v,%v want SetRegFromTimer,true", op, ok)
	}
	if op, ok := FromBytes(0x8F, 0x07); !ok || op != SubLeftReg {
		t.Errorf("FromBytes(0x8F,0x07) = %v,%v want SubLeftReg,true", op, ok)
	}
}

func TestRegRegNum(t *testing.T) {
	got, err := RegRegNum(DrawSprite, 4, 5, 10)
	if err != nil || got != 0xD45A {
		t.Errorf("RegRegNum(DrawSprite,4,5,10) = %#04x,%v want 0xD45A,nil", got, err)
	}
}

func TestRegNum(t *testing.T) {
	got, err := RegNum(SetRegFromNum, 4, 45)
	if err != nil || got != 0x642D {
		t.Errorf("RegNum(SetRegFromNum,4,45) = %#04x,%v want 0x642D,nil", got, err)
	}
}

func TestReg(t *testing.T) {
	got, err := Reg(SkipIfKeyPressed, 3)
	if err != nil || got != 0xE39E {
		t.Errorf("Reg(SkipIfKeyPressed,3) = %#04x,%v want 0xE39E,nil", got, err)
	}
}

func TestNoParam(t *testing.T) {
	got, err := NoParam(ClearDisplay)
	if err != nil || got != 0x00E0 {
		t.Errorf("NoParam(ClearDisplay) = %#04x,%v want 0x00E0,nil", got, err)
	}
}

func TestAddress(t *testing.T) {
	got, err := Address(Jump, 0x45)
	if err != nil || got != 0x1045 {
		t.Errorf("Address(Jump,0x45) = %#04x,%v want 0x1045,nil", got, err)
	}
	got, err = AddressUnchecked(Jump, 0xF045)
	if err != nil || got != 0x1045 {
		t.Errorf("AddressUnchecked(Jump,0xF045) = %#04x,%v want 0x1045,nil", got, err)
	}
}

func TestAddressOutOfRange(t *testing.T) {
	_, err := Address(Jump, 0x1FFF)
	if err == nil {
		t.Fatal("expected an out-of-range error")
	}
	want := "address is too large: 0x1FFF, max: 0xFFF"
	if err.Error() != want {
		t.Errorf("err = %q, want %q", err.Error(), want)
	}
}

func TestMnemonicEC8Only(t *testing.T) {
	if SetMemRegToAsciiSprite.Mnemonic() != "asc" {
		t.Errorf("SetMemRegToAsciiSprite.Mnemonic() = %q, want asc", SetMemRegToAsciiSprite.Mnemonic())
	}
	if !SetMemRegToAsciiSprite.IsEC8Only() {
		t.Error("SetMemRegToAsciiSprite should be EC8-only")
	}
	if ClearDisplay.IsEC8Only() {
		t.Error("ClearDisplay should not be EC8-only")
	}
}
