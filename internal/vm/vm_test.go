package vm

import "testing"

func TestNew(t *testing.T) {
	c := New()
	if c.State != Waiting {
		t.Errorf("new VM state = %v, want Waiting", c.State)
	}
}

func TestLoadProgramTooLarge(t *testing.T) {
	c := New()
	data := make([]byte, MaxProgSize+1)
	if err := c.LoadProgram(data); err != ErrProgramTooLarge {
		t.Errorf("LoadProgram(too large) = %v, want ErrProgramTooLarge", err)
	}
}

func TestBasics(t *testing.T) {
	c := New()
	// Jump to 0x204; set R2=1; set R0=R2; set R0=R0+R0
	if err := c.LoadProgram([]byte{0x12, 0x04, 0x0, 0x0, 0x62, 0x01, 0x80, 0x20, 0x80, 0x04}); err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	c.Run()
	if c.State != Running || c.PC != 0x204 {
		t.Fatalf("after jump: state=%v pc=%#04x", c.State, c.PC)
	}
	c.Run()
	if c.State != Running || c.Registers[2] != 1 {
		t.Fatalf("after set R2: state=%v R2=%#02x", c.State, c.Registers[2])
	}
	c.Run()
	if c.State != Running || c.Registers[0] != 1 {
		t.Fatalf("after set R0=R2: state=%v R0=%#02x", c.State, c.Registers[0])
	}
	c.Run()
	if c.State != Running || c.Registers[0] != 2 {
		t.Fatalf("after add R0+=R0: state=%v R0=%#02x", c.State, c.Registers[0])
	}
}

func TestSetDigitSprite(t *testing.T) {
	c := New()
	if err := c.LoadProgram([]byte{0xF0, 0x29, 0x62, 0x08, 0xF2, 0x29}); err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	c.Run()
	if c.MemReg != 0 {
		t.Fatalf("MemReg after chr v0 = %#04x, want 0", c.MemReg)
	}
	c.Run()
	if c.MemReg != 0 {
		t.Fatalf("MemReg after set v2,8 = %#04x, want 0", c.MemReg)
	}
	c.Run()
	if c.MemReg != 8*5 {
		t.Fatalf("MemReg after chr v2 = %#04x, want %#04x", c.MemReg, 8*5)
	}
}

func TestDrawOutput(t *testing.T) {
	c := New()
	if err := c.LoadProgram([]byte{0xA0, 0x0, 0xD0, 0x05}); err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	c.Run()
	if c.MemReg != 0 {
		t.Fatalf("MemReg = %#04x, want 0", c.MemReg)
	}
	c.Run()

	var expected [PixelCount]bool
	expected[0] = true
	expected[1] = true
	expected[2] = true
	expected[3] = true
	expected[MaxX] = true
	expected[MaxX+3] = true
	expected[MaxX*2] = true
	expected[MaxX*2+3] = true
	expected[MaxX*3] = true
	expected[MaxX*3+3] = true
	expected[MaxX*4] = true
	expected[MaxX*4+1] = true
	expected[MaxX*4+2] = true
	expected[MaxX*4+3] = true

	if c.Output != expected {
		t.Fatalf("output buffer did not match expected glyph pattern")
	}
}

func TestSub(t *testing.T) {
	c := New()
	program := []byte{
		0x6A, 0xFF, 0x6B, 0xF1, 0x62, 20, 0x63, 30, 0x8A, 0xB5, 0x82, 0x37, 0x3A, 0x0E, 0xAF, 0xFF,
	}
	if err := c.LoadProgram(program); err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	for i := 0; i < 7; i++ {
		c.Run()
	}
	if c.State != Running {
		t.Fatalf("state = %v, want Running", c.State)
	}
	if c.Registers[0x0A] != 0x0E {
		t.Errorf("R10 = %#02x, want 0x0E", c.Registers[0x0A])
	}
	if c.Registers[2] != 10 {
		t.Errorf("R2 = %d, want 10", c.Registers[2])
	}
	if c.PC != 0x200+16 {
		t.Errorf("PC = %#04x, want %#04x", c.PC, 0x200+16)
	}
}

func TestSkipSequence(t *testing.T) {
	c := New()
	program := []byte{
		0x60, 0xFF, 0xF0, 0x15, 0x60, 0x00, 0x69, 0x00, 0x6E, 0x00, 0x60, 0x00, 0x30, 0x01,
		0x30, 0x00, 0x13, 0x92,
	}
	if err := c.LoadProgram(program); err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	wantPCs := []uint16{0x202, 0x204, 0x206, 0x208, 0x20A, 0x20C, 0x20E}
	for _, want := range wantPCs {
		c.Run()
		if c.State != Running || c.PC != want {
			t.Fatalf("state=%v pc=%#04x, want Running/%#04x", c.State, c.PC, want)
		}
	}
}

func TestReturnOnEmptyStack(t *testing.T) {
	c := New()
	if err := c.LoadProgram([]byte{0x00, 0xEE}); err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	c.Run()
	if c.State != StackEmpty {
		t.Errorf("state = %v, want StackEmpty", c.State)
	}
}

func TestCallStackOverflow(t *testing.T) {
	c := New()
	data := make([]byte, 0, 2*MaxStackCount+2)
	for i := 0; i < MaxStackCount+1; i++ {
		data = append(data, 0x22, 0x00)
	}
	if err := c.LoadProgram(data); err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	for i := 0; i < MaxStackCount; i++ {
		c.Run()
		if c.State != Running {
			t.Fatalf("run %d: state = %v, want Running", i, c.State)
		}
	}
	c.Run()
	if c.State != StackOverflow {
		t.Errorf("state = %v, want StackOverflow", c.State)
	}
}

func TestWaitingForKey(t *testing.T) {
	c := New()
	if err := c.LoadProgram([]byte{0xF0, 0x0A}); err != nil {
		t.Fatalf("LoadProgram: %v", err)
	}
	c.Run()
	if c.State != WaitingForKey {
		t.Fatalf("state = %v, want WaitingForKey", c.State)
	}
	c.OnKeyPressed(KA)
	if c.State != Running {
		t.Errorf("state after key press = %v, want Running", c.State)
	}
	if c.Registers[0] != KA.Index() {
		t.Errorf("R0 = %d, want %d", c.Registers[0], KA.Index())
	}
}

func TestTickTimersFloorsAtZero(t *testing.T) {
	c := New()
	c.Delay = 1
	c.Sound = 0
	c.TickTimers()
	if c.Delay != 0 {
		t.Errorf("Delay = %d, want 0", c.Delay)
	}
	if c.Sound != 0 {
		t.Errorf("Sound = %d, want 0", c.Sound)
	}
	c.TickTimers()
	if c.Delay != 0 {
		t.Errorf("Delay after second tick = %d, want 0 (floored)", c.Delay)
	}
}

func TestKeyLayouts(t *testing.T) {
	if k, ok := KeyFromDirect('a'); !ok || k != KA {
		t.Errorf("KeyFromDirect('a') = %v,%v want KA,true", k, ok)
	}
	if k, ok := KeyFromLefthandLayout('q'); !ok || k != K4 {
		t.Errorf("KeyFromLefthandLayout('q') = %v,%v want K4,true", k, ok)
	}
	if k, ok := KeyFromLefthandLayout('x'); !ok || k != K0 {
		t.Errorf("KeyFromLefthandLayout('x') = %v,%v want K0,true", k, ok)
	}
}
