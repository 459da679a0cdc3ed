// Package vm implements the EmmaChip-8 virtual machine: memory, registers,
// timers, the 63x31 output buffer, and the fetch/decode/execute cycle.
package vm

import (
	"fmt"
	"math/rand"

	"github.com/emmachip8/ec8/internal/bits"
	"github.com/emmachip8/ec8/internal/opcode"
)

const (
	MemorySize      = 4096
	RegisterCount   = 16
	MaxStackCount   = 40
	ProgStartAddr   = 0x200
	ProgEndAddr     = 0xE8F
	MaxProgSize     = ProgEndAddr - ProgStartAddr
	MaxX            = 0x3F
	MaxY            = 0x1F
	PixelCount      = MaxX * MaxY
	ButtonCount     = 16
	RegFlag         = 15
)

// State is the run state of the VM.
type State int

const (
	Waiting State = iota
	Running
	StackOverflow
	InvalidOpcode
	StackEmpty
	WaitingForKey
)

func (s State) String() string {
	switch s {
	case Waiting:
		return "Waiting"
	case Running:
		return "Running"
	case StackOverflow:
		return "StackOverflow"
	case InvalidOpcode:
		return "InvalidOpcode"
	case StackEmpty:
		return "StackEmpty"
	case WaitingForKey:
		return "WaitingForKey"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ErrProgramTooLarge is returned by LoadProgram when data exceeds the
// space available between the program start and end addresses.
var ErrProgramTooLarge = fmt.Errorf("program is too large")

// EmmaChip8 is the virtual machine's entire observable state.
type EmmaChip8 struct {
	PC          uint16
	Memory      [MemorySize]byte
	Registers   [RegisterCount]byte
	Stack       []uint16
	MemReg      uint16
	Delay       byte
	Sound       byte
	Output      [PixelCount]bool
	State       State
	WaitKeyReg  byte
	Keys        [ButtonCount]bool
	Dirty       bool
}

// New returns a freshly constructed, unloaded VM.
func New() *EmmaChip8 {
	return &EmmaChip8{
		State: Waiting,
		Stack: make([]uint16, 0, MaxStackCount),
	}
}

// LoadProgram resets the VM and loads data at ProgStartAddr, with the
// built-in font loaded at address 0.
func (c *EmmaChip8) LoadProgram(data []byte) error {
	if len(data) > MaxProgSize {
		return ErrProgramTooLarge
	}

	var memory [MemorySize]byte
	copy(memory[:], opcode.AlphaMemory[:])
	copy(memory[ProgStartAddr:], data)

	c.Memory = memory
	c.PC = ProgStartAddr
	c.MemReg = ProgStartAddr
	c.Sound = 0
	c.Delay = 0
	c.Registers = [RegisterCount]byte{}
	c.Output = [PixelCount]bool{}
	c.State = Running
	c.Keys = [ButtonCount]bool{}
	c.Dirty = true
	c.Stack = c.Stack[:0]

	return nil
}

// TickTimers decrements the delay and sound timers by one, floored at
// zero, matching the original client's saturating_sub timer update.
func (c *EmmaChip8) TickTimers() {
	if c.Delay > 0 {
		c.Delay--
	}
	if c.Sound > 0 {
		c.Sound--
	}
}

// Run executes a single instruction if the VM is in the Running state.
func (c *EmmaChip8) Run() {
	if c.State != Running {
		return
	}
	hi, lo := c.readTwoBytes(c.PC)
	op, ok := opcode.FromBytes(hi, lo)
	if !ok {
		c.State = InvalidOpcode
		return
	}
	c.execute(op, hi, lo)
}

func (c *EmmaChip8) execute(op opcode.Code, hi, lo byte) {
	c.PC += 2
	x := bits.LowNibble(hi)
	y := bits.HighNibbleShifted(lo)

	switch op {
	case opcode.SysCall:
		// not supported, executes as a no-op
	case opcode.ClearDisplay:
		c.Output = [PixelCount]bool{}
		c.Dirty = true
	case opcode.Return:
		if len(c.Stack) == 0 {
			c.State = StackEmpty
			return
		}
		last := len(c.Stack) - 1
		c.PC = c.Stack[last]
		c.Stack = c.Stack[:last]
	case opcode.Jump:
		c.PC = bits.Mash12(hi, lo)
	case opcode.Call:
		if len(c.Stack) >= MaxStackCount {
			c.State = StackOverflow
			return
		}
		c.Stack = append(c.Stack, c.PC)
		c.PC = bits.Mash12(hi, lo)
	case opcode.SkipIfEqualNum:
		if c.readReg(x) == lo {
			c.PC += 2
		}
	case opcode.SkipIfNotEqualNum:
		if c.readReg(x) != lo {
			c.PC += 2
		}
	case opcode.SkipIfEqualReg:
		if c.readReg(x) == c.readReg(y) {
			c.PC += 2
		}
	case opcode.SetRegFromNum:
		c.setReg(x, lo)
	case opcode.AddNumToReg:
		c.setReg(x, c.readReg(x)+lo)
	case opcode.SetRegFromReg:
		c.setReg(x, c.readReg(y))
	case opcode.BitwiseOr:
		c.setReg(x, c.readReg(x)|c.readReg(y))
	case opcode.BitwiseAnd:
		c.setReg(x, c.readReg(x)&c.readReg(y))
	case opcode.BitwiseXor:
		c.setReg(x, c.readReg(x)^c.readReg(y))
	case opcode.AddReg:
		vx, vy := c.readReg(x), c.readReg(y)
		sum := uint16(vx) + uint16(vy)
		c.setReg(x, byte(sum))
		c.setFlag(sum > 0xFF)
	case opcode.SubRightReg:
		vx, vy := c.readReg(x), c.readReg(y)
		c.setFlag(vx > vy)
		c.setReg(x, vx-vy)
	case opcode.ShiftRight:
		value := c.readReg(x)
		c.Registers[RegFlag] = value & 0x01
		c.setReg(x, value>>1)
	case opcode.SubLeftReg:
		vx, vy := c.readReg(x), c.readReg(y)
		c.setFlag(vy > vx)
		c.setReg(x, vy-vx)
	case opcode.ShiftLeft:
		value := c.readReg(x)
		c.Registers[RegFlag] = value >> 7
		c.setReg(x, value<<1)
	case opcode.SkipIfNotEqualReg:
		if c.readReg(x) != c.readReg(y) {
			c.PC += 2
		}
	case opcode.SetMemReg:
		c.MemReg = bits.Mash12(hi, lo)
	case opcode.JumpOffset:
		c.PC = uint16(c.readReg(0)) + bits.Mash12(hi, lo)
	case opcode.SetRegRand:
		c.setReg(x, byte(rand.Intn(256))&lo)
	case opcode.DrawSprite:
		c.drawSprite(c.readReg(x), c.readReg(y), bits.LowNibble(lo))
	case opcode.SkipIfKeyPressed:
		if c.Keys[c.readReg(x)] {
			c.PC += 2
		}
	case opcode.SkipIfKeyNotPressed:
		if !c.Keys[c.readReg(x)] {
			c.PC += 2
		}
	case opcode.SetRegFromTimer:
		c.setReg(x, c.Delay)
	case opcode.WaitForKey:
		c.State = WaitingForKey
		c.WaitKeyReg = x
	case opcode.SetDelayTimer:
		c.Delay = c.readReg(x)
	case opcode.SetSoundTimer:
		c.Sound = c.readReg(x)
	case opcode.AddMemReg:
		// no overflow guard: matches the original runtime's behavior
		c.MemReg += uint16(c.readReg(x))
	case opcode.SetMemRegToDigitSprite:
		digit := bits.LowNibble(c.readReg(x))
		c.MemReg = opcode.AlphaStartAddress + uint16(opcode.AlphaBytes)*uint16(digit)
	case opcode.SetMemRegToAsciiSprite:
		idx, ok := opcode.AlphaIndex(rune(c.readReg(x)))
		if !ok {
			idx = 0
		}
		c.MemReg = opcode.AlphaStartAddress + uint16(opcode.AlphaBytes)*uint16(idx)
	case opcode.StoreBcd:
		value := c.readReg(x)
		c.Memory[c.MemReg] = value / 100
		c.Memory[c.MemReg+1] = (value / 10) % 10
		c.Memory[c.MemReg+2] = value % 10
	case opcode.StoreRegs:
		for i := 0; i <= int(x); i++ {
			c.Memory[c.MemReg+uint16(i)] = c.Registers[i]
		}
	case opcode.LoadRegs:
		for i := 0; i <= int(x); i++ {
			c.Registers[i] = c.Memory[c.MemReg+uint16(i)]
		}
	}
}

func (c *EmmaChip8) setFlag(set bool) {
	if set {
		c.Registers[RegFlag] = 1
	} else {
		c.Registers[RegFlag] = 0
	}
}

func (c *EmmaChip8) readReg(reg byte) byte   { return c.Registers[reg] }
func (c *EmmaChip8) setReg(reg, value byte)  { c.Registers[reg] = value }

func (c *EmmaChip8) readTwoBytes(addr uint16) (byte, byte) {
	return c.Memory[addr], c.Memory[addr+1]
}

// drawSprite XORs an 8-wide, rows-tall sprite from memory at MemReg onto
// the output buffer at (x, y). Pixel addressing clamps to the last pixel
// rather than wrapping, and a collision is any pixel that toggled — either
// direction — not only a 1-to-0 transition.
func (c *EmmaChip8) drawSprite(x, y, rows byte) {
	c.Dirty = true
	collision := false
	for row := 0; row < int(rows); row++ {
		addr := int(c.MemReg) + row
		pixels := c.Memory[addr]
		py := int(y) + row
		for i := 0; i < 8; i++ {
			px := int(x) + i
			setPixel := (pixels>>(7-i))&0x01 == 1
			outputIdx := py*MaxX + px
			if outputIdx >= PixelCount {
				outputIdx = PixelCount - 1
			}
			oldValue := c.Output[outputIdx]
			c.Output[outputIdx] = c.Output[outputIdx] != setPixel
			if oldValue != c.Output[outputIdx] {
				collision = true
			}
		}
	}
	c.setFlag(collision)
}
