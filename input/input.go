// Package input handles keyboard input mapping for the EmmaChip-8 emulator.
package input

import (
	"github.com/emmachip8/ec8/internal/vm"
	"github.com/veandco/go-sdl2/sdl"
)

// Layout selects which physical-key-to-EC8-key mapping SDL keycodes run
// through.
type Layout int

const (
	// LayoutDirect maps the hex digits 0-9/a-f straight to their key.
	LayoutDirect Layout = iota
	// LayoutLefthand maps the classic 1234/qwer/asdf/zxcv block onto the
	// keypad, per the original source's ec8-core/src/input.rs.
	LayoutLefthand
)

// LayoutFromName parses a config/flag value ("direct" or "lefthand") into
// a Layout, defaulting to LayoutLefthand on an unrecognized name.
func LayoutFromName(name string) Layout {
	if name == "direct" {
		return LayoutDirect
	}
	return LayoutLefthand
}

// Keyboard handles keyboard input state and the active layout's keycode
// mapping.
type Keyboard struct {
	Layout Layout
	Keys   [16]bool
}

// New creates a new Keyboard instance using the given layout.
func New(layout Layout) *Keyboard {
	return &Keyboard{Layout: layout}
}

func (k *Keyboard) lookup(keycode sdl.Keycode) (vm.Key, bool) {
	chr := keycodeToChar(keycode)
	if chr == 0 {
		return 0, false
	}
	if k.Layout == LayoutDirect {
		return vm.KeyFromDirect(chr)
	}
	return vm.KeyFromLefthandLayout(chr)
}

// HandleKeyDown processes a key down event.
func (k *Keyboard) HandleKeyDown(keycode sdl.Keycode) (vm.Key, bool) {
	key, ok := k.lookup(keycode)
	if !ok {
		return 0, false
	}
	k.Keys[key.Index()] = true
	return key, true
}

// HandleKeyUp processes a key up event.
func (k *Keyboard) HandleKeyUp(keycode sdl.Keycode) (vm.Key, bool) {
	key, ok := k.lookup(keycode)
	if !ok {
		return 0, false
	}
	k.Keys[key.Index()] = false
	return key, true
}

// IsKeyPressed returns true if the specified EC8 key is currently pressed.
func (k *Keyboard) IsKeyPressed(key vm.Key) bool {
	if int(key.Index()) < len(k.Keys) {
		return k.Keys[key.Index()]
	}
	return false
}

// Reset resets all key states to unpressed.
func (k *Keyboard) Reset() {
	for i := range k.Keys {
		k.Keys[i] = false
	}
}

// GetKeyState returns a copy of the current key state array.
func (k *Keyboard) GetKeyState() [16]bool {
	return k.Keys
}

// keycodeToChar maps the SDL keycodes used by either layout to the rune
// vm.KeyFromDirect/vm.KeyFromLefthandLayout expect.
func keycodeToChar(keycode sdl.Keycode) rune {
	switch keycode {
	case sdl.K_0:
		return '0'
	case sdl.K_1:
		return '1'
	case sdl.K_2:
		return '2'
	case sdl.K_3:
		return '3'
	case sdl.K_4:
		return '4'
	case sdl.K_5:
		return '5'
	case sdl.K_6:
		return '6'
	case sdl.K_7:
		return '7'
	case sdl.K_8:
		return '8'
	case sdl.K_9:
		return '9'
	case sdl.K_a:
		return 'a'
	case sdl.K_b:
		return 'b'
	case sdl.K_c:
		return 'c'
	case sdl.K_d:
		return 'd'
	case sdl.K_e:
		return 'e'
	case sdl.K_f:
		return 'f'
	case sdl.K_q:
		return 'q'
	case sdl.K_r:
		return 'r'
	case sdl.K_s:
		return 's'
	case sdl.K_w:
		return 'w'
	case sdl.K_x:
		return 'x'
	case sdl.K_z:
		return 'z'
	case sdl.K_v:
		return 'v'
	default:
		return 0
	}
}
