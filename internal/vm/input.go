package vm

import "unicode"

// Key identifies one of the 16 keys on the EmmaChip-8 keypad.
//
// Hardware layout:
//
//	1 2 3 C
//	4 5 6 D
//	7 8 9 E
//	A 0 B F
type Key byte

const (
	K0 Key = iota
	K1
	K2
	K3
	K4
	K5
	K6
	K7
	K8
	K9
	KA
	KB
	KC
	KD
	KE
	KF
)

// Index returns the key's numeric value, 0-15.
func (k Key) Index() byte { return byte(k) }

var directKeys = map[rune]Key{
	'0': K0, '1': K1, '2': K2, '3': K3,
	'4': K4, '5': K5, '6': K6, '7': K7,
	'8': K8, '9': K9, 'a': KA, 'b': KB,
	'c': KC, 'd': KD, 'e': KE, 'f': KF,
}

// KeyFromDirect maps literal hex digits 0-9/a-f straight to their key.
func KeyFromDirect(chr rune) (Key, bool) {
	k, ok := directKeys[unicode.ToLower(chr)]
	return k, ok
}

var lefthandKeys = map[rune]Key{
	'1': K1, '2': K2, '3': K3, '4': KC,
	'q': K4, 'w': K5, 'e': K6, 'r': KD,
	'a': K7, 's': K8, 'd': K9, 'f': KE,
	'z': KA, 'x': K0, 'c': KB, 'v': KF,
}

// KeyFromLefthandLayout maps a typical left-hand WASD-adjacent layout
// (1234/qwer/asdf/zxcv) onto the classic Chip-8 keypad.
func KeyFromLefthandLayout(chr rune) (Key, bool) {
	k, ok := lefthandKeys[unicode.ToLower(chr)]
	return k, ok
}

// OnKeyPressed marks key as held and, if the VM is waiting for a key,
// resumes execution with the pressed key stored in the waiting register.
func (c *EmmaChip8) OnKeyPressed(key Key) {
	if c.State == WaitingForKey {
		c.State = Running
		c.Registers[c.WaitKeyReg] = key.Index()
	}
	c.Keys[key.Index()] = true
}

// OnKeyReleased marks key as released.
func (c *EmmaChip8) OnKeyReleased(key Key) {
	c.Keys[key.Index()] = false
}
