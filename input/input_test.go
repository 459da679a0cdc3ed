package input

import (
	"testing"

	"github.com/emmachip8/ec8/internal/vm"
	"github.com/veandco/go-sdl2/sdl"
)

func TestLayoutFromName(t *testing.T) {
	if LayoutFromName("direct") != LayoutDirect {
		t.Errorf("LayoutFromName(direct) != LayoutDirect")
	}
	if LayoutFromName("lefthand") != LayoutLefthand {
		t.Errorf("LayoutFromName(lefthand) != LayoutLefthand")
	}
	if LayoutFromName("bogus") != LayoutLefthand {
		t.Errorf("LayoutFromName(bogus) should default to LayoutLefthand")
	}
}

func TestHandleKeyDownLefthand(t *testing.T) {
	k := New(LayoutLefthand)
	key, ok := k.HandleKeyDown(sdl.K_q)
	if !ok || key != vm.K4 {
		t.Fatalf("HandleKeyDown(K_q) = %v,%v want K4,true", key, ok)
	}
	if !k.IsKeyPressed(vm.K4) {
		t.Errorf("IsKeyPressed(K4) = false, want true after key down")
	}
	k.HandleKeyUp(sdl.K_q)
	if k.IsKeyPressed(vm.K4) {
		t.Errorf("IsKeyPressed(K4) = true, want false after key up")
	}
}

func TestHandleKeyDownDirect(t *testing.T) {
	k := New(LayoutDirect)
	key, ok := k.HandleKeyDown(sdl.K_a)
	if !ok || key != vm.KA {
		t.Fatalf("HandleKeyDown(K_a) direct = %v,%v want KA,true", key, ok)
	}
}

func TestHandleKeyDownUnmapped(t *testing.T) {
	k := New(LayoutLefthand)
	if _, ok := k.HandleKeyDown(sdl.K_SPACE); ok {
		t.Errorf("HandleKeyDown(K_SPACE) = true, want false (unmapped)")
	}
}

func TestReset(t *testing.T) {
	k := New(LayoutLefthand)
	k.HandleKeyDown(sdl.K_q)
	k.Reset()
	if k.IsKeyPressed(vm.K4) {
		t.Errorf("IsKeyPressed(K4) = true after Reset, want false")
	}
}
