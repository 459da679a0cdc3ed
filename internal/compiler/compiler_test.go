package compiler

import (
	"reflect"
	"testing"
)

func TestCompileProgressBasic(t *testing.T) {
	source := []string{"lbl: v3 = xff", "data test 01a2", "goto lbl", "i = test"}
	got, _, err := CompileToAsm(source)
	if err != nil {
		t.Fatalf("CompileToAsm: %v", err)
	}
	want := []string{"set v3, FF", "jmp 200", "sti 206", "dat [01A2]"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CompileToAsm = %v, want %v", got, want)
	}
}

func TestCompileIf(t *testing.T) {
	source := []string{"loop", "if eq(v3,3) break", "again", "i = @0"}
	got, _, err := CompileToAsm(source)
	if err != nil {
		t.Fatalf("CompileToAsm: %v", err)
	}
	want := []string{"ske v3, 03", "jmp 206", "jmp 200", "sti 000"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CompileToAsm = %v, want %v", got, want)
	}
}

func TestCompileGotoSelf(t *testing.T) {
	source := []string{"end: goto(end)"}
	got, _, err := CompileToAsm(source)
	if err != nil {
		t.Fatalf("CompileToAsm: %v", err)
	}
	want := []string{"jmp 200"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CompileToAsm = %v, want %v", got, want)
	}
}

func TestCompileNegatedConditions(t *testing.T) {
	source := []string{"loop", "if !pressed(v1) break", "again", "clear"}
	got, _, err := CompileToAsm(source)
	if err != nil {
		t.Fatalf("CompileToAsm: %v", err)
	}
	want := []string{"skr v1", "jmp 206", "jmp 200", "clr"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CompileToAsm = %v, want %v", got, want)
	}
}

func TestCompileBuiltinMacro(t *testing.T) {
	source := []string{"draw_digit!(v0, v1, v2)"}
	got, _, err := CompileToAsm(source)
	if err != nil {
		t.Fatalf("CompileToAsm: %v", err)
	}
	want := []string{"chr v2", "drw v0, v1, 05"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CompileToAsm = %v, want %v", got, want)
	}
}

func TestCompileUserMacro(t *testing.T) {
	source := []string{
		"macro inc_by r nn",
		"$1 += $2",
		"end",
		"inc_by!(v0, 5)",
	}
	got, _, err := CompileToAsm(source)
	if err != nil {
		t.Fatalf("CompileToAsm: %v", err)
	}
	want := []string{"add v0, 05"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CompileToAsm = %v, want %v", got, want)
	}
}

func TestCompileUndefinedLabel(t *testing.T) {
	// "goto" to a name that is never defined as a label, data, alias, or
	// recognised literal resolves as Unknown at parse time and must fail
	// once address resolution can't find it anywhere.
	source := []string{"goto nowhere"}
	if _, _, err := CompileToAsm(source); err == nil {
		t.Errorf("CompileToAsm(goto nowhere) succeeded, want error")
	}
}

func TestCompileDuplicateLabel(t *testing.T) {
	source := []string{"a: clear", "a: clear"}
	if _, _, err := CompileToAsm(source); err == nil {
		t.Errorf("CompileToAsm with duplicate label succeeded, want error")
	}
}

func TestCompileBreakOutsideLoop(t *testing.T) {
	source := []string{"break"}
	if _, _, err := CompileToAsm(source); err == nil {
		t.Errorf("CompileToAsm(break outside loop) succeeded, want error")
	}
}

func TestCompileUnclosedLoop(t *testing.T) {
	source := []string{"loop", "clear"}
	if _, _, err := CompileToAsm(source); err == nil {
		t.Errorf("CompileToAsm with unclosed loop succeeded, want error")
	}
}

func TestCompileAlias(t *testing.T) {
	source := []string{"alias counter v3", "counter = x05"}
	got, _, err := CompileToAsm(source)
	if err != nil {
		t.Fatalf("CompileToAsm: %v", err)
	}
	want := []string{"set v3, 05"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CompileToAsm = %v, want %v", got, want)
	}
}

func TestCompileWarnsUnusedLabel(t *testing.T) {
	source := []string{"unused: clear", "clear"}
	_, warning, err := CompileToAsm(source)
	if err != nil {
		t.Fatalf("CompileToAsm: %v", err)
	}
	if warning == "" {
		t.Errorf("expected a warning about the unused label, got none")
	}
}
