package driver

import (
	"bufio"
	"strings"
	"testing"
)

// These tests cover Compile's lex/parse/lower pipeline only. Optimize,
// CompileToObject, and RunJIT shell out to opt/clang/lli and are outside
// the reach of a unit test.

func TestCompileSimpleProgram(t *testing.T) {
	d := New()
	src := `
		func int add(int a, int b) {
			return a + b;
		}
	`
	mod, err := d.Compile(bufio.NewReader(strings.NewReader(src)))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	var names []string
	for _, fn := range mod.Funcs {
		names = append(names, fn.Name())
	}

	wantAll := map[string]bool{"main": false, "add": false, "print": false, "printi": false, "printd": false}
	for _, n := range names {
		if _, ok := wantAll[n]; ok {
			wantAll[n] = true
		}
	}
	for name, found := range wantAll {
		if !found {
			t.Errorf("expected function %q in the lowered module, got %v", name, names)
		}
	}
}

func TestCompileUsingBuiltin(t *testing.T) {
	d := New()
	src := `
		func void main2() {
			print("hi");
		}
	`
	_, err := d.Compile(bufio.NewReader(strings.NewReader(src)))
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
}

func TestCompileUndeclaredVariableFails(t *testing.T) {
	d := New()
	src := `
		func int bad() {
			return y;
		}
	`
	_, err := d.Compile(bufio.NewReader(strings.NewReader(src)))
	if err == nil {
		t.Fatal("expected an Undeclared lowering error, got nil")
	}
}

func TestCompileParseErrorPropagates(t *testing.T) {
	d := New()
	src := `func int broken( {`
	_, err := d.Compile(bufio.NewReader(strings.NewReader(src)))
	if err == nil {
		t.Fatal("expected a parse error, got nil")
	}
}
