package gomal

import (
	"bytes"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestOps evaluates each testdir/*.mal file form by form, writing every
// result or error on its own line, and compares with the .out file. Files
// that fail to parse are compared with their .err file instead.
func TestOps(t *testing.T) {
	fns, err := filepath.Glob("testdir/*.mal")
	if err != nil {
		t.Fatal(err)
	}

	for _, fn := range fns {
		t.Log(fn)
		b, err := ioutil.ReadFile(fn)
		if err != nil {
			t.Fatal(err)
		}
		input := string(b)
		parser := NewParser(strings.NewReader(input))
		forms, err := parser.Parse()
		if err != nil {
			b, err2 := ioutil.ReadFile(fn[:len(fn)-3] + "err")
			if err2 != nil || err.Error() != strings.TrimSpace(string(b)) {
				t.Error(err)
			}
			continue
		}
		var buf bytes.Buffer
		env := NewRootEnv(NewBuiltins(&buf))
		for _, form := range forms {
			ret, err := Eval(env, form)
			if err != nil {
				fmt.Fprintf(&buf, "error: %v\n", err)
				continue
			}
			fmt.Fprintln(&buf, ret)
		}
		got := buf.String()
		b, err = ioutil.ReadFile(fn[:len(fn)-3] + "out")
		if err != nil {
			t.Fatal(err)
		}
		want := string(b)
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("%s: (-want +got)\n%s", fn, diff)
		}
	}
}

func TestBuiltinsDoNotRetainArgs(t *testing.T) {
	args := []*Value{Int(1), Int(2)}
	l, err := doList(args)
	if err != nil {
		t.Fatal(err)
	}
	args[0] = Int(3)
	if diff := cmp.Diff(List(Int(1), Int(2)), l); diff != "" {
		t.Error(diff)
	}
}

func TestOverflowWraps(t *testing.T) {
	got, err := doPlus([]*Value{Int(9223372036854775807), Int(1)})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Int(-9223372036854775808), got); diff != "" {
		t.Error(diff)
	}
}
