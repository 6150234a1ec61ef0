package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/grindlemire/go-domgen/internal/domgen"
)

func TestPrintInspection(t *testing.T) {
	src := `const a = <Show when={ok()}><button onClick={go}>{label()}</button></Show>;`
	res, err := domgen.Compile(context.Background(), "app.jsx", []byte(src), domgen.DefaultOptions())
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}

	var buf bytes.Buffer
	if err := printInspection(&buf, res); err != nil {
		t.Fatalf("print failed: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"_tmpl$1",
		"<button><!--#--></button>",
		"_tmpl$1 event@root click = go",
		"_tmpl$1 insert@0 = label()",
		"Show",
		"when:getter children:getter",
		"helpers: createComponent, delegateEvents, insert, template",
		"delegated events: click",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output is missing %q:\n%s", want, out)
		}
	}
}

func TestRunFixtures(t *testing.T) {
	fixtures, err := domgen.LoadFixtures("../../internal/domgen/testdata")
	if err != nil {
		t.Fatalf("loading fixtures: %v", err)
	}

	var buf bytes.Buffer
	if failed := runFixtures(context.Background(), &buf, fixtures, true); failed != 0 {
		t.Errorf("%d fixture(s) failed:\n%s", failed, buf.String())
	}

	bad := &domgen.Fixture{Name: "bad", Input: "const a = <p/>;\n", Output: "wrong\n", Options: domgen.DefaultOptions()}
	buf.Reset()
	if failed := runFixtures(context.Background(), &buf, []*domgen.Fixture{bad}, false); failed != 1 {
		t.Errorf("failed = %d, want 1", failed)
	}
	if !strings.Contains(buf.String(), "FAIL bad (-want +got)") {
		t.Errorf("missing failure report:\n%s", buf.String())
	}
}
