package pysrc

import (
	"context"
	"errors"
	"testing"
)

func mustParse(t *testing.T, src string) *Module {
	t.Helper()
	mod, err := Parse(context.Background(), []byte(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return mod
}

func TestParse_NoTryStatements(t *testing.T) {
	mod := mustParse(t, "def f():\n    return 1\n")
	if len(mod.Tries) != 0 {
		t.Fatalf("expected no try blocks, got %d", len(mod.Tries))
	}
}

func TestParse_EmptyFile(t *testing.T) {
	mod := mustParse(t, "")
	if len(mod.Tries) != 0 {
		t.Fatalf("expected no try blocks in empty file")
	}
}

func TestParse_HandlerExtraction(t *testing.T) {
	src := `def f():
    try:
        risky()
    except ValueError:
        handle()
    except (TypeError, KeyError) as e:
        log(e)
    except:
        pass
`
	mod := mustParse(t, src)
	if len(mod.Tries) != 1 {
		t.Fatalf("expected 1 try block, got %d", len(mod.Tries))
	}
	hs := mod.Tries[0].Handlers
	if len(hs) != 3 {
		t.Fatalf("expected 3 handler clauses, got %d", len(hs))
	}

	if hs[0].Line != 4 || hs[0].Column != 5 {
		t.Fatalf("handler 0 at %d:%d, want 4:5", hs[0].Line, hs[0].Column)
	}
	if len(hs[0].Types) != 1 || hs[0].Types[0] != "ValueError" {
		t.Fatalf("handler 0 types = %v", hs[0].Types)
	}
	if len(hs[0].Body) != 1 || hs[0].Body[0].Kind != StmtOther {
		t.Fatalf("handler 0 body = %+v", hs[0].Body)
	}
	if hs[0].Header != "except ValueError:" {
		t.Fatalf("handler 0 header = %q", hs[0].Header)
	}

	if hs[1].Line != 6 {
		t.Fatalf("handler 1 line = %d, want 6", hs[1].Line)
	}
	if len(hs[1].Types) != 2 || hs[1].Types[0] != "TypeError" || hs[1].Types[1] != "KeyError" {
		t.Fatalf("handler 1 types = %v", hs[1].Types)
	}

	if hs[2].Line != 8 {
		t.Fatalf("handler 2 line = %d, want 8", hs[2].Line)
	}
	if len(hs[2].Types) != 0 {
		t.Fatalf("bare except must declare no types, got %v", hs[2].Types)
	}
	if len(hs[2].Body) != 1 || hs[2].Body[0].Kind != StmtPass {
		t.Fatalf("handler 2 body = %+v", hs[2].Body)
	}
}

func TestParse_DottedType(t *testing.T) {
	src := `try:
    risky()
except socket.error:
    pass
`
	mod := mustParse(t, src)
	hs := mod.Tries[0].Handlers
	if len(hs) != 1 || len(hs[0].Types) != 1 || hs[0].Types[0] != "socket.error" {
		t.Fatalf("dotted type lost: %+v", hs)
	}
}

func TestParse_NoOpMarkers(t *testing.T) {
	src := `try:
    a()
except OSError:
    """ignored on purpose"""
except ValueError:
    ...
`
	mod := mustParse(t, src)
	hs := mod.Tries[0].Handlers
	if len(hs) != 2 {
		t.Fatalf("expected 2 handlers, got %d", len(hs))
	}
	if len(hs[0].Body) != 1 || hs[0].Body[0].Kind != StmtDocString {
		t.Fatalf("docstring body = %+v", hs[0].Body)
	}
	if len(hs[1].Body) != 1 || hs[1].Body[0].Kind != StmtEllipsis {
		t.Fatalf("ellipsis body = %+v", hs[1].Body)
	}
}

func TestParse_NestedTry(t *testing.T) {
	src := `try:
    a()
except Exception:
    try:
        b()
    except KeyError:
        pass
`
	mod := mustParse(t, src)
	if len(mod.Tries) != 2 {
		t.Fatalf("expected 2 try blocks (outer and nested), got %d", len(mod.Tries))
	}
	if mod.Tries[0].Line != 1 || mod.Tries[1].Line != 4 {
		t.Fatalf("try block lines = %d, %d", mod.Tries[0].Line, mod.Tries[1].Line)
	}
	inner := mod.Tries[1].Handlers
	if len(inner) != 1 || inner[0].Types[0] != "KeyError" {
		t.Fatalf("nested handler = %+v", inner)
	}
}

func TestParse_ExceptGroup(t *testing.T) {
	src := `try:
    a()
except* ValueError:
    pass
`
	mod := mustParse(t, src)
	hs := mod.Tries[0].Handlers
	if len(hs) != 1 || !hs[0].Star {
		t.Fatalf("expected one except* handler, got %+v", hs)
	}
	if len(hs[0].Types) != 1 || hs[0].Types[0] != "ValueError" {
		t.Fatalf("except* types = %v", hs[0].Types)
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := Parse(context.Background(), []byte("def f(:\n    pass\n"))
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !errors.Is(err, ErrParse) {
		t.Fatalf("error %v is not ErrParse", err)
	}
}
