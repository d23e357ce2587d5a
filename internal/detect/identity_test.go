package detect

import (
	"reflect"
	"testing"
)

func TestSyntaxArgs(t *testing.T) {
	tests := []struct {
		name   string
		syntax Syntax
		target string
		args   []string
		want   []string
	}{
		{"bare", SyntaxCommand, "game", []string{"--level", "3"}, []string{"game", "--level", "3"}},
		{"dash-e", SyntaxDashE, "game", []string{"-v"}, []string{"-e", "game", "-v"}},
		{"double-dash", SyntaxDoubleDash, "game", nil, []string{"--", "game"}},
		{"native", SyntaxNativeAPI, "game", []string{"x"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.syntax.Args(tt.target, tt.args)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Args() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Every known syntax must survive a String/Parse round trip so cached
// results can be restored faithfully.
func TestSyntaxStringRoundTrip(t *testing.T) {
	for _, s := range []Syntax{SyntaxCommand, SyntaxDashE, SyntaxDoubleDash, SyntaxNativeAPI} {
		got, err := ParseSyntax(s.String())
		if err != nil {
			t.Fatalf("ParseSyntax(%q) failed: %v", s.String(), err)
		}
		if got != s {
			t.Errorf("round trip of %v produced %v", s, got)
		}
	}
}

func TestParseSyntaxUnknown(t *testing.T) {
	if _, err := ParseSyntax("teleport"); err == nil {
		t.Error("expected error for unknown syntax string")
	}
}

func TestResultString(t *testing.T) {
	if got := (Result{}).String(); got != "no terminal found" {
		t.Errorf("zero result string = %q", got)
	}

	res := Result{
		Identity: Identity{Name: "xterm", Category: CategoryTraditional, Syntax: SyntaxCommand, Method: MethodTable},
		Found:    true,
	}
	want := "xterm (traditional, [command], via candidate table)"
	if got := res.String(); got != want {
		t.Errorf("result string = %q, want %q", got, want)
	}
}

func TestParseMethodRoundTrip(t *testing.T) {
	for m := MethodNone; m <= MethodTable; m++ {
		if got := parseMethod(m.String()); got != m {
			t.Errorf("parseMethod(%q) = %v, want %v", m.String(), got, m)
		}
	}
}

func TestIdentityIsNative(t *testing.T) {
	id := Identity{Name: "conhost", Syntax: SyntaxNativeAPI}
	if !id.IsNative() {
		t.Error("native identity not reported as native")
	}
	if (Identity{Name: "xterm"}).IsNative() {
		t.Error("xterm reported as native")
	}
}
