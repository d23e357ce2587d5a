package launch

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/dshills/termforge/internal/detect"
)

func planEnv() *detect.FakeEnv {
	return &detect.FakeEnv{Path: map[string]string{
		"xterm":          "/usr/bin/xterm",
		"gnome-terminal": "/usr/bin/gnome-terminal",
		"konsole":        "/usr/bin/konsole",
		"osascript":      "/usr/bin/osascript",
	}}
}

func TestPlanBareCommand(t *testing.T) {
	id := detect.Identity{Name: "xterm", Category: detect.CategoryTraditional, Syntax: detect.SyntaxCommand}
	plan, err := NewPlanner(planEnv()).Plan(id, "/opt/game/bin/game", []string{"--fullscreen"})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if plan.Path != "/usr/bin/xterm" {
		t.Errorf("path = %q", plan.Path)
	}
	want := []string{"/opt/game/bin/game", "--fullscreen"}
	if !reflect.DeepEqual(plan.Args, want) {
		t.Errorf("args = %v, want %v", plan.Args, want)
	}
}

func TestPlanDashE(t *testing.T) {
	id := detect.Identity{Name: "konsole", Category: detect.CategoryDesktop, Syntax: detect.SyntaxDashE}
	plan, err := NewPlanner(planEnv()).Plan(id, "game", []string{"-v", "--seed", "42"})
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	want := []string{"-e", "game", "-v", "--seed", "42"}
	if !reflect.DeepEqual(plan.Args, want) {
		t.Errorf("args = %v, want %v", plan.Args, want)
	}
}

func TestPlanDoubleDash(t *testing.T) {
	id := detect.Identity{Name: "gnome-terminal", Category: detect.CategoryDesktop, Syntax: detect.SyntaxDoubleDash}
	plan, err := NewPlanner(planEnv()).Plan(id, "game", nil)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	want := []string{"--", "game"}
	if !reflect.DeepEqual(plan.Args, want) {
		t.Errorf("args = %v, want %v", plan.Args, want)
	}
}

// For every statically known identity, the plan's argument list must
// reconstruct the original target and arguments when parsed by the
// identity's own syntax rule.
func TestPlanRoundTripAllCandidates(t *testing.T) {
	target := "/opt/game/bin/game"
	args := []string{"--level", "3", "-v"}

	for _, c := range detect.Candidates() {
		env := &detect.FakeEnv{Path: map[string]string{c.Name: "/usr/bin/" + c.Name}}
		id := detect.Identity{Name: c.Name, Category: c.Category, Syntax: c.Syntax, Method: detect.MethodTable}

		plan, err := NewPlanner(env).Plan(id, target, args)
		if err != nil {
			t.Fatalf("%s: Plan failed: %v", c.Name, err)
		}

		gotTarget, gotArgs, ok := c.Syntax.Split(plan.Args)
		if !ok {
			t.Fatalf("%s: Split rejected %v", c.Name, plan.Args)
		}
		if gotTarget != target || !reflect.DeepEqual(gotArgs, args) {
			t.Errorf("%s: round trip produced %q %v", c.Name, gotTarget, gotArgs)
		}
	}
}

func TestPlanNativeIdentityRejected(t *testing.T) {
	id := detect.Identity{Name: "conhost", Category: detect.CategoryNative, Syntax: detect.SyntaxNativeAPI}
	_, err := NewPlanner(planEnv()).Plan(id, "game", nil)
	if !errors.Is(err, ErrUnsupportedSyntax) {
		t.Errorf("err = %v, want ErrUnsupportedSyntax", err)
	}
}

func TestPlanEmptyTarget(t *testing.T) {
	id := detect.Identity{Name: "xterm", Syntax: detect.SyntaxCommand}
	_, err := NewPlanner(planEnv()).Plan(id, "", nil)
	if !errors.Is(err, ErrEmptyTarget) {
		t.Errorf("err = %v, want ErrEmptyTarget", err)
	}
}

func TestPlanMissingExecutable(t *testing.T) {
	id := detect.Identity{Name: "xterm", Syntax: detect.SyntaxCommand}
	_, err := NewPlanner(&detect.FakeEnv{}).Plan(id, "game", nil)
	if !errors.Is(err, ErrSpawnFailed) {
		t.Errorf("err = %v, want ErrSpawnFailed", err)
	}
}

func TestPlanAbsoluteOverrideBypassesPath(t *testing.T) {
	// An explicit TERMINAL_EMULATOR path need not be on $PATH.
	id := detect.Identity{Name: "/opt/term/bin/myterm", Syntax: detect.SyntaxCommand, Method: detect.MethodEnvironment}
	plan, err := NewPlanner(&detect.FakeEnv{}).Plan(id, "game", nil)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if plan.Path != "/opt/term/bin/myterm" {
		t.Errorf("path = %q", plan.Path)
	}
}

func TestPlanTerminalApp(t *testing.T) {
	id := detect.Identity{Name: "Terminal", Category: detect.CategoryDesktop, Syntax: detect.SyntaxCommand, Method: detect.MethodTerminalApp}
	plan, err := NewPlanner(planEnv()).Plan(id, `/Applications/Game "One"`, nil)
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}
	if plan.Path != "/usr/bin/osascript" {
		t.Errorf("path = %q", plan.Path)
	}
	if len(plan.Args) != 2 || plan.Args[0] != "-e" {
		t.Fatalf("args = %v", plan.Args)
	}
	script := plan.Args[1]
	if !strings.Contains(script, `do script`) || !strings.Contains(script, `\"One\"`) {
		t.Errorf("script quoting wrong: %q", script)
	}
}

func TestBuildCommand(t *testing.T) {
	id := detect.Identity{Name: "konsole", Syntax: detect.SyntaxDashE}
	got := BuildCommand(id, "game", []string{"-v"})
	want := []string{"konsole", "-e", "game", "-v"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("BuildCommand = %v, want %v", got, want)
	}

	native := detect.Identity{Name: "conhost", Syntax: detect.SyntaxNativeAPI}
	if BuildCommand(native, "game", nil) != nil {
		t.Error("native identity should produce no command")
	}
}
