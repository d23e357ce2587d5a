package detect

// Candidate is one entry in the static fallback table: a known
// terminal emulator name, its category, and the launch syntax it
// accepts. The table is read-only process-wide state.
type Candidate struct {
	Name     string
	Category Category
	Syntax   Syntax
}

// candidates is the ordered fallback table. Category order is the
// tie-break: traditional, then desktop-environment, then modern, then
// extended; first entry present on the search path wins.
var candidates = []Candidate{
	// Traditional X11 and console terminals. All accept a bare
	// trailing command.
	{"xterm", CategoryTraditional, SyntaxCommand},
	{"rxvt", CategoryTraditional, SyntaxCommand},
	{"urxvt", CategoryTraditional, SyntaxCommand},
	{"aterm", CategoryTraditional, SyntaxCommand},
	{"eterm", CategoryTraditional, SyntaxCommand},
	{"pterm", CategoryTraditional, SyntaxCommand},
	{"mrxvt", CategoryTraditional, SyntaxCommand},
	{"st", CategoryTraditional, SyntaxCommand},
	{"mlterm", CategoryTraditional, SyntaxCommand},
	{"fbterm", CategoryTraditional, SyntaxCommand},
	{"kmscon", CategoryTraditional, SyntaxCommand},

	// Desktop-environment terminals.
	{"kgx", CategoryDesktop, SyntaxDashE},
	{"gnome-terminal", CategoryDesktop, SyntaxDoubleDash},
	{"konsole", CategoryDesktop, SyntaxDashE},
	{"xfce4-terminal", CategoryDesktop, SyntaxDashE},
	{"mate-terminal", CategoryDesktop, SyntaxDashE},
	{"lxterminal", CategoryDesktop, SyntaxDashE},
	{"qterminal", CategoryDesktop, SyntaxDashE},
	{"ptyxis", CategoryDesktop, SyntaxDoubleDash},
	{"deepin-terminal", CategoryDesktop, SyntaxDashE},
	{"io.elementary.terminal", CategoryDesktop, SyntaxDashE},

	// Modern GPU-accelerated and cross-platform terminals.
	{"kitty", CategoryModern, SyntaxCommand},
	{"alacritty", CategoryModern, SyntaxDashE},
	{"wezterm", CategoryModern, SyntaxDashE},
	{"ghostty", CategoryModern, SyntaxDashE},
	{"foot", CategoryModern, SyntaxCommand},
	{"rio", CategoryModern, SyntaxDashE},
	{"contour", CategoryModern, SyntaxCommand},
	{"hyper", CategoryModern, SyntaxCommand},
	{"tabby", CategoryModern, SyntaxCommand},
	{"blackbox", CategoryModern, SyntaxDoubleDash},
	{"warp", CategoryModern, SyntaxCommand},
	{"extraterm", CategoryModern, SyntaxCommand},

	// Extended list: drop-downs, tiling wrappers, novelties.
	{"terminator", CategoryExtended, SyntaxDashE},
	{"tilix", CategoryExtended, SyntaxDashE},
	{"guake", CategoryExtended, SyntaxDashE},
	{"yakuake", CategoryExtended, SyntaxDashE},
	{"tilda", CategoryExtended, SyntaxDashE},
	{"terminology", CategoryExtended, SyntaxDashE},
	{"cool-retro-term", CategoryExtended, SyntaxDashE},
	{"sakura", CategoryExtended, SyntaxDashE},
	{"roxterm", CategoryExtended, SyntaxDashE},
	{"edex-ui", CategoryExtended, SyntaxCommand},
}

// byName indexes the table for probe-sourced name lookups.
var byName = func() map[string]Candidate {
	m := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		m[c.Name] = c
	}
	return m
}()

// lookupCandidate returns the table entry for an executable base name.
func lookupCandidate(name string) (Candidate, bool) {
	c, ok := byName[name]
	return c, ok
}

// Candidates returns a copy of the fallback table in search order.
func Candidates() []Candidate {
	out := make([]Candidate, len(candidates))
	copy(out, candidates)
	return out
}
