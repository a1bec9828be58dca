package cmdline

import "testing"

func TestSegmentPreview(t *testing.T) {
	s := NewSegment("git")
	s.AddFlag("--verbose", "")
	s.PushSubcommand("commit")
	s.AddFlag("-m", "fix")
	s.AddPositional("src/")

	if got, want := s.Preview(), "git --verbose commit -m fix src/"; got != want {
		t.Errorf("Preview() = %q, want %q", got, want)
	}
}

func TestSegmentUndoFollowsHistory(t *testing.T) {
	s := NewSegment("git")
	s.PushSubcommand("log")
	s.AddFlagAtDepth(0, "--no-pager", "")
	s.AddFlag("--oneline", "")

	// undo in reverse commit order: flag at depth 1, flag at depth 0, subcmd
	s.RemoveLast()
	if len(s.Stack[1].Flags) != 0 {
		t.Fatalf("expected depth-1 flag undone, got %+v", s.Stack[1].Flags)
	}
	s.RemoveLast()
	if len(s.Stack[0].Flags) != 0 {
		t.Fatalf("expected depth-0 flag undone, got %+v", s.Stack[0].Flags)
	}
	s.RemoveLast()
	if len(s.Stack) != 1 {
		t.Fatalf("expected subcommand undone, stack depth %d", len(s.Stack))
	}
	// root is never popped
	s.RemoveLast()
	if len(s.Stack) != 1 || s.Stack[0].Name != "git" {
		t.Errorf("root node must survive undo, got %+v", s.Stack)
	}
}

func TestRemoveFlagAtDepth(t *testing.T) {
	s := NewSegment("ls")
	s.AddFlag("-l", "")
	s.AddFlag("-a", "")
	s.AddFlag("-l", "")

	if !s.RemoveFlag("-l") {
		t.Fatal("expected removal of most recent -l")
	}
	if got := len(s.Stack[0].Flags); got != 2 {
		t.Fatalf("expected 2 flags left, got %d", got)
	}
	if s.Stack[0].Flags[0].Form != "-l" || s.Stack[0].Flags[1].Form != "-a" {
		t.Errorf("wrong instance removed: %+v", s.Stack[0].Flags)
	}
	if s.RemoveFlag("--missing") {
		t.Error("removal of unknown flag must report false")
	}
}

func TestSegmentRedirections(t *testing.T) {
	s := NewSegment("sort")
	s.Redirections = append(s.Redirections,
		Redirection{File: "in.txt", Input: true},
		Redirection{File: "out.txt", Append: true},
	)
	if got, want := s.Preview(), "sort < in.txt >> out.txt"; got != want {
		t.Errorf("Preview() = %q, want %q", got, want)
	}
}

func TestCommandLinePreviewSingle(t *testing.T) {
	cl := New()
	cl.FocusedSegment().Root = "cmd1"
	if got := cl.Preview(); got != "cmd1" {
		t.Errorf("Preview() = %q, want %q", got, "cmd1")
	}
}

func TestCommandLinePreviewPipe(t *testing.T) {
	cl := New()
	cl.FocusedSegment().Root = "cmd1"
	cl.AddSegment()
	cl.FocusedSegment().Root = "cmd2"
	if got := cl.Preview(); got != "cmd1 | cmd2" {
		t.Errorf("Preview() = %q, want %q", got, "cmd1 | cmd2")
	}
}

func TestCommandLineFocus(t *testing.T) {
	cl := New()
	cl.AddSegment()
	if cl.Focused != 1 {
		t.Fatalf("focus after AddSegment = %d, want 1", cl.Focused)
	}
	cl.FocusPrev()
	if cl.Focused != 0 {
		t.Fatalf("focus = %d, want 0", cl.Focused)
	}
	cl.FocusPrev()
	if cl.Focused != 0 {
		t.Fatalf("focus must clamp at 0, got %d", cl.Focused)
	}
	cl.FocusNext()
	cl.FocusNext()
	if cl.Focused != 1 {
		t.Fatalf("focus must clamp at last segment, got %d", cl.Focused)
	}
}

func TestCommandLineRemoveSegment(t *testing.T) {
	cl := New()
	cl.FocusedSegment().Root = "cmd1"
	cl.AddSegment()
	cl.RemoveFocusedSegment()
	if len(cl.Segments) != 1 || cl.Focused != 0 {
		t.Fatalf("expected empty segment removed, got %d segments focus %d", len(cl.Segments), cl.Focused)
	}
	// non-empty focused segment is kept
	cl.RemoveFocusedSegment()
	if len(cl.Segments) != 1 {
		t.Fatalf("non-empty segment must not be removed, got %d", len(cl.Segments))
	}
}

func TestFindSubcommand(t *testing.T) {
	def := CommandDef{
		Name: "git",
		Subcommands: []CommandDef{
			{Name: "checkout", Aliases: []string{"co"}},
			{Name: "status"},
		},
	}
	if sc, ok := def.FindSubcommand("co"); !ok || sc.Name != "checkout" {
		t.Errorf("alias lookup failed: %+v %v", sc, ok)
	}
	if _, ok := def.FindSubcommand("push"); ok {
		t.Error("unknown subcommand must not resolve")
	}
}
