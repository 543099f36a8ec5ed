package registry

import (
	"testing"

	"github.com/vovakirdan/tui-invaders/internal/core"
)

// stubGame is a minimal Game implementation for registry tests.
type stubGame struct {
	id    string
	title string
}

func (g stubGame) ID() string                           { return g.id }
func (g stubGame) Title() string                        { return g.title }
func (g stubGame) Reset(core.RuntimeConfig)             {}
func (g stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g stubGame) Render(*core.Screen)                  {}
func (g stubGame) State() core.GameState                { return core.GameState{} }

func stubFactory(id, title string) Factory {
	return func() Game { return &stubGame{id: id, title: title} }
}

func TestRegisterAndCreate(t *testing.T) {
	Register("stub", stubFactory("stub", "Stub"))

	if !Exists("stub") {
		t.Fatal("Exists should report a registered game")
	}
	if Exists("missing") {
		t.Error("Exists should not report an unregistered game")
	}

	g, err := Create("stub")
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.ID() != "stub" || g.Title() != "Stub" {
		t.Errorf("Create returned %s/%s, expected stub/Stub", g.ID(), g.Title())
	}

	// Each Create hands out a fresh instance
	g2, _ := Create("stub")
	if g == g2 {
		t.Error("Create should return a new instance each time")
	}

	if _, err := Create("missing"); err == nil {
		t.Error("Create should fail for an unregistered game")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Registering the same ID twice should panic")
		}
	}()

	Register("dup", stubFactory("dup", "Dup"))
	Register("dup", stubFactory("dup", "Dup"))
}

func TestListSortedByID(t *testing.T) {
	Register("zz-last", stubFactory("zz-last", "Last"))
	Register("aa-first", stubFactory("aa-first", "First"))

	games := List()
	if len(games) < 2 {
		t.Fatalf("List() returned %d games, expected at least 2", len(games))
	}

	for i := 1; i < len(games); i++ {
		if games[i-1].ID > games[i].ID {
			t.Fatalf("List() not sorted: %q before %q", games[i-1].ID, games[i].ID)
		}
	}

	byID := make(map[string]string, len(games))
	for _, g := range games {
		byID[g.ID] = g.Title
	}
	if byID["aa-first"] != "First" || byID["zz-last"] != "Last" {
		t.Errorf("List() titles wrong: %v", byID)
	}
}
