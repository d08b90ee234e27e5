package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/binsort/internal/core"
)

type stubGame struct {
	id, title, desc string
	started         string
}

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Resize(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func (g *stubGame) Start(player string) error {
	if player == "" {
		return errors.New("empty name")
	}
	g.started = player
	return nil
}

type describedGame struct {
	stubGame
}

func (g *describedGame) Description() string { return g.desc }

func TestRegisterListsInOrder(t *testing.T) {
	Register("test_zeta", func() Game { return &stubGame{id: "test_zeta", title: "Zeta"} })
	Register("test_alpha", func() Game {
		return &describedGame{stubGame{id: "test_alpha", title: "Alpha", desc: "first letter"}}
	})

	var got []string
	for _, info := range List() {
		if info.ID == "test_zeta" || info.ID == "test_alpha" {
			got = append(got, info.ID)
		}
	}
	if len(got) != 2 || got[0] != "test_zeta" || got[1] != "test_alpha" {
		t.Fatalf("List order = %v, want [test_zeta test_alpha]", got)
	}

	info, ok := Info("test_alpha")
	if !ok {
		t.Fatal("Info(test_alpha) not found")
	}
	if info.Title != "Alpha" || info.Description != "first letter" {
		t.Errorf("Info(test_alpha) = %+v", info)
	}

	info, _ = Info("test_zeta")
	if info.Description != "" {
		t.Errorf("game without Describer got description %q", info.Description)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("test_dup", func() Game { return &stubGame{id: "test_dup"} })

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	Register("test_dup", func() Game { return &stubGame{id: "test_dup"} })
}

func TestCreate(t *testing.T) {
	Register("test_create", func() Game { return &stubGame{id: "test_create", title: "Create"} })

	a, err := Create("test_create")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	b, _ := Create("test_create")
	if a == b {
		t.Error("Create returned the same instance twice")
	}
	if err := a.Start("ann"); err != nil {
		t.Errorf("Start() error = %v", err)
	}

	if _, err := Create("test_missing"); err == nil {
		t.Error("Create(unknown) should fail")
	}
	if Exists("test_missing") {
		t.Error("Exists(unknown) = true")
	}
	if !Exists("test_create") {
		t.Error("Exists(test_create) = false")
	}
}
