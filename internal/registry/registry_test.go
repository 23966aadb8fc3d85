package registry

import (
	"testing"

	"github.com/vovakirdan/rewind-arcade/internal/core"
)

type stubGame struct{ id, title string }

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return g.title }
func (g *stubGame) Reset(core.RuntimeConfig)             {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }

func TestRegisterCreateList(t *testing.T) {
	Register("zz-test-b", func() Game { return &stubGame{"zz-test-b", "B"} })
	Register("zz-test-a", func() Game { return &stubGame{"zz-test-a", "A"} })

	if !Exists("zz-test-a") || Exists("zz-test-missing") {
		t.Fatal("Exists disagrees with registrations")
	}

	g, err := Create("zz-test-b")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.Title() != "B" {
		t.Errorf("title = %q, want B", g.Title())
	}

	if _, err := Create("zz-test-missing"); err == nil {
		t.Error("Create of unknown id should fail")
	}

	var ids []string
	for _, info := range List() {
		ids = append(ids, info.ID)
	}
	ia, ib := -1, -1
	for i, id := range ids {
		switch id {
		case "zz-test-a":
			ia = i
		case "zz-test-b":
			ib = i
		}
	}
	if ia < 0 || ib < 0 || ia > ib {
		t.Errorf("List not sorted or incomplete: %v", ids)
	}
}

func TestRegisterPanics(t *testing.T) {
	Register("zz-test-dup", func() Game { return &stubGame{"zz-test-dup", "Dup"} })

	tests := []struct {
		name string
		id   string
	}{
		{"duplicate", "zz-test-dup"},
		{"empty", "  "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Register(%q) did not panic", tt.id)
				}
			}()
			Register(tt.id, func() Game { return &stubGame{tt.id, "X"} })
		})
	}
}
