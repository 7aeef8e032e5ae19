package replay

import (
	"bytes"
	"errors"
	"go-acquire/entities"
	"go-acquire/game"
	"strings"
	"testing"

	"github.com/fatih/color"
)

const setupLog = `[
	{"type": "START_GAME", "payload": {"playerNames": ["alice", "bob"], "seed": 3}},
	{"type": "DRAW_INITIAL_TILE", "payload": {"playerId": "P1"}},
	{"type": "DRAW_INITIAL_TILE", "payload": {"playerId": "P2"}},
	{"type": "DRAW_INITIAL_TILE", "payload": {"playerId": "P1"}}
]`

func TestRunSkipsRejected(t *testing.T) {
	actions, err := ReadLog(strings.NewReader(setupLog))
	if err != nil {
		t.Fatal(err)
	}
	res := Run(actions)
	if res.Applied != 3 {
		t.Fatalf("applied = %d", res.Applied)
	}
	if len(res.Rejected) != 1 || res.Rejected[0].Index != 3 || !errors.Is(res.Rejected[0].Err, game.ErrRejected) {
		t.Fatalf("rejected = %+v", res.Rejected)
	}
	if len(res.State.InitialTiles) != 2 || len(res.State.Players) != 2 {
		t.Fatalf("state = %+v", res.State.InitialTiles)
	}
}

func TestReadLogErrors(t *testing.T) {
	tests := []struct {
		name string
		log  string
	}{
		{"not json", `{`},
		{"unknown action", `[{"type": "START_GAME"}, {"type": "FLIP_TABLE"}]`},
		{"bad payload", `[{"type": "BUY_STOCK", "payload": {"quantity": "many"}}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadLog(strings.NewReader(tt.log)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRenderBoard(t *testing.T) {
	color.NoColor = true
	state := entities.NewGameState()
	state.PlacedTiles["1A"] = entities.BuildingTile{Coordinate: "1A", IsPlaced: true, Chain: entities.Luxor}
	state.PlacedTiles["2A"] = entities.BuildingTile{Coordinate: "2A", IsPlaced: true, Chain: entities.Luxor}
	state.PlacedTiles["12I"] = entities.BuildingTile{Coordinate: "12I", IsPlaced: true}

	var buf bytes.Buffer
	RenderBoard(&buf, state)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("lines = %d\n%s", len(lines), buf.String())
	}
	if fields := strings.Fields(lines[1]); fields[0] != "A" || fields[1] != "L" || fields[2] != "L" || fields[3] != "." {
		t.Fatalf("row A = %q", lines[1])
	}
	if fields := strings.Fields(lines[9]); fields[0] != "I" || fields[12] != "#" {
		t.Fatalf("row I = %q", lines[9])
	}
}

func TestRenderSummary(t *testing.T) {
	color.NoColor = true
	actions, err := ReadLog(strings.NewReader(setupLog))
	if err != nil {
		t.Fatal(err)
	}
	state := Run(actions).State

	var buf bytes.Buffer
	RenderSummary(&buf, state)
	out := buf.String()
	if !strings.Contains(out, "P1 alice") || !strings.Contains(out, "P2 bob") {
		t.Fatalf("summary:\n%s", out)
	}
	if strings.Contains(out, "排名") {
		t.Fatal("standings shown before game over")
	}
}
