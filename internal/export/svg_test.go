package export

import (
	"strings"
	"testing"

	"github.com/san-kum/rigidsim/internal/storage"
)

func TestTrajectorySVG(t *testing.T) {
	tr := &storage.Trajectory{
		IDs:   []int{1, 2},
		Times: []float64{0, 0.1, 0.2},
		Positions: [][][2]float64{
			{{0, 0}, {10, 30}},
			{{0, 1}, {10, 30}},
			{{0, 3}, {10, 30}},
		},
	}

	svg := TrajectorySVG(tr, 200, 100)
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Fatalf("not an svg document: %q", svg)
	}
	for _, want := range []string{`id="body-1"`, `id="body-2"`, `width="200"`} {
		if !strings.Contains(svg, want) {
			t.Errorf("missing %s", want)
		}
	}
	if n := strings.Count(svg, " L"); n != 4 {
		t.Errorf("expected 4 segments, got %d", n)
	}
}

func TestTrajectorySVGTooShort(t *testing.T) {
	tr := &storage.Trajectory{IDs: []int{1}, Times: []float64{0}, Positions: [][][2]float64{{{0, 0}}}}
	if svg := TrajectorySVG(tr, 10, 10); svg != "" {
		t.Errorf("expected empty output, got %q", svg)
	}
	if TrajectorySVG(nil, 10, 10) != "" {
		t.Error("expected empty output for nil")
	}
}
