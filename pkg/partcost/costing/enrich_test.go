package costing

import (
	"testing"

	"github.com/ukaji3/partcost-go/pkg/partcost/models"
	"github.com/ukaji3/partcost-go/pkg/partcost/sheet"
)

func TestNestingCounts(t *testing.T) {
	g := sheet.GridFromValues("Nesting  Summary", [][]any{
		{"Section: FRAME   A", "x", "Tube Count: 4"},
		// Beyond the look-ahead window.
		{"Section: Rail", nil, nil, nil, nil, "Tube Count: 9"},
		{nil, "Section: Post", "tube count:2"},
	})

	counts := New(DefaultRules()).NestingCounts(g)
	if len(counts) != 2 || counts["frame a"] != 4 || counts["post"] != 2 {
		t.Errorf("Unexpected counts %v", counts)
	}
}

func TestTubeInfoCounts(t *testing.T) {
	g := sheet.GridFromValues("Tube Info", [][]any{
		{"Section: Rail"},
		{"note"},
		{3},
		{7},
		{"Section: Frame A"},
		{nil, 5},
		{2},
	})

	counts := New(DefaultRules()).TubeInfoCounts(g)
	if len(counts) != 2 || counts["rail"] != 3 || counts["frame a"] != 2 {
		t.Errorf("Unexpected counts %v", counts)
	}
}

func TestCollectTubeCounts(t *testing.T) {
	c := New(DefaultRules())
	nesting := sheet.GridFromValues("Nesting  Summary", [][]any{{"nothing here"}})
	tubeInfo := sheet.GridFromValues("Tube Info", [][]any{{"Section: Rail"}, {6}})

	counts, source := c.CollectTubeCounts(nesting, tubeInfo)
	if source != SourceTubeInfo || counts["rail"] != 6 {
		t.Errorf("Expected tube info fallback, got %v from %q", counts, source)
	}

	counts, source = c.CollectTubeCounts(nil, nil)
	if source != SourceNone || len(counts) != 0 {
		t.Errorf("Expected no counts, got %v from %q", counts, source)
	}
}

func TestApplyTubeCounts(t *testing.T) {
	target := sheet.GridFromValues("Part Info", [][]any{
		{"Section:  Frame A Толщина стенки: 5"},
		{"ID"},
		{"Section: Other"},
	})

	applied, err := New(DefaultRules()).ApplyTubeCounts(target, map[string]int{"frame a": 4})
	if err != nil {
		t.Fatalf("ApplyTubeCounts failed: %v", err)
	}
	if len(applied) != 1 || applied[0] != "frame a" {
		t.Errorf("Unexpected applied sections %v", applied)
	}
	if got := target.Cell(1, 6); got != models.Text("Tube Count: 4") {
		t.Errorf("Unexpected annotation %+v", got)
	}
	if got := target.Cell(3, 6); !got.IsEmpty() {
		t.Errorf("Expected unmatched section untouched, got %+v", got)
	}
}
