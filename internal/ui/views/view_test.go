package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shardview/internal/ui/state"
)

func TestPlaceBlock(t *testing.T) {
	tests := []struct {
		name  string
		x, y  int
		block string
		want  []string
	}{
		{"inside", 2, 0, "ab", []string{"..ab..", "......"}},
		{"clipped left", -1, 1, "ab", []string{"......", "b....."}},
		{"past bottom", 0, 1, "ab\ncd", []string{"......", "ab...."}},
		{"beyond line end", 8, 0, "ab", []string{"......  ab", "......"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := []string{"......", "......"}
			got := PlaceBlock(base, tt.block, tt.x, tt.y)
			for i := range got {
				got[i] = ansi.Strip(got[i])
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCarouselLayoutHits(t *testing.T) {
	l := NewCarouselLayout(100, 4)
	require.Len(t, l.Dots, 4)

	hit, _ := l.HitControl(l.Prev.Start, l.ControlsRow)
	assert.Equal(t, HitPrev, hit)
	hit, _ = l.HitControl(l.Next.Start, l.ControlsRow)
	assert.Equal(t, HitNext, hit)
	hit, index := l.HitControl(l.Dots[3].Start, l.ControlsRow)
	assert.Equal(t, HitDot, hit)
	assert.Equal(t, 3, index)
	hit, _ = l.HitControl(l.Dots[3].Start, l.ControlsRow-1)
	assert.Equal(t, HitNone, hit)

	assert.True(t, l.InStage(50, l.StageTop))
	assert.False(t, l.InStage(50, l.StageTop+StageHeight))
	assert.False(t, l.InStage(0, l.StageTop))
}

func TestCarouselLayoutLongCollectionUsesCounter(t *testing.T) {
	l := NewCarouselLayout(100, 40)
	assert.Empty(t, l.Dots)
	assert.Greater(t, l.Next.Start, l.Prev.Start)
}

func TestControlsMatchLayout(t *testing.T) {
	l := NewCarouselLayout(80, 3)
	out := NewCarouselRenderer(NewStyles()).Render(CarouselViewState{Index: 1, Len: 3}, l)
	lines := strings.Split(ansi.Strip(out), "\n")
	controls := []rune(lines[len(lines)-1])

	col := func(screen int) rune { return controls[screen-MainPadLeft] }
	assert.Equal(t, '‹', col(l.Prev.Start))
	assert.Equal(t, '›', col(l.Next.Start))
	assert.Equal(t, '○', col(l.Dots[0].Start))
	assert.Equal(t, '●', col(l.Dots[1].Start))
}

func TestCarouselRendersCentreOnTop(t *testing.T) {
	cs := CarouselViewState{
		Len:       3,
		CellWidth: 8,
		Cards: []CarouselCard{
			{Offset: -1, X: -220, Z: 2, Opacity: 0.6, Scale: 0.8, Title: "Left"},
			{Offset: 0, X: 0, Z: 3, Opacity: 1, Scale: 1, Title: "Centre", Description: "Main card"},
			{Offset: 1, X: 220, Z: 2, Opacity: 0.6, Scale: 0.8, Title: "Right"},
		},
	}
	out := ansi.Strip(NewCarouselRenderer(NewStyles()).Render(cs, NewCarouselLayout(120, 3)))
	assert.Contains(t, out, "Centre")
	assert.Contains(t, out, "Main card")
	assert.Contains(t, out, "Left")
	assert.Contains(t, out, "Right")
	assert.Less(t, strings.Index(out, "Left"), strings.Index(out, "Right"))
}

func TestTabHitsFollowTitleLine(t *testing.T) {
	r := NewRenderer()
	line := ansi.Strip(r.renderTitleLine(ViewState{Width: 100, Tab: state.TabProducts}))
	for i, hit := range TabHits(TabLabels()) {
		label := TabLabels()[i]
		assert.Equal(t, label, line[hit.Start-MainPadLeft+1:hit.End-MainPadLeft-1])
	}
}

func TestRenderListStates(t *testing.T) {
	r := NewRenderer()
	base := ViewState{Width: 100, Height: 30, Tab: state.TabProjects}

	loading := base
	loading.List = &ListViewState{Title: "Projects", Loading: true}
	assert.Contains(t, ansi.Strip(r.Render(loading)), "Loading projects...")

	empty := base
	empty.List = &ListViewState{Title: "Projects", EmptyMessage: "Nothing here.", LoadError: "Could not load projects: file not found."}
	out := ansi.Strip(r.Render(empty))
	assert.Contains(t, out, "Nothing here.")
	assert.Contains(t, out, "Press x to clear filters")
	assert.Contains(t, out, "Could not load projects")

	full := base
	full.List = &ListViewState{
		Title:              "Projects",
		Placeholder:        "Search projects...",
		SupportsDeprecated: true,
		ShowDeprecated:     true,
		Categories:         []CategoryChip{{Label: "All Projects", Active: true}, {Label: "go"}},
		Cards: []ListCard{
			{Title: "Alpha", Tags: []string{"go"}, Deprecated: true, Revealed: true, Selected: true, Meta: "2021"},
			{Title: "Beta", Revealed: false},
		},
		Offset: 2,
		Total:  6,
	}
	out = ansi.Strip(r.Render(full))
	assert.Contains(t, out, "▸ Alpha [deprecated]")
	assert.Contains(t, out, "#go")
	assert.Contains(t, out, "2021")
	assert.Contains(t, out, "Beta")
	assert.Contains(t, out, "Search projects...")
	assert.Contains(t, out, "↑ 2 more above ↑")
	assert.Contains(t, out, "↓ 2 more below ↓")
	assert.Contains(t, out, "deprecated shown")
	assert.Contains(t, out, "Press ? for help")
}

func TestListCardAt(t *testing.T) {
	top := MainPadTop + HeaderLines + listChromeLines
	assert.Equal(t, -1, ListCardAt(top-1, false))
	assert.Equal(t, 0, ListCardAt(top, false))
	assert.Equal(t, 1, ListCardAt(top+ListCardLines, false))
	assert.Equal(t, -1, ListCardAt(top, true))
}

func TestPopupKeepsTitleLine(t *testing.T) {
	pr := NewPopupRenderer(NewStyles())
	out := pr.RenderPopupOverlay("line one\nAlpha here\nline three\n\n\n", "popup", "Alpha", 6, 40, NewStyles().DetailBox)
	assert.Contains(t, ansi.Strip(out), "popup")
	assert.Contains(t, ansi.Strip(out), "Alpha here")
}
