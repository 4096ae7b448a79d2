package ui

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

// testPool builds a pool around a synthetic two-glyph atlas, skipping any
// device work.
func testPool() *TextPool {
	atlas := &GlyphAtlas{
		extent: vk.Extent2D{Width: 100, Height: 100},
		layouts: map[rune]glyphLayout{
			'A': {
				minUV: [2]float32{0, 0}, maxUV: [2]float32{0.1, 0.1},
				minX: 0, minY: 10, width: 10, height: 20, advance: 12,
			},
			'B': {
				minUV: [2]float32{0.1, 0}, maxUV: [2]float32{0.2, 0.1},
				minX: 1, minY: 10, width: 8, height: 20, advance: 10,
			},
			' ': {advance: 6},
		},
	}
	return &TextPool{
		atlas:     atlas,
		extent:    vk.Extent2D{Width: 200, Height: 100},
		dpiFactor: 1,
	}
}

func TestAddTextRejectsUnknownRune(t *testing.T) {
	pool := testPool()
	if err := pool.AddText(TextInfo{Content: "A☃"}); err == nil {
		t.Fatal("expected error for rune outside the atlas")
	}
	if len(pool.texts) != 0 {
		t.Error("rejected text was still added")
	}
}

func TestAddTextBudget(t *testing.T) {
	pool := testPool()
	long := make([]byte, maxPoolGlyphs)
	for i := range long {
		long[i] = 'A'
	}
	if err := pool.AddText(TextInfo{Content: string(long)}); err != nil {
		t.Fatalf("budget-sized text rejected: %v", err)
	}
	if err := pool.AddText(TextInfo{Content: "B"}); err == nil {
		t.Fatal("expected error when exceeding the glyph budget")
	}
}

func TestAddTextDefaultScale(t *testing.T) {
	pool := testPool()
	pool.dpiFactor = 2
	if err := pool.AddText(TextInfo{Content: "A"}); err != nil {
		t.Fatal(err)
	}
	if pool.texts[0].Scale != 2 {
		t.Errorf("scale = %v, want dpi-adjusted 2", pool.texts[0].Scale)
	}
}

func TestAppendTextQuadExpansion(t *testing.T) {
	pool := testPool()
	text := TextInfo{Content: "AB", Scale: 1, Color: [4]float32{1, 0, 0, 1}}
	vertices := pool.appendText(nil, &text)

	if len(vertices) != 2*verticesPerGlyph {
		t.Fatalf("vertex count = %d, want %d", len(vertices), 2*verticesPerGlyph)
	}
	// First glyph's top left: pixel (0, 10) on a 200x100 screen.
	topLeft := vertices[0]
	if topLeft.Pos != [2]float32{-1, -0.8} {
		t.Errorf("top left pos = %v, want [-1 -0.8]", topLeft.Pos)
	}
	if topLeft.UV != [2]float32{0, 0} || topLeft.Color != text.Color {
		t.Errorf("top left vertex = %+v", topLeft)
	}
	// Triangle pair shares the top left and bottom right corners.
	if vertices[0] != vertices[3] || vertices[2] != vertices[4] {
		t.Error("triangles do not share the quad diagonal")
	}
	// Second glyph starts after the first advance: pixel x = 12+1 = 13.
	second := vertices[verticesPerGlyph]
	wantX := float32(13)/200*2 - 1
	if second.Pos[0] != wantX {
		t.Errorf("second glyph x = %v, want %v", second.Pos[0], wantX)
	}
}

func TestAlignShift(t *testing.T) {
	pool := testPool()
	text := TextInfo{Content: "AB", Scale: 1}

	if got := pool.alignShift(&text); got != 0 {
		t.Errorf("left shift = %v, want 0", got)
	}
	text.Align = AlignCenter
	if got := pool.alignShift(&text); got != 11 {
		t.Errorf("center shift = %v, want 11", got)
	}
	text.Align = AlignRight
	if got := pool.alignShift(&text); got != 22 {
		t.Errorf("right shift = %v, want 22", got)
	}
}

func TestClearResetsBudget(t *testing.T) {
	pool := testPool()
	if err := pool.AddText(TextInfo{Content: "A B"}); err != nil {
		t.Fatal(err)
	}
	if pool.glyphCount != 3 {
		t.Fatalf("glyph count = %d, want 3", pool.glyphCount)
	}
	pool.Clear()
	if pool.glyphCount != 0 || len(pool.texts) != 0 {
		t.Error("clear did not reset the pool")
	}
}
