package ui

import (
	"github.com/cockroachdb/errors"
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
	"vkbase/ci"
	"vkbase/command"
	"vkbase/unsafer"
)

// maxPoolGlyphs bounds the vertex buffer; every glyph costs six vertices.
const maxPoolGlyphs = 2048

const verticesPerGlyph = 6

// characterVertex matches the overlay shader's vertex input.
type characterVertex struct {
	Pos   [2]float32
	UV    [2]float32
	Color [4]float32
}

const characterVertexSize = 32

// HorizontalAlign positions a text relative to its location.
type HorizontalAlign int

const (
	AlignLeft HorizontalAlign = iota
	AlignCenter
	AlignRight
)

// TextInfo describes one overlay text.
type TextInfo struct {
	Content string
	// Scale multiplies the base glyph size. Zero means 1.
	Scale    float32
	Align    HorizontalAlign
	Color    [4]float32
	Location vk.Offset2D
}

// TextPool owns the glyph atlas and a host visible vertex buffer the added
// texts expand into. The buffer stays mapped for the pool's lifetime.
type TextPool struct {
	atlas  *GlyphAtlas
	buffer *vkbase.Buffer

	extent     vk.Extent2D
	dpiFactor  float32
	texts      []TextInfo
	glyphCount int
}

// NewTextPool builds the atlas from fontBytes and allocates the vertex pool.
func NewTextPool(dev *vkbase.Device, fontBytes []byte, extent vk.Extent2D, dpiFactor float32) (*TextPool, error) {
	atlas, err := NewGlyphAtlas(dev, fontBytes)
	if err != nil {
		return nil, err
	}

	buffer, err := vkbase.NewBuffer(dev, maxPoolGlyphs*verticesPerGlyph*characterVertexSize,
		vk.BufferUsageFlags(vk.BufferUsageVertexBufferBit),
		vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit))
	if err != nil {
		atlas.Destroy()
		return nil, err
	}
	if _, err := buffer.Map(); err != nil {
		buffer.Destroy()
		atlas.Destroy()
		return nil, err
	}

	if dpiFactor == 0 {
		dpiFactor = 1
	}
	return &TextPool{
		atlas:     atlas,
		buffer:    buffer,
		extent:    extent,
		dpiFactor: dpiFactor,
	}, nil
}

// Atlas exposes the glyph atlas for descriptor setup.
func (p *TextPool) Atlas() *GlyphAtlas {
	return p.atlas
}

// SetExtent updates the screen dimension used for projection, after a
// swapchain recreation.
func (p *TextPool) SetExtent(extent vk.Extent2D) {
	p.extent = extent
}

// AddText registers a text. It fails when a character is missing from the
// atlas or the pool's glyph budget would be exceeded.
func (p *TextPool) AddText(text TextInfo) error {
	runes := []rune(text.Content)
	for _, r := range runes {
		if _, ok := p.atlas.layouts[r]; !ok {
			return vkbase.ErrOther(errors.Newf("character %q is not in the glyph atlas", r))
		}
	}
	if p.glyphCount+len(runes) > maxPoolGlyphs {
		return vkbase.ErrOther(errors.Newf("text pool glyph budget of %d exceeded", maxPoolGlyphs))
	}

	if text.Scale == 0 {
		text.Scale = 1
	}
	text.Scale *= p.dpiFactor
	p.texts = append(p.texts, text)
	p.glyphCount += len(runes)
	return nil
}

// Clear drops all texts, keeping the buffer for reuse.
func (p *TextPool) Clear() {
	p.texts = p.texts[:0]
	p.glyphCount = 0
}

// UpdateTexts expands every text into glyph quads and writes them to the
// vertex buffer. Call it after AddText or SetExtent changes.
func (p *TextPool) UpdateTexts() error {
	vertices := make([]characterVertex, 0, p.glyphCount*verticesPerGlyph)
	for i := range p.texts {
		vertices = p.appendText(vertices, &p.texts[i])
	}
	if len(vertices) == 0 {
		return nil
	}
	return p.buffer.Upload(unsafer.SliceToBytes(vertices))
}

// appendText emits two triangles per glyph in normalized device coordinates.
func (p *TextPool) appendText(vertices []characterVertex, text *TextInfo) []characterVertex {
	screenW := float32(p.extent.Width)
	screenH := float32(p.extent.Height)
	toNDC := func(x, y float32) [2]float32 {
		return [2]float32{x/screenW*2 - 1, y/screenH*2 - 1}
	}

	originX := float32(text.Location.X) - p.alignShift(text)
	originY := float32(text.Location.Y)

	for _, r := range text.Content {
		layout := p.atlas.layouts[r]

		minX := originX + layout.minX*text.Scale
		minY := originY + layout.minY*text.Scale
		maxX := minX + layout.width*text.Scale
		maxY := minY + layout.height*text.Scale

		topLeft := characterVertex{Pos: toNDC(minX, minY), UV: layout.minUV, Color: text.Color}
		bottomLeft := characterVertex{Pos: toNDC(minX, maxY), UV: [2]float32{layout.minUV[0], layout.maxUV[1]}, Color: text.Color}
		bottomRight := characterVertex{Pos: toNDC(maxX, maxY), UV: layout.maxUV, Color: text.Color}
		topRight := characterVertex{Pos: toNDC(maxX, minY), UV: [2]float32{layout.maxUV[0], layout.minUV[1]}, Color: text.Color}

		vertices = append(vertices,
			topLeft, bottomLeft, bottomRight,
			topLeft, bottomRight, topRight)

		originX += layout.advance * text.Scale
	}
	return vertices
}

// alignShift returns how far the text start moves left for its alignment.
func (p *TextPool) alignShift(text *TextInfo) float32 {
	if text.Align == AlignLeft {
		return 0
	}
	var width float32
	for _, r := range text.Content {
		width += p.atlas.layouts[r].advance * text.Scale
	}
	if text.Align == AlignCenter {
		return width / 2
	}
	return width
}

// RecordDraw binds the vertex pool and draws every text.
func (p *TextPool) RecordDraw(g *command.GraphicsRecorder) {
	g.BindVertexBuffer(p.buffer.Handle)

	var firstVertex uint32
	for i := range p.texts {
		count := uint32(len([]rune(p.texts[i].Content))) * verticesPerGlyph
		g.Draw(count, 1, firstVertex, 0)
		firstVertex += count
	}
}

// InputDescriptions returns the vertex input state of characterVertex.
func InputDescriptions() *ci.VertexInputSCI {
	bindings := []vk.VertexInputBindingDescription{{
		Binding:   0,
		Stride:    characterVertexSize,
		InputRate: vk.VertexInputRateVertex,
	}}
	attributes := []vk.VertexInputAttributeDescription{
		{Location: 0, Binding: 0, Format: vk.FormatR32g32Sfloat, Offset: 0},
		{Location: 1, Binding: 0, Format: vk.FormatR32g32Sfloat, Offset: 8},
		{Location: 2, Binding: 0, Format: vk.FormatR32g32b32a32Sfloat, Offset: 16},
	}
	return ci.VertexInput(bindings, attributes)
}

// Destroy releases the vertex pool and the atlas.
func (p *TextPool) Destroy() {
	p.buffer.Unmap()
	p.buffer.Destroy()
	p.atlas.Destroy()
}
