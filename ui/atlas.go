// Package ui renders a 2D text overlay on top of a scene. A TTF font is
// rasterized once into an R8 glyph atlas; texts expand into textured quads
// drawn by a dedicated alpha blended pipeline.
package ui

import (
	"image"

	vk "github.com/vulkan-go/vulkan"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"vkbase"
	"vkbase/ci"
	"vkbase/command"
)

// glyphPixelSize is the rasterization size of the atlas glyphs.
const glyphPixelSize = 48

// atlasPadding keeps sampling of edge glyphs away from the image border.
const atlasPadding = 20

// The printable ASCII range rendered into the atlas, space included.
const (
	firstGlyph rune = 32
	lastGlyph  rune = 126
)

// glyphLayout records where a glyph lives in the atlas and how to place it
// relative to the text origin. Pixel values are at glyphPixelSize; Y grows
// downward from the top of the line.
type glyphLayout struct {
	minUV [2]float32
	maxUV [2]float32

	minX    float32
	minY    float32
	width   float32
	height  float32
	advance float32
}

// GlyphAtlas is the rasterized font on the device.
type GlyphAtlas struct {
	Image   vk.Image
	View    vk.ImageView
	Sampler vk.Sampler

	memory  vk.DeviceMemory
	extent  vk.Extent2D
	layouts map[rune]glyphLayout
	// lineHeight is ascent plus descent in pixels.
	lineHeight float32

	device *vkbase.Device
}

// NewGlyphAtlas rasterizes the printable ASCII glyphs of a TTF font into an
// R8 image and uploads it for sampling.
func NewGlyphAtlas(dev *vkbase.Device, fontBytes []byte) (*GlyphAtlas, error) {
	parsed, err := opentype.Parse(fontBytes)
	if err != nil {
		return nil, vkbase.ErrOther(err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    glyphPixelSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, vkbase.ErrOther(err)
	}
	defer face.Close()

	atlas := &GlyphAtlas{device: dev}
	pixels := atlas.rasterize(face)
	if err := atlas.upload(dev, pixels); err != nil {
		atlas.Destroy()
		return nil, err
	}
	return atlas, nil
}

// rasterize draws every glyph on one baseline row and fills the layout table.
func (a *GlyphAtlas) rasterize(face font.Face) []byte {
	metrics := face.Metrics()
	ascent := fixedToFloat(metrics.Ascent)
	a.lineHeight = ascent + fixedToFloat(metrics.Descent)

	width := 2 * atlasPadding
	for r := firstGlyph; r <= lastGlyph; r++ {
		if advance, ok := face.GlyphAdvance(r); ok {
			width += int(fixedToFloat(advance)) + 1
		}
	}
	height := 2*atlasPadding + int(a.lineHeight) + 1

	a.extent = vk.Extent2D{Width: uint32(width), Height: uint32(height)}
	a.layouts = make(map[rune]glyphLayout, lastGlyph-firstGlyph+1)
	pixels := make([]byte, width*height)

	dot := fixed.Point26_6{
		X: fixed.I(atlasPadding),
		Y: fixed.I(atlasPadding) + metrics.Ascent,
	}
	for r := firstGlyph; r <= lastGlyph; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(dot, r)
		if !ok {
			continue
		}

		for y := dr.Min.Y; y < dr.Max.Y; y++ {
			for x := dr.Min.X; x < dr.Max.X; x++ {
				_, _, _, alpha := mask.At(maskp.X+x-dr.Min.X, maskp.Y+y-dr.Min.Y).RGBA()
				pixels[y*width+x] = uint8(alpha >> 8)
			}
		}

		a.layouts[r] = a.layoutOf(face, r, dr, ascent, advance)
		dot.X += advance + fixed.I(1)
	}
	return pixels
}

func (a *GlyphAtlas) layoutOf(face font.Face, r rune, dr image.Rectangle, ascent float32, advance fixed.Int26_6) glyphLayout {
	layout := glyphLayout{
		minUV: [2]float32{
			float32(dr.Min.X) / float32(a.extent.Width),
			float32(dr.Min.Y) / float32(a.extent.Height),
		},
		maxUV: [2]float32{
			float32(dr.Max.X) / float32(a.extent.Width),
			float32(dr.Max.Y) / float32(a.extent.Height),
		},
		advance: fixedToFloat(advance),
	}
	if bounds, _, ok := face.GlyphBounds(r); ok {
		layout.minX = fixedToFloat(bounds.Min.X)
		layout.minY = ascent + fixedToFloat(bounds.Min.Y)
		layout.width = fixedToFloat(bounds.Max.X - bounds.Min.X)
		layout.height = fixedToFloat(bounds.Max.Y - bounds.Min.Y)
	}
	return layout
}

func fixedToFloat(v fixed.Int26_6) float32 {
	return float32(v) / 64
}

// upload stages the alpha pixels into a device local sampled image.
func (a *GlyphAtlas) upload(dev *vkbase.Device, pixels []byte) error {
	staging, err := vkbase.NewStagingBuffer(dev, pixels)
	if err != nil {
		return err
	}
	defer staging.Destroy()

	a.Image, err = ci.Image(vk.FormatR8Unorm, a.extent.Width, a.extent.Height).
		Usage(vk.ImageUsageFlags(vk.ImageUsageSampledBit | vk.ImageUsageTransferDstBit)).
		Build(dev.Handle)
	if err != nil {
		return err
	}
	a.memory, err = vkbase.BindImageMemory(dev, a.Image,
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
	if err != nil {
		return err
	}

	recorder, err := command.NewTransfer(dev)
	if err != nil {
		return err
	}
	defer recorder.Destroy()

	region := vk.BufferImageCopy{
		ImageSubresource: vk.ImageSubresourceLayers{
			AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
			LayerCount: 1,
		},
		ImageExtent: vk.Extent3D{Width: a.extent.Width, Height: a.extent.Height, Depth: 1},
	}
	err = recorder.
		ImageBarrier(vk.PipelineStageTopOfPipeBit, vk.PipelineStageTransferBit,
			ci.ImageBarrier(a.Image, vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal).
				Access(0, vk.AccessFlags(vk.AccessTransferWriteBit))).
		CopyBufferToImage(staging.Handle, a.Image, []vk.BufferImageCopy{region}).
		ImageBarrier(vk.PipelineStageTransferBit, vk.PipelineStageFragmentShaderBit,
			ci.ImageBarrier(a.Image, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal).
				Access(vk.AccessFlags(vk.AccessTransferWriteBit), vk.AccessFlags(vk.AccessShaderReadBit))).
		Flush()
	if err != nil {
		return err
	}

	a.View, err = ci.ImageView(a.Image, vk.FormatR8Unorm).Build(dev.Handle)
	if err != nil {
		return err
	}
	a.Sampler, err = ci.Sampler().Build(dev.Handle)
	return err
}

// Descriptor returns the combined image sampler info for descriptor writes.
func (a *GlyphAtlas) Descriptor() vk.DescriptorImageInfo {
	return vk.DescriptorImageInfo{
		Sampler:     a.Sampler,
		ImageView:   a.View,
		ImageLayout: vk.ImageLayoutShaderReadOnlyOptimal,
	}
}

// Destroy releases the atlas image, view, sampler and memory.
func (a *GlyphAtlas) Destroy() {
	dev := a.device.Handle
	if a.Sampler != vk.NullSampler {
		vk.DestroySampler(dev, a.Sampler, nil)
	}
	if a.View != vk.NullImageView {
		vk.DestroyImageView(dev, a.View, nil)
	}
	if a.Image != vk.NullImage {
		vk.DestroyImage(dev, a.Image, nil)
	}
	if a.memory != vk.NullDeviceMemory {
		vk.FreeMemory(dev, a.memory, nil)
	}
}
