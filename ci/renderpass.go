package ci

import (
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
)

// RenderPassCI builds a vk.RenderPass from attachment, subpass and
// dependency descriptions.
type RenderPassCI struct {
	attachments  []vk.AttachmentDescription
	subpasses    []vk.SubpassDescription
	dependencies []vk.SubpassDependency
}

// RenderPass starts an empty render pass create info.
func RenderPass() *RenderPassCI {
	return &RenderPassCI{}
}

// AddAttachment appends an attachment description and returns its index.
func (r *RenderPassCI) AddAttachment(desc vk.AttachmentDescription) uint32 {
	r.attachments = append(r.attachments, desc)
	return uint32(len(r.attachments) - 1)
}

// AddSubpass appends a graphics subpass with the given color attachment
// references and an optional depth reference.
func (r *RenderPassCI) AddSubpass(colors []vk.AttachmentReference, depth *vk.AttachmentReference) *RenderPassCI {
	subpass := vk.SubpassDescription{
		PipelineBindPoint:       vk.PipelineBindPointGraphics,
		ColorAttachmentCount:    uint32(len(colors)),
		PColorAttachments:       colors,
		PDepthStencilAttachment: depth,
	}
	r.subpasses = append(r.subpasses, subpass)
	return r
}

// AddDependency appends a subpass dependency.
func (r *RenderPassCI) AddDependency(dep vk.SubpassDependency) *RenderPassCI {
	r.dependencies = append(r.dependencies, dep)
	return r
}

// Build creates the render pass.
func (r *RenderPassCI) Build(dev vk.Device) (vk.RenderPass, error) {
	info := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(r.attachments)),
		PAttachments:    r.attachments,
		SubpassCount:    uint32(len(r.subpasses)),
		PSubpasses:      r.subpasses,
		DependencyCount: uint32(len(r.dependencies)),
		PDependencies:   r.dependencies,
	}
	var handle vk.RenderPass
	if ret := vk.CreateRenderPass(dev, &info, nil, &handle); ret != vk.Success {
		return vk.NullRenderPass, vkbase.ErrCreate("render pass", ret)
	}
	return handle, nil
}

// ColorAttachment describes a presentable color attachment: clear on load,
// store on end, final layout ready for presentation.
func ColorAttachment(format vk.Format) vk.AttachmentDescription {
	return vk.AttachmentDescription{
		Format:         format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}
}

// DepthAttachment describes a depth-stencil attachment cleared on load and
// dropped at the end of the pass.
func DepthAttachment(format vk.Format) vk.AttachmentDescription {
	return vk.AttachmentDescription{
		Format:         format,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpDontCare,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutDepthStencilAttachmentOptimal,
	}
}

// PresentRenderPass builds the render pass every on-screen example uses: one
// color attachment presented at the end, an optional depth attachment, and
// an external dependency covering both.
func PresentRenderPass(dev vk.Device, colorFormat, depthFormat vk.Format) (vk.RenderPass, error) {
	r := RenderPass()
	colorIdx := r.AddAttachment(ColorAttachment(colorFormat))
	colorRef := []vk.AttachmentReference{{
		Attachment: colorIdx,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}

	var depthRef *vk.AttachmentReference
	stageMask := vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit)
	accessMask := vk.AccessFlags(vk.AccessColorAttachmentWriteBit)
	if depthFormat != vk.FormatUndefined {
		depthIdx := r.AddAttachment(DepthAttachment(depthFormat))
		depthRef = &vk.AttachmentReference{
			Attachment: depthIdx,
			Layout:     vk.ImageLayoutDepthStencilAttachmentOptimal,
		}
		stageMask |= vk.PipelineStageFlags(vk.PipelineStageEarlyFragmentTestsBit)
		accessMask |= vk.AccessFlags(vk.AccessDepthStencilAttachmentWriteBit)
	}

	r.AddSubpass(colorRef, depthRef)
	r.AddDependency(vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  stageMask,
		SrcAccessMask: 0,
		DstStageMask:  stageMask,
		DstAccessMask: accessMask,
	})
	return r.Build(dev)
}

// RenderPassBI builds the begin info consumed by the graphics recorder.
type RenderPassBI struct {
	info   vk.RenderPassBeginInfo
	clears []vk.ClearValue
}

// BeginRenderPass starts a begin info covering the full framebuffer extent.
func BeginRenderPass(renderPass vk.RenderPass, framebuffer vk.Framebuffer, extent vk.Extent2D) *RenderPassBI {
	return &RenderPassBI{
		info: vk.RenderPassBeginInfo{
			SType:       vk.StructureTypeRenderPassBeginInfo,
			RenderPass:  renderPass,
			Framebuffer: framebuffer,
			RenderArea: vk.Rect2D{
				Offset: vk.Offset2D{X: 0, Y: 0},
				Extent: extent,
			},
		},
	}
}

// ClearColor appends a color clear value.
func (b *RenderPassBI) ClearColor(r, g, bl, a float32) *RenderPassBI {
	var clear vk.ClearValue
	clear.SetColor([]float32{r, g, bl, a})
	b.clears = append(b.clears, clear)
	return b
}

// ClearDepthStencil appends a depth-stencil clear value.
func (b *RenderPassBI) ClearDepthStencil(depth float32, stencil uint32) *RenderPassBI {
	var clear vk.ClearValue
	clear.SetDepthStencil(depth, stencil)
	b.clears = append(b.clears, clear)
	return b
}

// Info returns the finished vk struct.
func (b *RenderPassBI) Info() vk.RenderPassBeginInfo {
	b.info.ClearValueCount = uint32(len(b.clears))
	b.info.PClearValues = b.clears
	return b.info
}
