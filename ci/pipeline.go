package ci

import (
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
)

// PipelineLayoutCI builds a vk.PipelineLayout.
type PipelineLayoutCI struct {
	setLayouts    []vk.DescriptorSetLayout
	pushConstants []vk.PushConstantRange
}

// PipelineLayout starts an empty layout create info.
func PipelineLayout() *PipelineLayoutCI {
	return &PipelineLayoutCI{}
}

// AddSetLayout appends a descriptor set layout.
func (p *PipelineLayoutCI) AddSetLayout(layout vk.DescriptorSetLayout) *PipelineLayoutCI {
	p.setLayouts = append(p.setLayouts, layout)
	return p
}

// AddPushConstant appends a push constant range visible to stages.
func (p *PipelineLayoutCI) AddPushConstant(stages vk.ShaderStageFlags, offset, size uint32) *PipelineLayoutCI {
	p.pushConstants = append(p.pushConstants, vk.PushConstantRange{
		StageFlags: stages,
		Offset:     offset,
		Size:       size,
	})
	return p
}

// Build creates the pipeline layout.
func (p *PipelineLayoutCI) Build(dev vk.Device) (vk.PipelineLayout, error) {
	info := vk.PipelineLayoutCreateInfo{
		SType:                  vk.StructureTypePipelineLayoutCreateInfo,
		SetLayoutCount:         uint32(len(p.setLayouts)),
		PSetLayouts:            p.setLayouts,
		PushConstantRangeCount: uint32(len(p.pushConstants)),
		PPushConstantRanges:    p.pushConstants,
	}
	var handle vk.PipelineLayout
	if ret := vk.CreatePipelineLayout(dev, &info, nil, &handle); ret != vk.Success {
		return vk.NullPipelineLayout, vkbase.ErrCreate("pipeline layout", ret)
	}
	return handle, nil
}

// FramebufferCI builds a vk.Framebuffer.
type FramebufferCI struct {
	info        vk.FramebufferCreateInfo
	attachments []vk.ImageView
}

// Framebuffer starts a create info over renderPass at the given extent with
// one layer.
func Framebuffer(renderPass vk.RenderPass, extent vk.Extent2D) *FramebufferCI {
	return &FramebufferCI{
		info: vk.FramebufferCreateInfo{
			SType:      vk.StructureTypeFramebufferCreateInfo,
			RenderPass: renderPass,
			Width:      extent.Width,
			Height:     extent.Height,
			Layers:     1,
		},
	}
}

// AddAttachment appends an image view in attachment order.
func (f *FramebufferCI) AddAttachment(view vk.ImageView) *FramebufferCI {
	f.attachments = append(f.attachments, view)
	return f
}

// Build creates the framebuffer.
func (f *FramebufferCI) Build(dev vk.Device) (vk.Framebuffer, error) {
	f.info.AttachmentCount = uint32(len(f.attachments))
	f.info.PAttachments = f.attachments
	var handle vk.Framebuffer
	if ret := vk.CreateFramebuffer(dev, &f.info, nil, &handle); ret != vk.Success {
		return vk.NullFramebuffer, vkbase.ErrCreate("framebuffer", ret)
	}
	return handle, nil
}

// GraphicsPipelineCI assembles the shader stages and fixed function state of
// one graphics pipeline. Unset states fall back to the package defaults.
type GraphicsPipelineCI struct {
	stages []vk.PipelineShaderStageCreateInfo

	vertexInput   *VertexInputSCI
	inputAssembly *InputAssemblySCI
	viewport      *ViewportSCI
	rasterization *RasterizationSCI
	multisample   *MultisampleSCI
	depthStencil  *DepthStencilSCI
	colorBlend    *ColorBlendSCI
	dynamic       *DynamicSCI

	layout     vk.PipelineLayout
	renderPass vk.RenderPass
	subpass    uint32
}

// GraphicsPipeline starts a pipeline create info against layout and
// renderPass subpass 0.
func GraphicsPipeline(layout vk.PipelineLayout, renderPass vk.RenderPass) *GraphicsPipelineCI {
	return &GraphicsPipelineCI{
		layout:     layout,
		renderPass: renderPass,
	}
}

// AddStage appends a shader stage.
func (g *GraphicsPipelineCI) AddStage(stage *ShaderStageCI) *GraphicsPipelineCI {
	g.stages = append(g.stages, stage.Stage())
	return g
}

// VertexInput sets the vertex input state.
func (g *GraphicsPipelineCI) VertexInput(s *VertexInputSCI) *GraphicsPipelineCI {
	g.vertexInput = s
	return g
}

// InputAssembly sets the input assembly state.
func (g *GraphicsPipelineCI) InputAssembly(s *InputAssemblySCI) *GraphicsPipelineCI {
	g.inputAssembly = s
	return g
}

// Viewport sets the viewport state.
func (g *GraphicsPipelineCI) Viewport(s *ViewportSCI) *GraphicsPipelineCI {
	g.viewport = s
	return g
}

// Rasterization sets the rasterization state.
func (g *GraphicsPipelineCI) Rasterization(s *RasterizationSCI) *GraphicsPipelineCI {
	g.rasterization = s
	return g
}

// Multisample sets the multisample state.
func (g *GraphicsPipelineCI) Multisample(s *MultisampleSCI) *GraphicsPipelineCI {
	g.multisample = s
	return g
}

// DepthStencil sets the depth-stencil state.
func (g *GraphicsPipelineCI) DepthStencil(s *DepthStencilSCI) *GraphicsPipelineCI {
	g.depthStencil = s
	return g
}

// ColorBlend sets the color blend state.
func (g *GraphicsPipelineCI) ColorBlend(s *ColorBlendSCI) *GraphicsPipelineCI {
	g.colorBlend = s
	return g
}

// Dynamic sets the dynamic state list.
func (g *GraphicsPipelineCI) Dynamic(s *DynamicSCI) *GraphicsPipelineCI {
	g.dynamic = s
	return g
}

// Subpass targets a subpass other than 0.
func (g *GraphicsPipelineCI) Subpass(index uint32) *GraphicsPipelineCI {
	g.subpass = index
	return g
}

// Build creates the pipeline. Missing states take the package defaults:
// empty vertex input, triangle list, one dynamic viewport and scissor, fill
// rasterization with back-face culling, single sample, depth off, one
// opaque blend attachment.
func (g *GraphicsPipelineCI) Build(dev vk.Device) (vk.Pipeline, error) {
	if len(g.stages) == 0 {
		return vk.NullPipeline, vkbase.ErrUnsupported("a pipeline without shader stages")
	}

	vertexInput := g.vertexInput
	if vertexInput == nil {
		vertexInput = VertexInput(nil, nil)
	}
	inputAssembly := g.inputAssembly
	if inputAssembly == nil {
		inputAssembly = InputAssembly(vk.PrimitiveTopologyTriangleList)
	}
	viewport := g.viewport
	if viewport == nil {
		viewport = DynamicViewport()
	}
	rasterization := g.rasterization
	if rasterization == nil {
		rasterization = Rasterization()
	}
	multisample := g.multisample
	if multisample == nil {
		multisample = Multisample()
	}
	depthStencil := g.depthStencil
	if depthStencil == nil {
		depthStencil = DepthStencil(false)
	}
	colorBlend := g.colorBlend
	if colorBlend == nil {
		colorBlend = ColorBlend().AddAttachment(BlendAttachment(false))
	}
	dynamic := g.dynamic
	if dynamic == nil {
		dynamic = Dynamic(vk.DynamicStateViewport, vk.DynamicStateScissor)
	}

	info := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(g.stages)),
		PStages:             g.stages,
		PVertexInputState:   vertexInput.ref(),
		PInputAssemblyState: inputAssembly.ref(),
		PViewportState:      viewport.ref(),
		PRasterizationState: rasterization.ref(),
		PMultisampleState:   multisample.ref(),
		PDepthStencilState:  depthStencil.ref(),
		PColorBlendState:    colorBlend.ref(),
		PDynamicState:       dynamic.ref(),
		Layout:              g.layout,
		RenderPass:          g.renderPass,
		Subpass:             g.subpass,
		BasePipelineIndex:   -1,
	}

	pipelines := make([]vk.Pipeline, 1)
	ret := vk.CreateGraphicsPipelines(dev, vk.NullPipelineCache, 1,
		[]vk.GraphicsPipelineCreateInfo{info}, nil, pipelines)
	if ret != vk.Success {
		return vk.NullPipeline, vkbase.ErrCreate("graphics pipeline", ret)
	}
	return pipelines[0], nil
}
