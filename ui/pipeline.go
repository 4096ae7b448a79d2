package ui

import (
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
	"vkbase/ci"
	"vkbase/command"
	"vkbase/spirv"
)

const overlayVertShader = `
#version 450

layout (location = 0) in vec2 inPos;
layout (location = 1) in vec2 inUV;
layout (location = 2) in vec4 inColor;

layout (location = 0) out vec2 outUV;
layout (location = 1) out vec4 outColor;

void main() {
    outUV = inUV;
    outColor = inColor;
    gl_Position = vec4(inPos, 0.0, 1.0);
}
`

const overlayFragShader = `
#version 450

layout (binding = 0) uniform sampler2D fontGlyphs;

layout (location = 0) in vec2 inUV;
layout (location = 1) in vec4 inColor;

layout (location = 0) out vec4 outColor;

void main() {
    float alpha = texture(fontGlyphs, inUV).r;
    outColor = vec4(inColor.rgb, inColor.a * alpha);
}
`

// OverlayRenderPass builds a render pass that draws over an already rendered
// frame: the color attachment is loaded, not cleared, and stays in present
// layout across the pass.
func OverlayRenderPass(dev vk.Device, colorFormat vk.Format) (vk.RenderPass, error) {
	pass := ci.RenderPass()
	color := pass.AddAttachment(vk.AttachmentDescription{
		Format:         colorFormat,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpLoad,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutPresentSrc,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	})
	pass.AddSubpass([]vk.AttachmentReference{
		{Attachment: color, Layout: vk.ImageLayoutColorAttachmentOptimal},
	}, nil)
	pass.AddDependency(vk.SubpassDependency{
		SrcSubpass:    vk.SubpassExternal,
		DstSubpass:    0,
		SrcStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		DstStageMask:  vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		SrcAccessMask: vk.AccessFlags(vk.AccessColorAttachmentWriteBit),
		DstAccessMask: vk.AccessFlags(vk.AccessColorAttachmentReadBit | vk.AccessColorAttachmentWriteBit),
	})
	return pass.Build(dev)
}

// OverlayPipeline draws the text pool with alpha blending.
type OverlayPipeline struct {
	Pipeline vk.Pipeline
	Layout   vk.PipelineLayout

	descriptorPool vk.DescriptorPool
	setLayout      vk.DescriptorSetLayout
	set            vk.DescriptorSet

	device *vkbase.Device
}

// NewOverlayPipeline compiles the overlay shaders, wires the atlas sampler
// into a descriptor set and builds the blended pipeline for renderPass.
func NewOverlayPipeline(dev *vkbase.Device, renderPass vk.RenderPass, atlas *GlyphAtlas) (*OverlayPipeline, error) {
	p := &OverlayPipeline{device: dev}
	if err := p.setupDescriptors(atlas); err != nil {
		p.Destroy()
		return nil, err
	}
	if err := p.setupPipeline(renderPass); err != nil {
		p.Destroy()
		return nil, err
	}
	return p, nil
}

func (p *OverlayPipeline) setupDescriptors(atlas *GlyphAtlas) error {
	var err error
	p.descriptorPool, err = ci.DescriptorPool(1).
		AddSize(vk.DescriptorTypeCombinedImageSampler, 1).
		Build(p.device.Handle)
	if err != nil {
		return err
	}

	p.setLayout, err = ci.DescriptorSetLayout().
		AddBinding(0, vk.DescriptorTypeCombinedImageSampler, 1,
			vk.ShaderStageFlags(vk.ShaderStageFragmentBit)).
		Build(p.device.Handle)
	if err != nil {
		return err
	}

	sets, err := ci.DescriptorSets(p.descriptorPool).
		AddLayout(p.setLayout).
		Build(p.device.Handle)
	if err != nil {
		return err
	}
	p.set = sets[0]

	ci.UpdateDescriptors().
		WriteImage(p.set, 0, vk.DescriptorTypeCombinedImageSampler, atlas.Descriptor()).
		Apply(p.device.Handle)
	return nil
}

func (p *OverlayPipeline) setupPipeline(renderPass vk.RenderPass) error {
	var err error
	p.Layout, err = ci.PipelineLayout().
		AddSetLayout(p.setLayout).
		Build(p.device.Handle)
	if err != nil {
		return err
	}

	vertWords, err := spirv.CompileSource(overlayVertShader, spirv.StageVertex, spirv.CompileOptions{})
	if err != nil {
		return err
	}
	fragWords, err := spirv.CompileSource(overlayFragShader, spirv.StageFragment, spirv.CompileOptions{})
	if err != nil {
		return err
	}

	vertModule, err := ci.ShaderModule(vertWords).Build(p.device.Handle)
	if err != nil {
		return err
	}
	defer vk.DestroyShaderModule(p.device.Handle, vertModule, nil)
	fragModule, err := ci.ShaderModule(fragWords).Build(p.device.Handle)
	if err != nil {
		return err
	}
	defer vk.DestroyShaderModule(p.device.Handle, fragModule, nil)

	p.Pipeline, err = ci.GraphicsPipeline(p.Layout, renderPass).
		AddStage(ci.ShaderStage(vk.ShaderStageVertexBit, vertModule)).
		AddStage(ci.ShaderStage(vk.ShaderStageFragmentBit, fragModule)).
		VertexInput(InputDescriptions()).
		Rasterization(ci.Rasterization().CullMode(vk.CullModeNone, vk.FrontFaceCounterClockwise)).
		ColorBlend(ci.ColorBlend().AddAttachment(ci.BlendAttachment(true))).
		DepthStencil(ci.DepthStencil(false)).
		Build(p.device.Handle)
	return err
}

// Bind readies the overlay draw state on the recorder.
func (p *OverlayPipeline) Bind(g *command.GraphicsRecorder) {
	g.BindPipeline(p.Pipeline).
		BindDescriptorSets(p.Layout, p.set)
}

// Destroy releases the pipeline and its descriptor objects.
func (p *OverlayPipeline) Destroy() {
	dev := p.device.Handle
	if p.Pipeline != vk.NullPipeline {
		vk.DestroyPipeline(dev, p.Pipeline, nil)
	}
	if p.Layout != vk.NullPipelineLayout {
		vk.DestroyPipelineLayout(dev, p.Layout, nil)
	}
	if p.setLayout != vk.NullDescriptorSetLayout {
		vk.DestroyDescriptorSetLayout(dev, p.setLayout, nil)
	}
	if p.descriptorPool != vk.NullDescriptorPool {
		vk.DestroyDescriptorPool(dev, p.descriptorPool, nil)
	}
}
