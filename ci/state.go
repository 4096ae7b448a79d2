package ci

import (
	vk "github.com/vulkan-go/vulkan"
)

// VertexInputSCI is the vertex input state.
type VertexInputSCI struct {
	info vk.PipelineVertexInputStateCreateInfo
}

// VertexInput builds the state from binding and attribute descriptions. Nil
// slices mean no vertex input.
func VertexInput(bindings []vk.VertexInputBindingDescription, attributes []vk.VertexInputAttributeDescription) *VertexInputSCI {
	return &VertexInputSCI{
		info: vk.PipelineVertexInputStateCreateInfo{
			SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
			VertexBindingDescriptionCount:   uint32(len(bindings)),
			PVertexBindingDescriptions:      bindings,
			VertexAttributeDescriptionCount: uint32(len(attributes)),
			PVertexAttributeDescriptions:    attributes,
		},
	}
}

func (s *VertexInputSCI) ref() *vk.PipelineVertexInputStateCreateInfo { return &s.info }

// InputAssemblySCI is the input assembly state.
type InputAssemblySCI struct {
	info vk.PipelineInputAssemblyStateCreateInfo
}

// InputAssembly builds the state for the given primitive topology.
func InputAssembly(topology vk.PrimitiveTopology) *InputAssemblySCI {
	return &InputAssemblySCI{
		info: vk.PipelineInputAssemblyStateCreateInfo{
			SType:    vk.StructureTypePipelineInputAssemblyStateCreateInfo,
			Topology: topology,
		},
	}
}

// PrimitiveRestart enables the restart index for strip topologies.
func (s *InputAssemblySCI) PrimitiveRestart() *InputAssemblySCI {
	s.info.PrimitiveRestartEnable = vk.True
	return s
}

func (s *InputAssemblySCI) ref() *vk.PipelineInputAssemblyStateCreateInfo { return &s.info }

// ViewportSCI is the viewport state.
type ViewportSCI struct {
	info      vk.PipelineViewportStateCreateInfo
	viewports []vk.Viewport
	scissors  []vk.Rect2D
}

// DynamicViewport builds a state with one viewport and one scissor whose
// values come from dynamic state at record time.
func DynamicViewport() *ViewportSCI {
	return &ViewportSCI{
		info: vk.PipelineViewportStateCreateInfo{
			SType:         vk.StructureTypePipelineViewportStateCreateInfo,
			ViewportCount: 1,
			ScissorCount:  1,
		},
	}
}

// FixedViewport builds a state with one static full-extent viewport and
// scissor.
func FixedViewport(extent vk.Extent2D) *ViewportSCI {
	s := &ViewportSCI{
		viewports: []vk.Viewport{{
			Width:    float32(extent.Width),
			Height:   float32(extent.Height),
			MaxDepth: 1,
		}},
		scissors: []vk.Rect2D{{Extent: extent}},
	}
	s.info = vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		PViewports:    s.viewports,
		ScissorCount:  1,
		PScissors:     s.scissors,
	}
	return s
}

func (s *ViewportSCI) ref() *vk.PipelineViewportStateCreateInfo { return &s.info }

// RasterizationSCI is the rasterization state.
type RasterizationSCI struct {
	info vk.PipelineRasterizationStateCreateInfo
}

// Rasterization builds the common state: filled polygons, back-face culling,
// counter-clockwise front faces, line width one.
func Rasterization() *RasterizationSCI {
	return &RasterizationSCI{
		info: vk.PipelineRasterizationStateCreateInfo{
			SType:       vk.StructureTypePipelineRasterizationStateCreateInfo,
			PolygonMode: vk.PolygonModeFill,
			CullMode:    vk.CullModeFlags(vk.CullModeBackBit),
			FrontFace:   vk.FrontFaceCounterClockwise,
			LineWidth:   1,
		},
	}
}

// PolygonMode switches fill, line or point rendering. Line and point need
// the fillModeNonSolid device feature.
func (s *RasterizationSCI) PolygonMode(mode vk.PolygonMode) *RasterizationSCI {
	s.info.PolygonMode = mode
	return s
}

// CullMode replaces the back-face culling default.
func (s *RasterizationSCI) CullMode(mode vk.CullModeFlagBits, front vk.FrontFace) *RasterizationSCI {
	s.info.CullMode = vk.CullModeFlags(mode)
	s.info.FrontFace = front
	return s
}

// DepthBias enables depth biasing with the given constant and slope factors.
func (s *RasterizationSCI) DepthBias(constant, slope float32) *RasterizationSCI {
	s.info.DepthBiasEnable = vk.True
	s.info.DepthBiasConstantFactor = constant
	s.info.DepthBiasSlopeFactor = slope
	return s
}

// LineWidth replaces the width-one default. Widths above one need the
// wideLines device feature.
func (s *RasterizationSCI) LineWidth(width float32) *RasterizationSCI {
	s.info.LineWidth = width
	return s
}

func (s *RasterizationSCI) ref() *vk.PipelineRasterizationStateCreateInfo { return &s.info }

// MultisampleSCI is the multisample state.
type MultisampleSCI struct {
	info vk.PipelineMultisampleStateCreateInfo
}

// Multisample builds the single-sample state.
func Multisample() *MultisampleSCI {
	return &MultisampleSCI{
		info: vk.PipelineMultisampleStateCreateInfo{
			SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
			RasterizationSamples: vk.SampleCount1Bit,
		},
	}
}

// Samples replaces the single-sample default.
func (s *MultisampleSCI) Samples(count vk.SampleCountFlagBits) *MultisampleSCI {
	s.info.RasterizationSamples = count
	return s
}

func (s *MultisampleSCI) ref() *vk.PipelineMultisampleStateCreateInfo { return &s.info }

// DepthStencilSCI is the depth-stencil state.
type DepthStencilSCI struct {
	info vk.PipelineDepthStencilStateCreateInfo
}

// DepthStencil builds the state. With enable, depth test and write use
// less-or-equal comparison; without, both stay off.
func DepthStencil(enable bool) *DepthStencilSCI {
	info := vk.PipelineDepthStencilStateCreateInfo{
		SType:          vk.StructureTypePipelineDepthStencilStateCreateInfo,
		DepthCompareOp: vk.CompareOpLessOrEqual,
	}
	if enable {
		info.DepthTestEnable = vk.True
		info.DepthWriteEnable = vk.True
	}
	return &DepthStencilSCI{info: info}
}

// CompareOp replaces the less-or-equal comparison.
func (s *DepthStencilSCI) CompareOp(op vk.CompareOp) *DepthStencilSCI {
	s.info.DepthCompareOp = op
	return s
}

func (s *DepthStencilSCI) ref() *vk.PipelineDepthStencilStateCreateInfo { return &s.info }

// BlendAttachmentSCI is one color blend attachment state.
type BlendAttachmentSCI struct {
	state vk.PipelineColorBlendAttachmentState
}

// BlendAttachment builds an attachment state writing all color components.
// With blend, standard alpha blending is enabled.
func BlendAttachment(blend bool) *BlendAttachmentSCI {
	state := vk.PipelineColorBlendAttachmentState{
		ColorWriteMask: vk.ColorComponentFlags(
			vk.ColorComponentRBit | vk.ColorComponentGBit |
				vk.ColorComponentBBit | vk.ColorComponentABit),
	}
	if blend {
		state.BlendEnable = vk.True
		state.SrcColorBlendFactor = vk.BlendFactorSrcAlpha
		state.DstColorBlendFactor = vk.BlendFactorOneMinusSrcAlpha
		state.ColorBlendOp = vk.BlendOpAdd
		state.SrcAlphaBlendFactor = vk.BlendFactorOneMinusSrcAlpha
		state.DstAlphaBlendFactor = vk.BlendFactorZero
		state.AlphaBlendOp = vk.BlendOpAdd
	}
	return &BlendAttachmentSCI{state: state}
}

// State returns the finished vk struct.
func (s *BlendAttachmentSCI) State() vk.PipelineColorBlendAttachmentState {
	return s.state
}

// ColorBlendSCI is the color blend state.
type ColorBlendSCI struct {
	info        vk.PipelineColorBlendStateCreateInfo
	attachments []vk.PipelineColorBlendAttachmentState
}

// ColorBlend builds an empty blend state; add one attachment state per
// color attachment of the subpass.
func ColorBlend() *ColorBlendSCI {
	return &ColorBlendSCI{
		info: vk.PipelineColorBlendStateCreateInfo{
			SType: vk.StructureTypePipelineColorBlendStateCreateInfo,
		},
	}
}

// AddAttachment appends an attachment blend state.
func (s *ColorBlendSCI) AddAttachment(attachment *BlendAttachmentSCI) *ColorBlendSCI {
	s.attachments = append(s.attachments, attachment.State())
	return s
}

func (s *ColorBlendSCI) ref() *vk.PipelineColorBlendStateCreateInfo {
	s.info.AttachmentCount = uint32(len(s.attachments))
	s.info.PAttachments = s.attachments
	return &s.info
}

// DynamicSCI is the dynamic state list.
type DynamicSCI struct {
	info   vk.PipelineDynamicStateCreateInfo
	states []vk.DynamicState
}

// Dynamic builds the state from the listed dynamic states.
func Dynamic(states ...vk.DynamicState) *DynamicSCI {
	s := &DynamicSCI{states: states}
	s.info = vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		DynamicStateCount: uint32(len(states)),
		PDynamicStates:    states,
	}
	return s
}

func (s *DynamicSCI) ref() *vk.PipelineDynamicStateCreateInfo { return &s.info }
