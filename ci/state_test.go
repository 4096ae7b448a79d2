package ci

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestRasterizationDefaults(t *testing.T) {
	s := Rasterization()
	if s.info.PolygonMode != vk.PolygonModeFill {
		t.Errorf("polygon mode %v, want fill", s.info.PolygonMode)
	}
	if s.info.CullMode != vk.CullModeFlags(vk.CullModeBackBit) {
		t.Errorf("cull mode %v, want back", s.info.CullMode)
	}
	if s.info.LineWidth != 1 {
		t.Errorf("line width %v, want 1", s.info.LineWidth)
	}
}

func TestBlendAttachment(t *testing.T) {
	opaque := BlendAttachment(false).State()
	if opaque.BlendEnable == vk.True {
		t.Error("opaque attachment must not blend")
	}
	wantMask := vk.ColorComponentFlags(
		vk.ColorComponentRBit | vk.ColorComponentGBit |
			vk.ColorComponentBBit | vk.ColorComponentABit)
	if opaque.ColorWriteMask != wantMask {
		t.Errorf("write mask %v, want all components", opaque.ColorWriteMask)
	}

	blended := BlendAttachment(true).State()
	if blended.BlendEnable != vk.True {
		t.Error("blended attachment must enable blending")
	}
	if blended.SrcColorBlendFactor != vk.BlendFactorSrcAlpha {
		t.Errorf("src factor %v, want src alpha", blended.SrcColorBlendFactor)
	}
}

func TestDepthStencilToggle(t *testing.T) {
	off := DepthStencil(false)
	if off.info.DepthTestEnable == vk.True || off.info.DepthWriteEnable == vk.True {
		t.Error("disabled state must not test or write depth")
	}
	on := DepthStencil(true)
	if on.info.DepthTestEnable != vk.True || on.info.DepthWriteEnable != vk.True {
		t.Error("enabled state must test and write depth")
	}
	if on.info.DepthCompareOp != vk.CompareOpLessOrEqual {
		t.Errorf("compare op %v, want less-or-equal", on.info.DepthCompareOp)
	}
}

func TestVertexInputCounts(t *testing.T) {
	bindings := []vk.VertexInputBindingDescription{{Binding: 0, Stride: 32}}
	attributes := []vk.VertexInputAttributeDescription{
		{Location: 0, Format: vk.FormatR32g32b32Sfloat},
		{Location: 1, Format: vk.FormatR32g32Sfloat, Offset: 12},
	}
	s := VertexInput(bindings, attributes)
	if s.info.VertexBindingDescriptionCount != 1 {
		t.Errorf("binding count %d, want 1", s.info.VertexBindingDescriptionCount)
	}
	if s.info.VertexAttributeDescriptionCount != 2 {
		t.Errorf("attribute count %d, want 2", s.info.VertexAttributeDescriptionCount)
	}

	empty := VertexInput(nil, nil)
	if empty.info.VertexBindingDescriptionCount != 0 {
		t.Error("nil bindings must yield zero count")
	}
}

func TestColorBlendAttachmentList(t *testing.T) {
	s := ColorBlend().
		AddAttachment(BlendAttachment(false)).
		AddAttachment(BlendAttachment(true))
	info := s.ref()
	if info.AttachmentCount != 2 {
		t.Errorf("attachment count %d, want 2", info.AttachmentCount)
	}
}

func TestDynamicStates(t *testing.T) {
	s := Dynamic(vk.DynamicStateViewport, vk.DynamicStateScissor, vk.DynamicStateLineWidth)
	if s.info.DynamicStateCount != 3 {
		t.Errorf("dynamic state count %d, want 3", s.info.DynamicStateCount)
	}
}

func TestFixedViewportCoversExtent(t *testing.T) {
	s := FixedViewport(vk.Extent2D{Width: 640, Height: 480})
	if len(s.viewports) != 1 || s.viewports[0].Width != 640 || s.viewports[0].Height != 480 {
		t.Errorf("viewport %+v, want 640x480", s.viewports)
	}
	if s.viewports[0].MaxDepth != 1 {
		t.Errorf("max depth %v, want 1", s.viewports[0].MaxDepth)
	}
	if s.scissors[0].Extent.Width != 640 {
		t.Errorf("scissor width %d, want 640", s.scissors[0].Extent.Width)
	}
}

func TestSubmitInfoCounts(t *testing.T) {
	var sem vk.Semaphore
	info := Submit().
		Wait(sem, vk.PipelineStageColorAttachmentOutputBit).
		Signal(sem).
		Info()
	if info.WaitSemaphoreCount != 1 || info.SignalSemaphoreCount != 1 {
		t.Errorf("wait=%d signal=%d, want 1 and 1", info.WaitSemaphoreCount, info.SignalSemaphoreCount)
	}
	if len(info.PWaitDstStageMask) != 1 {
		t.Errorf("stage mask count %d, want one per wait", len(info.PWaitDstStageMask))
	}
}

func TestRenderPassBeginClearValues(t *testing.T) {
	info := BeginRenderPass(vk.NullRenderPass, vk.NullFramebuffer, vk.Extent2D{Width: 100, Height: 100}).
		ClearColor(0, 0, 0, 1).
		ClearDepthStencil(1, 0).
		Info()
	if info.ClearValueCount != 2 {
		t.Errorf("clear value count %d, want 2", info.ClearValueCount)
	}
	if info.RenderArea.Extent.Width != 100 {
		t.Errorf("render area width %d, want 100", info.RenderArea.Extent.Width)
	}
}

func TestImageBarrierDefaults(t *testing.T) {
	b := ImageBarrier(vk.NullImage, vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal).
		Access(0, vk.AccessFlags(vk.AccessTransferWriteBit)).
		SubresourceRange(4, 1).
		Barrier()
	if b.SrcQueueFamilyIndex != vk.QueueFamilyIgnored || b.DstQueueFamilyIndex != vk.QueueFamilyIgnored {
		t.Error("queue family indices must default to ignored")
	}
	if b.SubresourceRange.LevelCount != 4 {
		t.Errorf("level count %d, want 4", b.SubresourceRange.LevelCount)
	}
	if b.NewLayout != vk.ImageLayoutTransferDstOptimal {
		t.Errorf("new layout %v, want transfer dst", b.NewLayout)
	}
}
