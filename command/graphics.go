package command

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"

	"vkbase/ci"
)

// GraphicsRecorder records the draw path into one command buffer.
type GraphicsRecorder struct {
	Recorder
}

// NewGraphics wraps cmd in a graphics recorder.
func NewGraphics(cmd vk.CommandBuffer) *GraphicsRecorder {
	return &GraphicsRecorder{Recorder{Buffer: cmd}}
}

// BeginRenderPass opens the render pass described by bi with inline contents.
func (g *GraphicsRecorder) BeginRenderPass(bi *ci.RenderPassBI) *GraphicsRecorder {
	info := bi.Info()
	vk.CmdBeginRenderPass(g.Buffer, &info, vk.SubpassContentsInline)
	return g
}

// EndRenderPass closes the current render pass.
func (g *GraphicsRecorder) EndRenderPass() *GraphicsRecorder {
	vk.CmdEndRenderPass(g.Buffer)
	return g
}

// SetViewport sets one full-extent dynamic viewport with depth range 0..1.
func (g *GraphicsRecorder) SetViewport(extent vk.Extent2D) *GraphicsRecorder {
	viewport := vk.Viewport{
		Width:    float32(extent.Width),
		Height:   float32(extent.Height),
		MaxDepth: 1,
	}
	vk.CmdSetViewport(g.Buffer, 0, 1, []vk.Viewport{viewport})
	return g
}

// SetViewportRegion sets one dynamic viewport over a sub-rectangle of the
// framebuffer with depth range 0..1.
func (g *GraphicsRecorder) SetViewportRegion(x, y, width, height float32) *GraphicsRecorder {
	viewport := vk.Viewport{
		X:        x,
		Y:        y,
		Width:    width,
		Height:   height,
		MaxDepth: 1,
	}
	vk.CmdSetViewport(g.Buffer, 0, 1, []vk.Viewport{viewport})
	return g
}

// SetScissor sets one full-extent dynamic scissor.
func (g *GraphicsRecorder) SetScissor(extent vk.Extent2D) *GraphicsRecorder {
	scissor := vk.Rect2D{Extent: extent}
	vk.CmdSetScissor(g.Buffer, 0, 1, []vk.Rect2D{scissor})
	return g
}

// SetLineWidth sets the dynamic line width.
func (g *GraphicsRecorder) SetLineWidth(width float32) *GraphicsRecorder {
	vk.CmdSetLineWidth(g.Buffer, width)
	return g
}

// SetDepthBias sets the dynamic depth bias.
func (g *GraphicsRecorder) SetDepthBias(constant, clamp, slope float32) *GraphicsRecorder {
	vk.CmdSetDepthBias(g.Buffer, constant, clamp, slope)
	return g
}

// SetBlendConstants sets the dynamic blend constants.
func (g *GraphicsRecorder) SetBlendConstants(constants [4]float32) *GraphicsRecorder {
	vk.CmdSetBlendConstants(g.Buffer, constants)
	return g
}

// BindPipeline binds a graphics pipeline.
func (g *GraphicsRecorder) BindPipeline(pipeline vk.Pipeline) *GraphicsRecorder {
	vk.CmdBindPipeline(g.Buffer, vk.PipelineBindPointGraphics, pipeline)
	return g
}

// BindVertexBuffer binds one vertex buffer at binding 0, offset 0.
func (g *GraphicsRecorder) BindVertexBuffer(buffer vk.Buffer) *GraphicsRecorder {
	vk.CmdBindVertexBuffers(g.Buffer, 0, 1, []vk.Buffer{buffer}, []vk.DeviceSize{0})
	return g
}

// BindVertexBuffers binds several vertex buffers starting at firstBinding.
func (g *GraphicsRecorder) BindVertexBuffers(firstBinding uint32, buffers []vk.Buffer, offsets []vk.DeviceSize) *GraphicsRecorder {
	vk.CmdBindVertexBuffers(g.Buffer, firstBinding, uint32(len(buffers)), buffers, offsets)
	return g
}

// BindIndexBuffer binds the index buffer.
func (g *GraphicsRecorder) BindIndexBuffer(buffer vk.Buffer, indexType vk.IndexType) *GraphicsRecorder {
	vk.CmdBindIndexBuffer(g.Buffer, buffer, 0, indexType)
	return g
}

// BindDescriptorSets binds descriptor sets starting at set 0.
func (g *GraphicsRecorder) BindDescriptorSets(layout vk.PipelineLayout, sets ...vk.DescriptorSet) *GraphicsRecorder {
	vk.CmdBindDescriptorSets(g.Buffer, vk.PipelineBindPointGraphics, layout,
		0, uint32(len(sets)), sets, 0, nil)
	return g
}

// BindDescriptorSetsOffset binds descriptor sets with dynamic offsets, for
// dynamic uniform buffers.
func (g *GraphicsRecorder) BindDescriptorSetsOffset(layout vk.PipelineLayout, sets []vk.DescriptorSet, dynamicOffsets []uint32) *GraphicsRecorder {
	vk.CmdBindDescriptorSets(g.Buffer, vk.PipelineBindPointGraphics, layout,
		0, uint32(len(sets)), sets, uint32(len(dynamicOffsets)), dynamicOffsets)
	return g
}

// PushConstants uploads a push constant block visible to stages.
func (g *GraphicsRecorder) PushConstants(layout vk.PipelineLayout, stages vk.ShaderStageFlags, offset uint32, data []byte) *GraphicsRecorder {
	vk.CmdPushConstants(g.Buffer, layout, stages, offset, uint32(len(data)), unsafe.Pointer(&data[0]))
	return g
}

// Draw issues a non-indexed draw.
func (g *GraphicsRecorder) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) *GraphicsRecorder {
	vk.CmdDraw(g.Buffer, vertexCount, instanceCount, firstVertex, firstInstance)
	return g
}

// DrawIndexed issues an indexed draw.
func (g *GraphicsRecorder) DrawIndexed(indexCount, instanceCount, firstIndex uint32, vertexOffset int32, firstInstance uint32) *GraphicsRecorder {
	vk.CmdDrawIndexed(g.Buffer, indexCount, instanceCount, firstIndex, vertexOffset, firstInstance)
	return g
}
