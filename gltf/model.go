package gltf

import (
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
	"vkbase/command"
	"vkbase/unsafer"
)

type primitive struct {
	indexed bool

	firstIndex  uint32
	indexCount  uint32
	firstVertex uint32
	vertexCount uint32

	material int
}

type mesh struct {
	primitives []primitive
}

// Model is a loaded glTF scene. Before Upload it holds the host side vertex,
// index and node data; after Upload the draw path reads only the device
// buffers.
type Model struct {
	Attributes AttributeFlags

	stride   uint32
	vertices []byte
	indices  []uint32

	nodes     []Node
	meshes    []mesh
	materials []MaterialConstants

	device       *vkbase.Device
	vertexBuffer *vkbase.Buffer
	indexBuffer  *vkbase.Buffer
	nodeBuffer   *vkbase.Buffer
	nodeStride   vk.DeviceSize
}

// RenderParams carries the per draw state RecordDraw binds for every node.
type RenderParams struct {
	DescriptorSet  vk.DescriptorSet
	PipelineLayout vk.PipelineLayout
	// MaterialStage selects the stages receiving the material push constant
	// block. Zero disables material push constants.
	MaterialStage vk.ShaderStageFlags
}

// Nodes exposes the flattened scene nodes.
func (m *Model) Nodes() []Node {
	return m.nodes
}

// VertexCount returns the number of interleaved vertices.
func (m *Model) VertexCount() int {
	if m.stride == 0 {
		return 0
	}
	return len(m.vertices) / int(m.stride)
}

// IndexCount returns the number of indices in the shared index stream.
func (m *Model) IndexCount() int {
	return len(m.indices)
}

// Upload stages the vertex and index streams into device local buffers and
// fills the dynamic uniform buffer of node transforms. The uniform stride is
// the transform size aligned to the device's minimum uniform buffer offset
// alignment.
func (m *Model) Upload(dev *vkbase.Device) error {
	m.device = dev
	m.nodeStride = alignTo(64, dev.Phy.Limits.MinUniformBufferOffsetAlignment)

	var err error
	m.vertexBuffer, err = stageToDevice(dev, m.vertices, vk.BufferUsageVertexBufferBit)
	if err != nil {
		return err
	}
	if len(m.indices) > 0 {
		m.indexBuffer, err = stageToDevice(dev, unsafer.SliceToBytes(m.indices), vk.BufferUsageIndexBufferBit)
		if err != nil {
			return err
		}
	}

	transforms := make([]byte, int(m.nodeStride)*len(m.nodes))
	for i := range m.nodes {
		offset := int(m.nodeStride) * m.nodes[i].uniformSlot
		copy(transforms[offset:], unsafer.StructToBytes(&m.nodes[i].WorldTransform))
	}
	m.nodeBuffer, err = stageToDevice(dev, transforms, vk.BufferUsageUniformBufferBit)
	return err
}

func alignTo(size, alignment vk.DeviceSize) vk.DeviceSize {
	if alignment == 0 {
		return size
	}
	return (size + alignment - 1) &^ (alignment - 1)
}

func stageToDevice(dev *vkbase.Device, data []byte, usage vk.BufferUsageFlagBits) (*vkbase.Buffer, error) {
	staging, err := vkbase.NewStagingBuffer(dev, data)
	if err != nil {
		return nil, err
	}
	defer staging.Destroy()

	local, err := vkbase.NewBuffer(dev, vk.DeviceSize(len(data)),
		vk.BufferUsageFlags(vk.BufferUsageTransferDstBit|usage),
		vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit))
	if err != nil {
		return nil, err
	}

	recorder, err := command.NewTransfer(dev)
	if err != nil {
		local.Destroy()
		return nil, err
	}
	defer recorder.Destroy()

	if err := recorder.CopyBuffer(staging.Handle, local.Handle, staging.Size).Flush(); err != nil {
		local.Destroy()
		return nil, err
	}
	return local, nil
}

// NodeDescriptor returns the buffer info for the dynamic uniform buffer
// binding. The range covers a single node transform; per node addressing
// happens through dynamic offsets.
func (m *Model) NodeDescriptor() vk.DescriptorBufferInfo {
	return vk.DescriptorBufferInfo{
		Buffer: m.nodeBuffer.Handle,
		Offset: 0,
		Range:  m.nodeStride,
	}
}

// RecordDraw walks the scene nodes, rebinding the descriptor set with each
// node's dynamic offset, and draws every primitive of the node's mesh.
func (m *Model) RecordDraw(g *command.GraphicsRecorder, params *RenderParams) {
	g.BindVertexBuffer(m.vertexBuffer.Handle)
	if m.indexBuffer != nil {
		g.BindIndexBuffer(m.indexBuffer.Handle, vk.IndexTypeUint32)
	}

	sets := []vk.DescriptorSet{params.DescriptorSet}
	for i := range m.nodes {
		node := &m.nodes[i]
		offset := uint32(m.nodeStride) * uint32(node.uniformSlot)
		g.BindDescriptorSetsOffset(params.PipelineLayout, sets, []uint32{offset})

		for _, prim := range m.meshes[node.mesh].primitives {
			if params.MaterialStage != 0 {
				material := m.materialOf(prim.material)
				g.PushConstants(params.PipelineLayout, params.MaterialStage, 0, material.Bytes())
			}
			if prim.indexed {
				g.DrawIndexed(prim.indexCount, 1, prim.firstIndex, 0, 0)
			} else {
				g.Draw(prim.vertexCount, 1, prim.firstVertex, 0)
			}
		}
	}
}

func (m *Model) materialOf(index int) *MaterialConstants {
	if index < 0 || index >= len(m.materials) {
		return &defaultMaterial
	}
	return &m.materials[index]
}

// Destroy releases the device buffers. The host side data stays valid.
func (m *Model) Destroy() {
	if m.vertexBuffer != nil {
		m.vertexBuffer.Destroy()
	}
	if m.indexBuffer != nil {
		m.indexBuffer.Destroy()
	}
	if m.nodeBuffer != nil {
		m.nodeBuffer.Destroy()
	}
}
