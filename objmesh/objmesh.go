// Package objmesh decodes Wavefront OBJ models into interleaved vertex and
// index slices ready for upload.
package objmesh

import (
	"io"
	"io/fs"
	"os"

	"github.com/mokiat/go-data-front/decoder/obj"
	vk "github.com/vulkan-go/vulkan"
	"github.com/xlab/linmath"

	"vkbase"
	"vkbase/ci"
	"vkbase/command"
	"vkbase/unsafer"
)

// Vertex is the interleaved layout every decoded mesh uses.
type Vertex struct {
	Position linmath.Vec3
	Normal   linmath.Vec3
	TexCoord linmath.Vec2
}

// InputDescription returns the binding and attribute descriptions matching
// Vertex.
func InputDescription() ([]vk.VertexInputBindingDescription, []vk.VertexInputAttributeDescription) {
	bindings := []vk.VertexInputBindingDescription{{
		Binding:   0,
		Stride:    8 * 4,
		InputRate: vk.VertexInputRateVertex,
	}}
	attributes := []vk.VertexInputAttributeDescription{
		{Location: 0, Binding: 0, Format: vk.FormatR32g32b32Sfloat, Offset: 0},
		{Location: 1, Binding: 0, Format: vk.FormatR32g32b32Sfloat, Offset: 3 * 4},
		{Location: 2, Binding: 0, Format: vk.FormatR32g32Sfloat, Offset: 6 * 4},
	}
	return bindings, attributes
}

// Mesh is a decoded model on the host side.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Load decodes the OBJ file at path.
func Load(path string) (*Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, vkbase.ErrPath(path, err)
	}
	defer file.Close()
	mesh, err := Decode(file)
	if err != nil {
		return nil, vkbase.ErrPath(path, err)
	}
	return mesh, nil
}

// LoadFS decodes an OBJ file from an embedded or other fs.FS.
func LoadFS(fsys fs.FS, path string) (*Mesh, error) {
	file, err := fsys.Open(path)
	if err != nil {
		return nil, vkbase.ErrPath(path, err)
	}
	defer file.Close()
	mesh, err := Decode(file)
	if err != nil {
		return nil, vkbase.ErrPath(path, err)
	}
	return mesh, nil
}

// Decode reads OBJ source, triangulates its faces and deduplicates the
// vertex references into an indexed mesh.
func Decode(r io.Reader) (*Mesh, error) {
	model, err := obj.NewDecoder(obj.DefaultLimits()).Decode(r)
	if err != nil {
		return nil, err
	}

	mesh := &Mesh{}
	type refKey struct {
		vertex, normal, texCoord int64
	}
	seen := make(map[refKey]uint32)

	vertexFor := func(ref obj.Reference) uint32 {
		key := refKey{vertex: ref.VertexIndex, normal: -1, texCoord: -1}
		if ref.HasNormal() {
			key.normal = ref.NormalIndex
		}
		if ref.HasTexCoord() {
			key.texCoord = ref.TexCoordIndex
		}
		if index, ok := seen[key]; ok {
			return index
		}

		var v Vertex
		position := model.Vertices[ref.VertexIndex]
		v.Position = linmath.Vec3{float32(position.X), float32(position.Y), float32(position.Z)}
		if ref.HasNormal() {
			normal := model.Normals[ref.NormalIndex]
			v.Normal = linmath.Vec3{float32(normal.X), float32(normal.Y), float32(normal.Z)}
		}
		if ref.HasTexCoord() {
			texCoord := model.TexCoords[ref.TexCoordIndex]
			// OBJ texture space is bottom-up.
			v.TexCoord = linmath.Vec2{float32(texCoord.U), 1 - float32(texCoord.V)}
		}

		index := uint32(len(mesh.Vertices))
		mesh.Vertices = append(mesh.Vertices, v)
		seen[key] = index
		return index
	}

	for _, object := range model.Objects {
		for _, group := range object.Meshes {
			for _, face := range group.Faces {
				refs := face.References
				// Fan triangulation covers quads and larger convex faces.
				for i := 2; i < len(refs); i++ {
					mesh.Indices = append(mesh.Indices,
						vertexFor(refs[0]), vertexFor(refs[i-1]), vertexFor(refs[i]))
				}
			}
		}
	}
	return mesh, nil
}

// DeviceMesh is a mesh uploaded to device local buffers.
type DeviceMesh struct {
	VertexBuffer *vkbase.Buffer
	IndexBuffer  *vkbase.Buffer
	IndexCount   uint32
}

// Upload stages the mesh into device local vertex and index buffers.
func (m *Mesh) Upload(dev *vkbase.Device) (*DeviceMesh, error) {
	vertexBuffer, err := uploadThroughStaging(dev, unsafer.SliceToBytes(m.Vertices),
		vk.BufferUsageVertexBufferBit)
	if err != nil {
		return nil, err
	}
	indexBuffer, err := uploadThroughStaging(dev, unsafer.SliceToBytes(m.Indices),
		vk.BufferUsageIndexBufferBit)
	if err != nil {
		vertexBuffer.Destroy()
		return nil, err
	}
	return &DeviceMesh{
		VertexBuffer: vertexBuffer,
		IndexBuffer:  indexBuffer,
		IndexCount:   uint32(len(m.Indices)),
	}, nil
}

func uploadThroughStaging(dev *vkbase.Device, data []byte, usage vk.BufferUsageFlagBits) (*vkbase.Buffer, error) {
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

// RecordDraw binds the buffers and issues the indexed draw.
func (d *DeviceMesh) RecordDraw(g *command.GraphicsRecorder) {
	g.BindVertexBuffer(d.VertexBuffer.Handle).
		BindIndexBuffer(d.IndexBuffer.Handle, vk.IndexTypeUint32).
		DrawIndexed(d.IndexCount, 1, 0, 0, 0)
}

// Destroy releases both buffers.
func (d *DeviceMesh) Destroy() {
	d.VertexBuffer.Destroy()
	d.IndexBuffer.Destroy()
}
