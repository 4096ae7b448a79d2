package gltf

import (
	"github.com/cockroachdb/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"golang.org/x/sync/errgroup"

	"vkbase"
	"vkbase/unsafer"
)

// ModelInfo configures a model load.
type ModelInfo struct {
	Path string
	// Attributes selects the interleaved vertex layout the primitives are
	// read into.
	Attributes AttributeFlags
}

// primitiveData holds the decoded accessors of one glTF primitive before
// interleaving.
type primitiveData struct {
	positions [][3]float32
	normals   [][3]float32
	tangents  [][4]float32
	texCoords [2][][2]float32
	colors    [][4]uint8
	joints    [][4]uint16
	weights   [][4]float32

	indices  []uint32
	material int
}

func (p *primitiveData) vertexCount() int {
	return len(p.positions)
}

// Load parses the glTF document at info.Path and reads its default scene
// (or the first scene when no default is set) into a host side Model.
// Accessors of distinct primitives are decoded concurrently.
func Load(info ModelInfo) (*Model, error) {
	if info.Attributes == 0 {
		return nil, vkbase.ErrUnsupported("glTF load with an empty attribute set")
	}
	doc, err := gltf.Open(info.Path)
	if err != nil {
		return nil, vkbase.ErrPath(info.Path, err)
	}

	scene, err := defaultScene(doc)
	if err != nil {
		return nil, err
	}

	model := &Model{
		Attributes: info.Attributes,
		stride:     info.Attributes.VertexSize(),
	}
	for _, docMaterial := range doc.Materials {
		model.materials = append(model.materials, materialFrom(docMaterial))
	}

	model.nodes = flattenNodes(doc, scene.Nodes)
	if err := model.readMeshes(doc, info.Attributes); err != nil {
		return nil, err
	}
	return model, nil
}

func defaultScene(doc *gltf.Document) (*gltf.Scene, error) {
	if doc.Scene != nil {
		return doc.Scenes[*doc.Scene], nil
	}
	if len(doc.Scenes) > 0 {
		return doc.Scenes[0], nil
	}
	return nil, vkbase.ErrOther(errors.New("glTF document has no scene"))
}

// readMeshes decodes every primitive of every mesh and merges them into the
// model's shared vertex and index streams.
func (m *Model) readMeshes(doc *gltf.Document, flags AttributeFlags) error {
	type meshSlot struct {
		mesh       int
		primitives []*primitiveData
	}

	slots := make([]meshSlot, len(doc.Meshes))
	var group errgroup.Group
	for meshIndex, docMesh := range doc.Meshes {
		slot := &slots[meshIndex]
		slot.mesh = meshIndex
		slot.primitives = make([]*primitiveData, len(docMesh.Primitives))

		for primIndex, docPrim := range docMesh.Primitives {
			primIndex, docPrim := primIndex, docPrim
			group.Go(func() error {
				data, err := readPrimitive(doc, docPrim, flags)
				if err != nil {
					return err
				}
				slot.primitives[primIndex] = data
				return nil
			})
		}
	}
	if err := group.Wait(); err != nil {
		return err
	}

	m.meshes = make([]mesh, len(slots))
	for i, slot := range slots {
		for _, data := range slot.primitives {
			m.meshes[i].primitives = append(m.meshes[i].primitives, m.appendPrimitive(data, flags))
		}
	}
	return nil
}

// appendPrimitive interleaves one decoded primitive at the tail of the
// model's vertex stream and rebases its indices.
func (m *Model) appendPrimitive(data *primitiveData, flags AttributeFlags) primitive {
	firstVertex := uint32(len(m.vertices)) / m.stride

	for v := 0; v < data.vertexCount(); v++ {
		if flags.Has(AttrPosition) {
			m.appendVec(data.positions[v][:])
		}
		if flags.Has(AttrNormal) {
			normal := attrAt(data.normals, v)
			m.appendVec(normal[:])
		}
		if flags.Has(AttrTangent) {
			tangent := attrAt(data.tangents, v)
			m.appendVec(tangent[:])
		}
		if flags.Has(AttrTexCoord0) {
			texCoord := attrAt(data.texCoords[0], v)
			m.appendVec(texCoord[:])
		}
		if flags.Has(AttrTexCoord1) {
			texCoord := attrAt(data.texCoords[1], v)
			m.appendVec(texCoord[:])
		}
		if flags.Has(AttrColor0) {
			color := colorToFloat(attrAt(data.colors, v))
			m.appendVec(color[:])
		}
		if flags.Has(AttrJoints0) {
			joints := attrAt(data.joints, v)
			m.vertices = append(m.vertices, unsafer.SliceToBytes(joints[:])...)
		}
		if flags.Has(AttrWeights0) {
			weights := attrAt(data.weights, v)
			m.appendVec(weights[:])
		}
	}

	prim := primitive{material: data.material}
	if data.indices == nil {
		prim.firstVertex = firstVertex
		prim.vertexCount = uint32(data.vertexCount())
		return prim
	}

	prim.indexed = true
	prim.firstIndex = uint32(len(m.indices))
	prim.indexCount = uint32(len(data.indices))
	for _, index := range data.indices {
		m.indices = append(m.indices, index+firstVertex)
	}
	return prim
}

func (m *Model) appendVec(values []float32) {
	m.vertices = append(m.vertices, unsafer.SliceToBytes(values)...)
}

// attrAt returns the v-th element, or the zero value when the attribute is
// absent from the primitive.
func attrAt[T any](values []T, v int) T {
	if v < len(values) {
		return values[v]
	}
	var zero T
	return zero
}

func colorToFloat(color [4]uint8) [4]float32 {
	return [4]float32{
		float32(color[0]) / 255,
		float32(color[1]) / 255,
		float32(color[2]) / 255,
		float32(color[3]) / 255,
	}
}

func readPrimitive(doc *gltf.Document, docPrim *gltf.Primitive, flags AttributeFlags) (*primitiveData, error) {
	if docPrim.Mode != gltf.PrimitiveTriangles {
		return nil, vkbase.ErrUnsupported("glTF primitive mode other than triangles")
	}

	data := &primitiveData{material: -1}
	if docPrim.Material != nil {
		data.material = int(*docPrim.Material)
	}

	accessor := func(name string) *gltf.Accessor {
		if index, ok := docPrim.Attributes[name]; ok {
			return doc.Accessors[index]
		}
		return nil
	}

	var err error
	if acc := accessor(gltf.POSITION); acc != nil {
		if data.positions, err = modeler.ReadPosition(doc, acc, nil); err != nil {
			return nil, vkbase.ErrOther(err)
		}
	}
	if flags.Has(AttrNormal) {
		if acc := accessor(gltf.NORMAL); acc != nil {
			if data.normals, err = modeler.ReadNormal(doc, acc, nil); err != nil {
				return nil, vkbase.ErrOther(err)
			}
		}
	}
	if flags.Has(AttrTangent) {
		if acc := accessor(gltf.TANGENT); acc != nil {
			if data.tangents, err = modeler.ReadTangent(doc, acc, nil); err != nil {
				return nil, vkbase.ErrOther(err)
			}
		}
	}
	if flags.Has(AttrTexCoord0) {
		if acc := accessor(gltf.TEXCOORD_0); acc != nil {
			if data.texCoords[0], err = modeler.ReadTextureCoord(doc, acc, nil); err != nil {
				return nil, vkbase.ErrOther(err)
			}
		}
	}
	if flags.Has(AttrTexCoord1) {
		if acc := accessor(gltf.TEXCOORD_1); acc != nil {
			if data.texCoords[1], err = modeler.ReadTextureCoord(doc, acc, nil); err != nil {
				return nil, vkbase.ErrOther(err)
			}
		}
	}
	if flags.Has(AttrColor0) {
		if acc := accessor(gltf.COLOR_0); acc != nil {
			if data.colors, err = modeler.ReadColor(doc, acc, nil); err != nil {
				return nil, vkbase.ErrOther(err)
			}
		}
	}
	if flags.Has(AttrJoints0) {
		if acc := accessor(gltf.JOINTS_0); acc != nil {
			if data.joints, err = modeler.ReadJoints(doc, acc, nil); err != nil {
				return nil, vkbase.ErrOther(err)
			}
		}
	}
	if flags.Has(AttrWeights0) {
		if acc := accessor(gltf.WEIGHTS_0); acc != nil {
			if data.weights, err = modeler.ReadWeights(doc, acc, nil); err != nil {
				return nil, vkbase.ErrOther(err)
			}
		}
	}

	if docPrim.Indices != nil {
		if data.indices, err = modeler.ReadIndices(doc, doc.Accessors[*docPrim.Indices], nil); err != nil {
			return nil, vkbase.ErrOther(err)
		}
	}
	return data, nil
}
