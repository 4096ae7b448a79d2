package gltf

import (
	"github.com/qmuntal/gltf"
	"github.com/xlab/linmath"
)

// Node is one flattened scene node that references a mesh. Nodes without a
// mesh anywhere below them are dropped during flattening.
type Node struct {
	Name string
	// WorldTransform is the composed transform from the scene root down to
	// this node.
	WorldTransform linmath.Mat4x4

	mesh int
	// uniformSlot addresses this node's transform in the dynamic uniform
	// buffer: dynamic offset = uniformSlot * aligned stride.
	uniformSlot int
}

// localTransform composes the node transform. glTF nodes carry either an
// explicit column major matrix or translation, rotation and scale.
func localTransform(node *gltf.Node) linmath.Mat4x4 {
	matrix := node.MatrixOrDefault()
	if matrix != gltf.DefaultMatrix {
		var out linmath.Mat4x4
		for col := 0; col < 4; col++ {
			for row := 0; row < 4; row++ {
				out[col][row] = float32(matrix[col*4+row])
			}
		}
		return out
	}
	return composeTRS(node.TranslationOrDefault(), node.RotationOrDefault(), node.ScaleOrDefault())
}

func composeTRS(translation [3]float64, rotation [4]float64, scale [3]float64) linmath.Mat4x4 {
	x := float32(rotation[0])
	y := float32(rotation[1])
	z := float32(rotation[2])
	w := float32(rotation[3])

	// Rotation matrix from the unit quaternion, columns scaled and the
	// translation in the last column.
	var out linmath.Mat4x4
	out[0] = linmath.Vec4{1 - 2*(y*y+z*z), 2 * (x*y + w*z), 2 * (x*z - w*y), 0}
	out[1] = linmath.Vec4{2 * (x*y - w*z), 1 - 2*(x*x+z*z), 2 * (y*z + w*x), 0}
	out[2] = linmath.Vec4{2 * (x*z + w*y), 2 * (y*z - w*x), 1 - 2*(x*x+y*y), 0}
	for col := 0; col < 3; col++ {
		s := float32(scale[col])
		for row := 0; row < 3; row++ {
			out[col][row] *= s
		}
	}
	out[3] = linmath.Vec4{
		float32(translation[0]), float32(translation[1]), float32(translation[2]), 1,
	}
	return out
}

func multiply(a, b linmath.Mat4x4) linmath.Mat4x4 {
	var out linmath.Mat4x4
	out.Mult(&a, &b)
	return out
}

// flattenNodes walks the scene's node trees depth first and collects every
// node carrying a mesh, with its world transform composed on the way down.
func flattenNodes(doc *gltf.Document, rootIndices []uint32) []Node {
	var identity linmath.Mat4x4
	identity.Identity()

	var flat []Node
	var walk func(index uint32, parent linmath.Mat4x4)
	walk = func(index uint32, parent linmath.Mat4x4) {
		docNode := doc.Nodes[index]
		world := multiply(parent, localTransform(docNode))

		if docNode.Mesh != nil {
			flat = append(flat, Node{
				Name:           docNode.Name,
				WorldTransform: world,
				mesh:           int(*docNode.Mesh),
				uniformSlot:    len(flat),
			})
		}
		for _, child := range docNode.Children {
			walk(child, world)
		}
	}
	for _, root := range rootIndices {
		walk(root, identity)
	}
	return flat
}
