package backdrop

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypePoints    NodeType = iota // one point sprite per vertex
	NodeTypeWireframe                 // line segments from Geometry.Lines
)

// Node is a scene graph element: a transform plus the geometry and material
// it draws. Nodes hold data only; the loop mutates their fields each tick.
type Node struct {
	Name string
	Type NodeType

	// Transform (local). Rotation holds Euler angles in radians, applied in
	// XYZ order.
	Position Vec3
	Rotation Vec3

	Visible bool

	Geometry *Geometry
	Material *Material
}

// NewPoints creates a point-cloud node.
func NewPoints(name string, geom *Geometry, mat *Material) *Node {
	return &Node{Name: name, Type: NodeTypePoints, Visible: true, Geometry: geom, Material: mat}
}

// NewWireframe creates a node that draws the line list of geom.
func NewWireframe(name string, geom *Geometry, mat *Material) *Node {
	return &Node{Name: name, Type: NodeTypeWireframe, Visible: true, Geometry: geom, Material: mat}
}

// ModelMatrix returns the local-to-world transform (translation × rotation).
func (n *Node) ModelMatrix() Mat4 {
	return Mat4Mul(Mat4Translation(n.Position), Mat4Euler(n.Rotation))
}

// Dispose releases the node's geometry and material. Safe to call twice.
func (n *Node) Dispose() {
	if n.Geometry != nil {
		n.Geometry.Dispose()
	}
	if n.Material != nil {
		n.Material.Dispose()
	}
	n.Visible = false
}
