package stage

import "math"

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// computeLocalTransform computes the local affine matrix of n.
// Returns [a, b, c, d, tx, ty].
//
//	Translate(-pivot) -> Scale -> Rotate -> Translate(origin)
//
// origin is (X, Y) for pivot-positioned nodes and (X, Y) + pivot otherwise.
func computeLocalTransform(n *Node) [6]float64 {
	s := n.Scale
	sin, cos := math.Sincos(n.Rotation * math.Pi / 180)
	px, py := n.PivotX, n.PivotY
	ox, oy := n.X, n.Y
	if !n.PivotPositioned {
		ox += px
		oy += py
	}

	preTx := -px * s
	preTy := -py * s
	return [6]float64{
		cos * s, sin * s,
		-sin * s, cos * s,
		cos*preTx - sin*preTy + ox,
		sin*preTx + cos*preTy + oy,
	}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// updateWorldTransform recomputes a node's worldTransform and worldAlpha.
// parentRecomputed forces recomputation of clean children of a dirty parent.
func updateWorldTransform(n *Node, parentTransform [6]float64, parentAlpha float64, parentRecomputed bool) {
	recompute := n.transformDirty || parentRecomputed
	if recompute {
		local := computeLocalTransform(n)
		n.worldTransform = multiplyAffine(parentTransform, local)
		n.worldAlpha = parentAlpha * n.Alpha
		n.transformDirty = false
	}

	for _, child := range n.children {
		updateWorldTransform(child, n.worldTransform, n.worldAlpha, recompute)
	}
}
