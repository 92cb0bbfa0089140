package geometry

import (
	"graphdraw/diagram"
)

// Hit-test defaults, tuned by hand for pointer input.
const (
	DefaultEdgeThreshold = 14
	DefaultEdgeSnap      = 10
	DefaultEdgeRatio     = 0.8
)

// Tolerances control how generous edge picking is.
type Tolerances struct {
	EdgeThreshold float64 // max pointer distance to count as on an edge
	EdgeSnap      float64 // edge wins a tie with a node inside this distance
	EdgeRatio     float64 // edge wins when closer than this fraction of the node distance
}

// DefaultTolerances returns the stock hit-test tolerances.
func DefaultTolerances() Tolerances {
	return Tolerances{
		EdgeThreshold: DefaultEdgeThreshold,
		EdgeSnap:      DefaultEdgeSnap,
		EdgeRatio:     DefaultEdgeRatio,
	}
}

// HitKind is what a pointer query landed on.
type HitKind int

// Hit kinds
const (
	HitNone HitKind = iota
	HitNode
	HitEdge
)

func (k HitKind) String() string {
	switch k {
	case HitNode:
		return "node"
	case HitEdge:
		return "edge"
	default:
		return "none"
	}
}

// Hit is the result of resolving a pointer position.
type Hit struct {
	Kind  HitKind
	Index int
}

// NoHit is returned when nothing is under the pointer.
var NoHit = Hit{Kind: HitNone, Index: -1}

// radiusAt returns radii[i], or fallback when the slice is short.
func radiusAt(radii []float64, i int, fallback float64) float64 {
	if i < len(radii) {
		return radii[i]
	}
	return fallback
}

// NodeAt returns the topmost node whose center lies within its radius of
// p. Later nodes are drawn over earlier ones, so they are checked first.
func NodeAt(d *diagram.Drawing, radii []float64, minRadius float64, p diagram.Point) (int, bool) {
	for i := len(d.Nodes) - 1; i >= 0; i-- {
		if d.Nodes[i].Center().Distance(p) <= radiusAt(radii, i, minRadius) {
			return i, true
		}
	}
	return -1, false
}

// EdgeAt returns the most recently added edge whose center-to-center
// segment passes within threshold of p, along with that distance.
func EdgeAt(d *diagram.Drawing, threshold float64, p diagram.Point) (int, float64, bool) {
	for i := len(d.Edges) - 1; i >= 0; i-- {
		a, b, ok := d.Endpoints(d.Edges[i])
		if !ok {
			continue
		}
		if dist := DistanceToSegment(p, a, b); dist <= threshold {
			return i, dist, true
		}
	}
	return -1, 0, false
}

// Resolve picks between a node and an edge at p. Edges are thin, so an
// edge wins a tie when it is very close or clearly closer than the node
// center.
func Resolve(d *diagram.Drawing, radii []float64, minRadius float64, tol Tolerances, p diagram.Point) Hit {
	ni, nodeOK := NodeAt(d, radii, minRadius, p)
	ei, distE, edgeOK := EdgeAt(d, tol.EdgeThreshold, p)

	switch {
	case nodeOK && edgeOK:
		distV := d.Nodes[ni].Center().Distance(p)
		if distE <= tol.EdgeSnap || distE < tol.EdgeRatio*distV {
			return Hit{Kind: HitEdge, Index: ei}
		}
		return Hit{Kind: HitNode, Index: ni}
	case nodeOK:
		return Hit{Kind: HitNode, Index: ni}
	case edgeOK:
		return Hit{Kind: HitEdge, Index: ei}
	default:
		return NoHit
	}
}
