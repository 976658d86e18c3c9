package types

import (
	"fmt"
	"strings"
)

// Edge names one of the four sides of a 2D tile or of the global domain
type Edge uint8

const (
	XMin Edge = iota
	XMax
	YMin
	YMax
)

// Edges is the fixed traversal order used wherever edges are applied in sequence
var Edges = [4]Edge{XMin, XMax, YMin, YMax}

var edgeNames = [4]string{"XMin", "XMax", "YMin", "YMax"}

func (e Edge) String() string {
	if int(e) < len(edgeNames) {
		return edgeNames[e]
	}
	return fmt.Sprintf("Edge(%d)", uint8(e))
}

// NewEdge parses an edge name such as "XMin" or "y_max", case insensitive
func NewEdge(name string) (e Edge, err error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "")
	for _, e = range Edges {
		if strings.ToLower(e.String()) == key {
			return
		}
	}
	err = fmt.Errorf("unknown edge: [%s]", name)
	return
}

// IsX is true for the edges normal to the x axis
func (e Edge) IsX() bool { return e == XMin || e == XMax }

// IsMax is true for the upper edge along its axis
func (e Edge) IsMax() bool { return e == XMax || e == YMax }

// Opposite returns the edge on the other side of the same axis
func (e Edge) Opposite() Edge {
	switch e {
	case XMin:
		return XMax
	case XMax:
		return XMin
	case YMin:
		return YMax
	}
	return YMin
}

// EdgeKinds holds one BC kind per edge, indexed by Edge
type EdgeKinds [4]BCKIND

// AnyOpen is true when at least one edge uses the open (characteristic) treatment
func (ek EdgeKinds) AnyOpen() bool {
	for _, k := range ek {
		if k == BC_Open {
			return true
		}
	}
	return false
}

// Validate checks every edge for a supported kind and that periodic edges come in pairs
func (ek EdgeKinds) Validate() (err error) {
	for _, e := range Edges {
		if !ek[e].Valid() {
			err = fmt.Errorf("illegal boundary condition on edge %s: %s", e, ek[e])
			return
		}
	}
	for _, e := range []Edge{XMin, YMin} {
		if (ek[e] == BC_Periodic) != (ek[e.Opposite()] == BC_Periodic) {
			err = fmt.Errorf("periodic boundary on %s requires periodic on %s, have %s",
				e, e.Opposite(), ek[e.Opposite()])
			return
		}
	}
	return
}
