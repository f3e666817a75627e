package asf

import "gonum.org/v1/gonum/spatial/r3"

// Units holds the :units section. Lengths in the file are multiplied by
// 1/Length to get inches; the player rescales them again on load.
type Units struct {
	Mass         float64
	Length       float64
	AngleDegrees bool
}

// Root holds the :root section.
type Root struct {
	Order       []string // channel order of root lines in AMC, e.g. TX TY TZ RX RY RZ
	AxisOrder   string   // rotation order of Orientation, e.g. XYZ
	Position    r3.Vec
	Orientation r3.Vec
}

// Bone holds one begin/end block of :bonedata.
type Bone struct {
	ID        int
	Name      string
	Direction r3.Vec // unit vector in global coordinates at the base pose
	Length    float64
	Axis      r3.Vec // local frame rotation, in Units
	AxisOrder string
	DOF       []string // subset of rx ry rz tx ty tz l, in AMC column order
	Limits    [][2]float64
}

// Link is one line of :hierarchy: a parent followed by its children.
type Link struct {
	Parent   string
	Children []string
}

// File is a parsed ASF skeleton.
type File struct {
	Version   string
	Name      string
	Units     Units
	Root      Root
	Bones     []Bone
	Hierarchy []Link
}
