// Package skeleton builds the shared, read-only bone hierarchy from a parsed
// ASF file and poses it with forward kinematics.
package skeleton

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"mocap-player/internal/asf"
	"mocap-player/internal/mathutil"
	"mocap-player/internal/motion"
)

// RootName is the reserved name of bone 0.
const RootName = "root"

var (
	// ErrUnknownBone is returned when the hierarchy names a bone that has no bonedata.
	ErrUnknownBone = errors.New("skeleton: unknown bone")

	// ErrOrphanBone is returned when a bone is not reachable from the root.
	ErrOrphanBone = errors.New("skeleton: bone not attached to root")
)

// Bone is one node of the hierarchy. Bone 0 is always the root.
type Bone struct {
	Index     int
	Name      string
	Parent    int // -1 for the root
	Children  []int
	Direction r3.Vec  // unit vector, global frame, base pose
	Length    float64 // already scaled
	Axis      mathutil.Mat3
	DOF       []string
	Limits    [][2]float64
	rotOrder  string
}

// Skeleton is shared by every display actor; nothing mutates it after New.
type Skeleton struct {
	Name         string
	Scale        float64
	RootOrder    []string
	RootPosition r3.Vec
	Bones        []Bone

	byName map[string]int
	order  []int // parents before children
}

// Load parses an ASF file and builds the skeleton.
func Load(path string, scale float64) (*Skeleton, error) {
	f, err := asf.Parse(path)
	if err != nil {
		return nil, err
	}
	s, err := New(f, scale)
	if err != nil {
		return nil, fmt.Errorf("skeleton: build %s: %w", path, err)
	}
	return s, nil
}

// New converts a parsed ASF into a skeleton. Lengths and the root position are
// multiplied by scale; axis angles are converted to degrees.
func New(f *asf.File, scale float64) (*Skeleton, error) {
	toDeg := func(v r3.Vec) r3.Vec {
		if f.Units.AngleDegrees {
			return v
		}
		return r3.Scale(180/math.Pi, v)
	}

	rootOrder := f.Root.Order
	if len(rootOrder) == 0 {
		rootOrder = []string{"TX", "TY", "TZ", "RX", "RY", "RZ"}
	}

	s := &Skeleton{
		Name:         f.Name,
		Scale:        scale,
		RootOrder:    rootOrder,
		RootPosition: r3.Scale(scale, f.Root.Position),
		byName:       map[string]int{RootName: 0},
	}
	s.Bones = append(s.Bones, Bone{
		Index:    0,
		Name:     RootName,
		Parent:   -1,
		Axis:     mathutil.EulerDeg(f.Root.AxisOrder, toDeg(f.Root.Orientation)),
		DOF:      lower(rootOrder),
		rotOrder: rotationOrder(rootOrder),
	})

	for _, b := range f.Bones {
		if _, dup := s.byName[b.Name]; dup {
			return nil, fmt.Errorf("duplicate bone %q", b.Name)
		}
		idx := len(s.Bones)
		s.byName[b.Name] = idx
		dir := b.Direction
		if n := r3.Norm(dir); n > 1e-12 {
			dir = r3.Scale(1/n, dir)
		}
		s.Bones = append(s.Bones, Bone{
			Index:     idx,
			Name:      b.Name,
			Parent:    -1,
			Direction: dir,
			Length:    b.Length * scale,
			Axis:      mathutil.EulerDeg(b.AxisOrder, toDeg(b.Axis)),
			DOF:       b.DOF,
			Limits:    b.Limits,
			rotOrder:  rotationOrder(b.DOF),
		})
	}

	for _, link := range f.Hierarchy {
		p, ok := s.byName[link.Parent]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownBone, link.Parent)
		}
		for _, name := range link.Children {
			c, ok := s.byName[name]
			if !ok {
				return nil, fmt.Errorf("%w: %q", ErrUnknownBone, name)
			}
			s.Bones[c].Parent = p
			s.Bones[p].Children = append(s.Bones[p].Children, c)
		}
	}

	s.order = make([]int, 0, len(s.Bones))
	var visit func(i int)
	visit = func(i int) {
		s.order = append(s.order, i)
		for _, c := range s.Bones[i].Children {
			visit(c)
		}
	}
	visit(0)
	if len(s.order) != len(s.Bones) {
		for _, b := range s.Bones[1:] {
			if b.Parent < 0 {
				return nil, fmt.Errorf("%w: %q", ErrOrphanBone, b.Name)
			}
		}
		return nil, ErrOrphanBone
	}

	return s, nil
}

// NumBones returns the bone count including the root.
func (s *Skeleton) NumBones() int {
	return len(s.Bones)
}

// BoneIndex looks a bone up by name.
func (s *Skeleton) BoneIndex(name string) (int, bool) {
	i, ok := s.byName[name]
	return i, ok
}

// BasePosture returns the all-zero posture: every rotation 0, root at the origin.
func (s *Skeleton) BasePosture() motion.Posture {
	return motion.NewPosture(len(s.Bones))
}

// rotationOrder extracts the rotation axis order from a dof/channel list,
// e.g. [rx ry rz] or [TX TY TZ RZ RY RX].
func rotationOrder(dof []string) string {
	var b strings.Builder
	for _, d := range dof {
		d = strings.ToLower(d)
		if len(d) == 2 && d[0] == 'r' {
			b.WriteByte(d[1] - 'a' + 'A')
		}
	}
	if b.Len() == 0 {
		return "XYZ"
	}
	return b.String()
}

func lower(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
