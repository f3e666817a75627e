// Package testutil writes small ASF/AMC fixtures for package tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SkeletonASF is a five-bone rig: root, a two-bone spine and a hip/femur leg.
const SkeletonASF = `# tiny rig for tests
:version 1.10
:name VICON
:units
  mass 1.0
  length 1.0
  angle deg
:documentation
   spine and one leg
:root
   order TX TY TZ RX RY RZ
   axis XYZ
   position 0 0 0
   orientation 0 0 0
:bonedata
  begin
     id 1
     name lowerback
     direction 0 1 0
     length 2
     axis 0 0 0  XYZ
    dof rx ry rz
    limits (-180.0 180.0)
           (-180.0 180.0)
           (-180.0 180.0)
  end
  begin
     id 2
     name upperback
     direction 0 1 0
     length 1
     axis 0 0 0  XYZ
    dof rx rz
    limits (-180.0 180.0)
           (-inf inf)
  end
  begin
     id 3
     name lhipjoint
     direction 1 0 0
     length 1.5
     axis 0 0 -20  XYZ
  end
  begin
     id 4
     name lfemur
     direction 0 -1 0
     length 3
     axis 0 0 20  XYZ
    dof rx ry rz
  end
:hierarchy
  begin
    root lowerback lhipjoint
    lowerback upperback
    lhipjoint lfemur
  end
`

// MotionAMC renders an AMC body of n frames (numbered from 1) whose values
// are linear in the frame index f (0-based):
//
//	root      tx=f ty=10 tz=-f  rx=0 ry=2f rz=0
//	lowerback rx=f ry=0 rz=-f
//	upperback rx=3f rz=1
//	lfemur    rx=0 ry=0 rz=5f
func MotionAMC(n int) string {
	var b strings.Builder
	b.WriteString("#!OML:ASF test.asf\n:FULLY-SPECIFIED\n:DEGREES\n")
	for f := 0; f < n; f++ {
		fmt.Fprintf(&b, "%d\n", f+1)
		fmt.Fprintf(&b, "root %d 10 %d 0 %d 0\n", f, -f, 2*f)
		fmt.Fprintf(&b, "lowerback %d 0 %d\n", f, -f)
		fmt.Fprintf(&b, "upperback %d 1\n", 3*f)
		fmt.Fprintf(&b, "lfemur 0 0 %d\n", 5*f)
	}
	return b.String()
}

// WriteFixtures writes SkeletonASF and an n-frame MotionAMC into a temp dir.
func WriteFixtures(t testing.TB, n int) (asfPath, amcPath string) {
	t.Helper()
	dir := t.TempDir()
	asfPath = filepath.Join(dir, "test.asf")
	amcPath = filepath.Join(dir, "test.amc")
	if err := os.WriteFile(asfPath, []byte(SkeletonASF), 0644); err != nil {
		t.Fatalf("write asf: %v", err)
	}
	if err := os.WriteFile(amcPath, []byte(MotionAMC(n)), 0644); err != nil {
		t.Fatalf("write amc: %v", err)
	}
	return asfPath, amcPath
}
