package amc

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"mocap-player/internal/motion"
	"mocap-player/internal/skeleton"
)

// Write emits frames [from, to] of m as a fully specified, degree-valued AMC.
// Frames are renumbered from 1. Bones with no dof are omitted.
func Write(w io.Writer, asfName string, sk *skeleton.Skeleton, m *motion.Motion, from, to int) error {
	if to < from {
		return fmt.Errorf("amc: empty range [%d, %d]", from, to)
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "#!OML:ASF %s\n:FULLY-SPECIFIED\n:DEGREES\n", asfName)

	scale := sk.Scale
	if scale == 0 {
		scale = 1
	}

	for f := from; f <= to; f++ {
		fmt.Fprintf(bw, "%d\n", f-from+1)
		p := m.Posture(f)
		for i, b := range sk.Bones {
			if len(b.DOF) == 0 {
				continue
			}
			var s motion.BoneSample
			if i < len(p.Bones) {
				s = p.Bones[i]
			}
			bw.WriteString(b.Name)
			for _, d := range b.DOF {
				var v float64
				switch d {
				case "tx":
					v = s.Translation.X / scale
				case "ty":
					v = s.Translation.Y / scale
				case "tz":
					v = s.Translation.Z / scale
				case "rx":
					v = s.Rotation.X
				case "ry":
					v = s.Rotation.Y
				case "rz":
					v = s.Rotation.Z
				}
				bw.WriteByte(' ')
				bw.WriteString(formatValue(v))
			}
			bw.WriteByte('\n')
		}
	}
	return bw.Flush()
}

// WriteFile is Write to a newly created file.
func WriteFile(path, asfName string, sk *skeleton.Skeleton, m *motion.Motion, from, to int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("amc: create %s: %w", path, err)
	}
	if err := Write(f, asfName, sk, m, from, to); err != nil {
		f.Close()
		return fmt.Errorf("amc: write %s: %w", path, err)
	}
	return f.Close()
}

func formatValue(v float64) string {
	if v == 0 {
		return "0" // avoid "-0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
