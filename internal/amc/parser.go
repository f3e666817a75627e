// Package amc reads and writes Acclaim motion capture (AMC) files against a
// skeleton loaded from the matching ASF.
package amc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"mocap-player/internal/motion"
	"mocap-player/internal/skeleton"
)

// ErrNoFrames is returned for a file without any frame blocks.
var ErrNoFrames = errors.New("amc: no frames")

// Parse reads an AMC file from disk.
func Parse(path string, sk *skeleton.Skeleton) (*motion.Motion, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("amc: read %s: %w", path, err)
	}
	defer f.Close()

	m, err := Decode(f, sk)
	if err != nil {
		return nil, fmt.Errorf("amc: parse %s: %w", path, err)
	}
	return m, nil
}

// Decode parses AMC text. Each frame starts with a line holding only the
// frame number; the following lines are "bone v1 v2 ..." with one value per
// dof of that bone (the root follows the ASF :root order). Translations are
// multiplied by the skeleton scale; rotations are kept in degrees.
func Decode(r io.Reader, sk *skeleton.Skeleton) (*motion.Motion, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	radians := false
	var postures []motion.Posture
	var cur *motion.Posture
	line := 0

	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if strings.HasPrefix(text, ":") {
			if strings.EqualFold(text, ":RADIANS") {
				radians = true
			}
			continue
		}

		fields := strings.Fields(text)
		if len(fields) == 1 {
			if _, err := strconv.Atoi(fields[0]); err != nil {
				return nil, fmt.Errorf("line %d: bad frame number %q", line, fields[0])
			}
			postures = append(postures, sk.BasePosture())
			cur = &postures[len(postures)-1]
			continue
		}

		if cur == nil {
			return nil, fmt.Errorf("line %d: bone data before first frame", line)
		}
		idx, ok := sk.BoneIndex(fields[0])
		if !ok {
			return nil, fmt.Errorf("line %d: unknown bone %q", line, fields[0])
		}
		dof := sk.Bones[idx].DOF
		vals := fields[1:]
		if len(vals) != len(dof) {
			return nil, fmt.Errorf("line %d: bone %q has %d values, want %d", line, fields[0], len(vals), len(dof))
		}

		s := &cur.Bones[idx]
		for i, d := range dof {
			v, err := strconv.ParseFloat(vals[i], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad value %q", line, vals[i])
			}
			switch d {
			case "tx":
				s.Translation.X = v * sk.Scale
			case "ty":
				s.Translation.Y = v * sk.Scale
			case "tz":
				s.Translation.Z = v * sk.Scale
			case "rx", "ry", "rz":
				if radians {
					v = v * 180 / math.Pi
				}
				switch d {
				case "rx":
					s.Rotation.X = v
				case "ry":
					s.Rotation.Y = v
				default:
					s.Rotation.Z = v
				}
			}
			// "l" (bone stretch) is accepted and dropped.
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(postures) == 0 {
		return nil, ErrNoFrames
	}
	return motion.FromPostures(postures)
}
