// Package script reads a YAML list of session commands and runs it against a
// session. Besides the session commands a script can capture the playback
// to WebP frames and export a motion span as AMC.
//
//	steps:
//	  - load_actor: walk.asf
//	  - load_motion: walk.amc
//	  - add_keyframe: 12
//	  - add_keyframe: 40
//	  - interpolate
//	  - capture: {output_dir: frames}
//	  - write_amc: blend.amc
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"mocap-player/internal/scene"
	"mocap-player/internal/session"
)

var (
	ErrUnknownStep = errors.New("script: unknown step")
	ErrBadArgument = errors.New("script: bad argument")

	// ErrNotInterpolated is returned by an interpolated export before any
	// interpolation ran.
	ErrNotInterpolated = errors.New("script: no interpolated motion")
)

// Script is a parsed command file.
type Script struct {
	// BaseDir resolves relative paths in the steps. Load sets it to the
	// directory of the script file.
	BaseDir string
	Steps   []Step
}

// Step is one entry of a script. Exactly one of Command, Capture and Export
// is set.
type Step struct {
	Line    int
	Name    string
	Command session.Command
	Capture *Capture
	Export  *Export
}

// Capture records playback from the cursor and writes one WebP per
// displayed frame plus a manifest.
type Capture struct {
	OutputDir string `yaml:"output_dir"`
	Limit     int    `yaml:"limit"`
}

// Export writes a motion span as AMC. Store is "interpolated" (default) or
// "sampled"; the interpolated span is written from its first to last key.
type Export struct {
	Path  string `yaml:"path"`
	Store string `yaml:"store"`
}

type document struct {
	Steps []yaml.Node `yaml:"steps"`
}

// Load parses the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: read %s: %w", path, err)
	}
	sc, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("script: parse %s: %w", path, err)
	}
	sc.BaseDir = filepath.Dir(path)
	return sc, nil
}

// Decode parses a script from r. Unknown top-level keys are rejected.
func Decode(r io.Reader) (*Script, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	sc := &Script{Steps: make([]Step, 0, len(doc.Steps))}
	for i := range doc.Steps {
		st, err := parseStep(&doc.Steps[i])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", doc.Steps[i].Line, err)
		}
		sc.Steps = append(sc.Steps, st)
	}
	return sc, nil
}

func parseStep(n *yaml.Node) (Step, error) {
	st := Step{Line: n.Line}
	var arg *yaml.Node
	switch n.Kind {
	case yaml.ScalarNode:
		st.Name = n.Value
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return st, fmt.Errorf("%w: a step has exactly one key", ErrBadArgument)
		}
		st.Name = n.Content[0].Value
		arg = n.Content[1]
		if arg.ShortTag() == "!!null" {
			arg = nil
		}
	default:
		return st, fmt.Errorf("%w: step must be a name or a one-key map", ErrBadArgument)
	}

	var err error
	switch st.Name {
	case "capture":
		st.Capture = &Capture{}
		err = decodeOptional(arg, st.Capture)
	case "write_amc":
		st.Export = &Export{}
		if arg != nil && arg.Kind == yaml.ScalarNode {
			st.Export.Path = arg.Value
		} else {
			err = decodeOptional(arg, st.Export)
		}
		if err == nil && st.Export.Path == "" {
			err = fmt.Errorf("%w: write_amc needs a path", ErrBadArgument)
		}
		if err == nil {
			switch st.Export.Store {
			case "", "interpolated", "sampled":
			default:
				err = fmt.Errorf("%w: unknown store %q", ErrBadArgument, st.Export.Store)
			}
		}
	default:
		st.Command, err = parseCommand(st.Name, arg)
	}
	if err != nil {
		return st, fmt.Errorf("%s: %w", st.Name, err)
	}
	return st, nil
}

func parseCommand(name string, arg *yaml.Node) (session.Command, error) {
	switch name {
	case "load_actor":
		p, err := str(arg)
		return session.LoadActor{Path: p}, err
	case "load_motion":
		p, err := str(arg)
		return session.LoadMotion{Path: p}, err
	case "add_keyframe":
		if arg != nil && arg.Kind == yaml.ScalarNode && strings.EqualFold(arg.Value, "cursor") {
			return session.AddKeyframe{AtCursor: true}, nil
		}
		f, err := integer(arg)
		return session.AddKeyframe{Frame: f}, err
	case "tick":
		n := 1
		if arg != nil {
			var err error
			if n, err = integer(arg); err != nil {
				return nil, err
			}
		}
		return session.Tick{Count: n}, nil
	case "scrub":
		f, err := integer(arg)
		return session.Scrub{Frame: f}, err
	case "set_frame_increment":
		n, err := integer(arg)
		return session.SetFrameIncrement{N: n}, err
	case "set_time_offset":
		var v struct {
			Subject int `yaml:"subject"`
			Offset  int `yaml:"offset"`
		}
		if arg != nil && arg.Kind == yaml.ScalarNode {
			o, err := integer(arg)
			return session.SetTimeOffset{Offset: o}, err
		}
		err := decodeRequired(arg, &v)
		return session.SetTimeOffset{Subject: v.Subject, Offset: v.Offset}, err
	case "set_transform":
		var v struct {
			Subject int     `yaml:"subject"`
			Tx      float64 `yaml:"tx"`
			Ty      float64 `yaml:"ty"`
			Tz      float64 `yaml:"tz"`
			Rx      float64 `yaml:"rx"`
			Ry      float64 `yaml:"ry"`
			Rz      float64 `yaml:"rz"`
		}
		err := decodeRequired(arg, &v)
		return session.SetTransform{
			Subject:   v.Subject,
			Transform: scene.Transform{Tx: v.Tx, Ty: v.Ty, Tz: v.Tz, Rx: v.Rx, Ry: v.Ry, Rz: v.Rz},
		}, err
	}

	var c session.Command
	switch name {
	case "clear_keyframes":
		c = session.ClearKeyframes{}
	case "interpolate":
		c = session.Interpolate{}
	case "reset":
		c = session.Reset{}
	case "play":
		c = session.Play{}
	case "pause":
		c = session.Pause{}
	case "repeat":
		c = session.Repeat{}
	case "rewind":
		c = session.Rewind{}
	case "locate":
		c = session.Locate{}
	default:
		return nil, ErrUnknownStep
	}
	if arg != nil {
		return nil, fmt.Errorf("%w: takes no argument", ErrBadArgument)
	}
	return c, nil
}

func str(n *yaml.Node) (string, error) {
	if n == nil || n.Kind != yaml.ScalarNode || n.Value == "" {
		return "", fmt.Errorf("%w: expected a path", ErrBadArgument)
	}
	return n.Value, nil
}

func integer(n *yaml.Node) (int, error) {
	var v int
	if n == nil || n.Kind != yaml.ScalarNode {
		return 0, fmt.Errorf("%w: expected an integer", ErrBadArgument)
	}
	if err := n.Decode(&v); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrBadArgument, err)
	}
	return v, nil
}

func decodeRequired(n *yaml.Node, v any) error {
	if n == nil {
		return fmt.Errorf("%w: missing arguments", ErrBadArgument)
	}
	return decodeOptional(n, v)
}

// decodeOptional decodes a mapping strictly; nil leaves v untouched.
func decodeOptional(n *yaml.Node, v any) error {
	if n == nil {
		return nil
	}
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: expected a map", ErrBadArgument)
	}
	// Node.Decode ignores KnownFields, so round-trip through a strict decoder.
	data, err := yaml.Marshal(n)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadArgument, err)
	}
	return nil
}
