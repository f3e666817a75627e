package asf

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// ErrNoRoot is returned when a file has no :root section.
var ErrNoRoot = errors.New("asf: missing :root section")

// Parse reads an ASF file from disk.
func Parse(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("asf: read %s: %w", path, err)
	}
	defer f.Close()

	file, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("asf: parse %s: %w", path, err)
	}
	return file, nil
}

// Decode parses ASF text.
func Decode(r io.Reader) (*File, error) {
	p := &parser{sc: bufio.NewScanner(r)}
	return p.parse()
}

type parser struct {
	sc      *bufio.Scanner
	line    int
	pending []string // a line read ahead but not yet consumed
}

// next returns the fields of the next non-blank, non-comment line.
func (p *parser) next() ([]string, bool) {
	if p.pending != nil {
		f := p.pending
		p.pending = nil
		return f, true
	}
	for p.sc.Scan() {
		p.line++
		text := p.sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		return fields, true
	}
	return nil, false
}

func (p *parser) unread(fields []string) {
	p.pending = fields
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("line %d: %s", p.line, fmt.Sprintf(format, args...))
}

func (p *parser) parse() (*File, error) {
	file := &File{
		Units: Units{Mass: 1, Length: 1, AngleDegrees: true},
		Root:  Root{AxisOrder: "XYZ"},
	}
	sawRoot := false

	for {
		fields, ok := p.next()
		if !ok {
			break
		}
		if !strings.HasPrefix(fields[0], ":") {
			return nil, p.errorf("unexpected %q outside a section", fields[0])
		}

		var err error
		switch strings.ToLower(fields[0]) {
		case ":version":
			if len(fields) > 1 {
				file.Version = fields[1]
			}
		case ":name":
			if len(fields) > 1 {
				file.Name = strings.Join(fields[1:], " ")
			}
		case ":units":
			err = p.parseUnits(&file.Units)
		case ":documentation":
			p.skipSection()
		case ":root":
			sawRoot = true
			err = p.parseRoot(&file.Root)
		case ":bonedata":
			file.Bones, err = p.parseBones()
		case ":hierarchy":
			file.Hierarchy, err = p.parseHierarchy()
		default:
			p.skipSection()
		}
		if err != nil {
			return nil, err
		}
	}
	if err := p.sc.Err(); err != nil {
		return nil, err
	}
	if !sawRoot {
		return nil, ErrNoRoot
	}
	return file, nil
}

// skipSection consumes lines until the next ":" keyword.
func (p *parser) skipSection() {
	for {
		fields, ok := p.next()
		if !ok {
			return
		}
		if strings.HasPrefix(fields[0], ":") {
			p.unread(fields)
			return
		}
	}
}

func (p *parser) parseUnits(u *Units) error {
	for {
		fields, ok := p.next()
		if !ok {
			return nil
		}
		if strings.HasPrefix(fields[0], ":") {
			p.unread(fields)
			return nil
		}
		if len(fields) < 2 {
			return p.errorf("units entry %q has no value", fields[0])
		}
		switch strings.ToLower(fields[0]) {
		case "mass":
			v, err := p.float(fields[1])
			if err != nil {
				return err
			}
			u.Mass = v
		case "length":
			v, err := p.float(fields[1])
			if err != nil {
				return err
			}
			u.Length = v
		case "angle":
			u.AngleDegrees = !strings.HasPrefix(strings.ToLower(fields[1]), "rad")
		}
	}
}

func (p *parser) parseRoot(root *Root) error {
	for {
		fields, ok := p.next()
		if !ok {
			return nil
		}
		if strings.HasPrefix(fields[0], ":") {
			p.unread(fields)
			return nil
		}
		var err error
		switch strings.ToLower(fields[0]) {
		case "order":
			root.Order = upper(fields[1:])
		case "axis":
			if len(fields) > 1 {
				root.AxisOrder = strings.ToUpper(fields[1])
			}
		case "position":
			root.Position, err = p.vec(fields[1:])
		case "orientation":
			root.Orientation, err = p.vec(fields[1:])
		}
		if err != nil {
			return err
		}
	}
}

func (p *parser) parseBones() ([]Bone, error) {
	var bones []Bone
	for {
		fields, ok := p.next()
		if !ok {
			return bones, nil
		}
		if strings.HasPrefix(fields[0], ":") {
			p.unread(fields)
			return bones, nil
		}
		if strings.ToLower(fields[0]) != "begin" {
			return nil, p.errorf("expected begin, got %q", fields[0])
		}
		b, err := p.parseBone()
		if err != nil {
			return nil, err
		}
		bones = append(bones, b)
	}
}

func (p *parser) parseBone() (Bone, error) {
	b := Bone{AxisOrder: "XYZ"}
	for {
		fields, ok := p.next()
		if !ok {
			return b, p.errorf("bone %q: missing end", b.Name)
		}
		var err error
		switch strings.ToLower(fields[0]) {
		case "end":
			if b.Name == "" {
				return b, p.errorf("bone without name")
			}
			if len(b.Limits) > len(b.DOF) {
				return b, p.errorf("bone %q: %d limits for %d dof", b.Name, len(b.Limits), len(b.DOF))
			}
			return b, nil
		case "id":
			if len(fields) < 2 {
				return b, p.errorf("id without value")
			}
			b.ID, err = strconv.Atoi(fields[1])
			if err != nil {
				return b, p.errorf("bad id %q", fields[1])
			}
		case "name":
			if len(fields) < 2 {
				return b, p.errorf("name without value")
			}
			b.Name = fields[1]
		case "direction":
			b.Direction, err = p.vec(fields[1:])
		case "length":
			if len(fields) < 2 {
				return b, p.errorf("length without value")
			}
			b.Length, err = p.float(fields[1])
		case "axis":
			if len(fields) < 4 {
				return b, p.errorf("bone %q: axis needs three angles", b.Name)
			}
			b.Axis, err = p.vec(fields[1:4])
			if len(fields) > 4 {
				b.AxisOrder = strings.ToUpper(fields[4])
			}
		case "dof":
			b.DOF = lower(fields[1:])
		case "limits":
			err = p.parseLimits(&b, strings.Join(fields[1:], " "))
		default:
			if strings.HasPrefix(fields[0], "(") {
				err = p.parseLimits(&b, strings.Join(fields, " "))
			}
			// bodymass, cofmass and friends are not used
		}
		if err != nil {
			return b, err
		}
	}
}

// parseLimits reads one or more "(min max)" pairs.
func (p *parser) parseLimits(b *Bone, text string) error {
	text = strings.NewReplacer("(", " ", ")", " ").Replace(text)
	vals := strings.Fields(text)
	if len(vals)%2 != 0 {
		return p.errorf("bone %q: odd number of limit values", b.Name)
	}
	for i := 0; i < len(vals); i += 2 {
		lo, err := p.float(vals[i])
		if err != nil {
			return err
		}
		hi, err := p.float(vals[i+1])
		if err != nil {
			return err
		}
		b.Limits = append(b.Limits, [2]float64{lo, hi})
	}
	return nil
}

func (p *parser) parseHierarchy() ([]Link, error) {
	var links []Link
	for {
		fields, ok := p.next()
		if !ok {
			return links, nil
		}
		switch strings.ToLower(fields[0]) {
		case "begin":
			continue
		case "end":
			return links, nil
		}
		if strings.HasPrefix(fields[0], ":") {
			p.unread(fields)
			return links, nil
		}
		links = append(links, Link{Parent: fields[0], Children: fields[1:]})
	}
}

func (p *parser) float(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, p.errorf("bad number %q", s)
	}
	return v, nil
}

func (p *parser) vec(fields []string) (r3.Vec, error) {
	if len(fields) < 3 {
		return r3.Vec{}, p.errorf("expected 3 values, got %d", len(fields))
	}
	var v [3]float64
	for i := 0; i < 3; i++ {
		f, err := p.float(fields[i])
		if err != nil {
			return r3.Vec{}, err
		}
		v[i] = f
	}
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}, nil
}

func upper(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToUpper(s)
	}
	return out
}

func lower(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
