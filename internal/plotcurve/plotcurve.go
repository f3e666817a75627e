// Package plotcurve draws one motion channel of the sampled store against
// the interpolated store so a keyframe pass can be checked by eye.
package plotcurve

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"mocap-player/internal/motion"
)

// Channel names one scalar of a bone sample.
type Channel int

const (
	TX Channel = iota
	TY
	TZ
	RX
	RY
	RZ
)

var channelNames = [...]string{"tx", "ty", "tz", "rx", "ry", "rz"}

func (c Channel) String() string {
	if c < 0 || int(c) >= len(channelNames) {
		return fmt.Sprintf("Channel(%d)", int(c))
	}
	return channelNames[c]
}

// ParseChannel accepts the lowercase AMC dof names.
func ParseChannel(s string) (Channel, error) {
	for i, n := range channelNames {
		if strings.EqualFold(s, n) {
			return Channel(i), nil
		}
	}
	return 0, fmt.Errorf("plotcurve: unknown channel %q", s)
}

// Value extracts the channel from a bone sample.
func (c Channel) Value(s motion.BoneSample) float64 {
	switch c {
	case TX:
		return s.Translation.X
	case TY:
		return s.Translation.Y
	case TZ:
		return s.Translation.Z
	case RX:
		return s.Rotation.X
	case RY:
		return s.Rotation.Y
	default:
		return s.Rotation.Z
	}
}

var ErrEmptyRange = errors.New("plotcurve: empty frame range")

// Curve describes a plot request. Interpolated and Keys may be empty.
type Curve struct {
	Title        string
	Bone         int
	BoneName     string
	Channel      Channel
	From, To     int
	Sampled      *motion.Motion
	Interpolated *motion.Motion
	Keys         []int
}

// Series returns the channel values of m for frames [from, to]. Frames the
// store leaves undefined are skipped.
func Series(m *motion.Motion, bone int, c Channel, from, to int) plotter.XYs {
	var pts plotter.XYs
	for f := from; f <= to; f++ {
		if !m.Defined(f) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(f), Y: c.Value(m.Bone(f, bone))})
	}
	return pts
}

// Build assembles the plot.
func Build(c Curve) (*plot.Plot, error) {
	if c.Sampled == nil {
		return nil, errors.New("plotcurve: no sampled motion")
	}
	if c.To < c.From {
		return nil, ErrEmptyRange
	}

	p := plot.New()
	p.Title.Text = c.Title
	if p.Title.Text == "" {
		p.Title.Text = fmt.Sprintf("%s %s", c.BoneName, c.Channel)
	}
	p.X.Label.Text = "Frame"
	if c.Channel >= RX {
		p.Y.Label.Text = "Degrees"
	} else {
		p.Y.Label.Text = "Units"
	}
	p.Add(plotter.NewGrid())

	pts := Series(c.Sampled, c.Bone, c.Channel, c.From, c.To)
	if len(pts) == 0 {
		return nil, ErrEmptyRange
	}
	sampled, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("plotcurve: sampled line: %w", err)
	}
	sampled.Color = color.RGBA{R: 200, G: 180, B: 0, A: 255}
	sampled.Width = vg.Points(1)
	p.Add(sampled)
	p.Legend.Add("sampled", sampled)

	if c.Interpolated != nil {
		pts := Series(c.Interpolated, c.Bone, c.Channel, c.From, c.To)
		if len(pts) > 0 {
			line, err := plotter.NewLine(pts)
			if err != nil {
				return nil, fmt.Errorf("plotcurve: interpolated line: %w", err)
			}
			line.Color = color.RGBA{R: 255, G: 153, A: 255}
			line.Width = vg.Points(1.5)
			line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
			p.Add(line)
			p.Legend.Add("interpolated", line)
		}
	}

	var marks plotter.XYs
	for _, k := range c.Keys {
		if k < c.From || k > c.To {
			continue
		}
		marks = append(marks, plotter.XY{X: float64(k), Y: c.Channel.Value(c.Sampled.Bone(k, c.Bone))})
	}
	if len(marks) > 0 {
		sc, err := plotter.NewScatter(marks)
		if err != nil {
			return nil, fmt.Errorf("plotcurve: keyframes: %w", err)
		}
		sc.GlyphStyle.Color = color.RGBA{B: 255, A: 255}
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		sc.GlyphStyle.Radius = vg.Points(3)
		p.Add(sc)
		p.Legend.Add("keyframes", sc)
	}
	p.Legend.Top = true
	return p, nil
}

// Write renders the plot as PNG to w.
func Write(w io.Writer, c Curve, width, height vg.Length) error {
	p, err := Build(c)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return fmt.Errorf("plotcurve: encode: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save writes the plot to path; the format follows the extension.
func Save(path string, c Curve, width, height vg.Length) error {
	p, err := Build(c)
	if err != nil {
		return err
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("plotcurve: save %s: %w", path, err)
	}
	return nil
}
