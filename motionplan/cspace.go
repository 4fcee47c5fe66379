package motionplan

import (
	"math"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/ill-paths/tasengine/referenceframe"
)

// Pixel codes for a ConfigSpaceImage.
const (
	PixelFree           byte = 0x00
	PixelCollision      byte = 0xff
	PixelForbiddenAngle byte = 0xf0
)

// Domain is the rectangular (a4, a2) range and step size a C-space scan
// covers, in radians.
type Domain struct {
	StartA2, EndA2 float64
	StartA4, EndA4 float64
	DA2, DA4       float64
}

// Width returns the image's pixel width, ceil((EndA4-StartA4)/DA4).
func (d Domain) Width() int { return int(math.Ceil((d.EndA4 - d.StartA4) / d.DA4)) }

// Height returns the image's pixel height, ceil((EndA2-StartA2)/DA2).
func (d Domain) Height() int { return int(math.Ceil((d.EndA2 - d.StartA2) / d.DA2)) }

// ConfigSpaceImage is a dense raster of the instrument's forbidden region
// over a Domain, indexed [row*W+col], row 0 at StartA2.
type ConfigSpaceImage struct {
	W, H   int
	Pixels []byte
	Domain Domain
	// Sense4, Sense2 are the per-axis scattering senses (±1) applied when
	// mapping between pixels and angles.
	Sense4, Sense2 int
}

// NewConfigSpaceImage allocates a zeroed (all-PixelFree) image over domain.
func NewConfigSpaceImage(domain Domain, sense4, sense2 int) *ConfigSpaceImage {
	w, h := domain.Width(), domain.Height()
	return &ConfigSpaceImage{
		W: w, H: h,
		Pixels: make([]byte, w*h),
		Domain: domain,
		Sense4: sign(sense4), Sense2: sign(sense2),
	}
}

func sign(s int) int {
	if s < 0 {
		return -1
	}
	return 1
}

// At returns the pixel code at (col, row).
func (img *ConfigSpaceImage) At(col, row int) byte {
	if col < 0 || col >= img.W || row < 0 || row >= img.H {
		return PixelCollision
	}
	return img.Pixels[row*img.W+col]
}

// Set writes the pixel code at (col, row).
func (img *ConfigSpaceImage) Set(col, row int, v byte) {
	img.Pixels[row*img.W+col] = v
}

// PixelToAngle maps a pixel coordinate to the (a4, a2) angle at its center.
func (img *ConfigSpaceImage) PixelToAngle(col, row int) (a4, a2 float64) {
	d := img.Domain
	a4 = d.StartA4 + float64(img.Sense4)*(float64(col)+0.5)*d.DA4
	a2 = d.StartA2 + float64(img.Sense2)*(float64(row)+0.5)*d.DA2
	return a4, a2
}

// ContinuousToAngle maps a fractional (sub-pixel) coordinate to its (a4, a2)
// angle, for path points produced by retraction or bisector sampling that
// don't fall on a pixel center.
func (img *ConfigSpaceImage) ContinuousToAngle(col, row float64) (a4, a2 float64) {
	d := img.Domain
	a4 = d.StartA4 + float64(img.Sense4)*col*d.DA4
	a2 = d.StartA2 + float64(img.Sense2)*row*d.DA2
	return a4, a2
}

// AngleToPixel maps an (a4, a2) angle to its containing pixel coordinate.
func (img *ConfigSpaceImage) AngleToPixel(a4, a2 float64) (col, row int) {
	d := img.Domain
	col = int(math.Round((a4-d.StartA4)/(float64(img.Sense4)*d.DA4) - 0.5))
	row = int(math.Round((a2-d.StartA2)/(float64(img.Sense2)*d.DA2) - 0.5))
	return col, row
}

// BuildRequest bundles everything BuildCSpace needs beyond the domain: the
// fixed-k selection and scattering senses a TasCalculator would otherwise
// provide, and the independent angle of whichever crystal isn't swept.
type BuildRequest struct {
	Domain  Domain
	Senses  [3]int // monochromator, sample, analyser
	KfFixed bool   // true: monochromator carries a2; false: analyser does
	A6      float64
	Cfg     Config
}

// BuildCSpace rasterizes the instrument's forbidden region over req.Domain
// by evaluating the collision and angular-limits predicates at every pixel,
// on a bounded worker pool of req.Cfg.MaxnumThreads goroutines, each
// holding its own InstrumentSpace.Clone() so the predicate stays
// side-effect-free per worker. progress is invoked at most 25 times and may
// cancel the scan by returning false; a cancelled scan returns its partial
// image together with ErrCancelled.
func BuildCSpace(space *referenceframe.InstrumentSpace, req BuildRequest, progress ProgressFunc) (*ConfigSpaceImage, error) {
	// a4's sense always comes from the sample axis; a2's sense comes from
	// whichever crystal carries a2.
	a2SenseIdx := monoOrAnalyserSenseIdx(req.KfFixed)
	img := NewConfigSpaceImage(req.Domain, req.Senses[referenceframe.AxisSample], req.Senses[a2SenseIdx])

	threads := req.Cfg.MaxnumThreads
	if threads < 1 {
		threads = 1
	}

	var completedRows int64
	reportEvery := (img.H + 24) / 25
	if reportEvery < 1 {
		reportEvery = 1
	}

	var cancelled int32
	g := new(errgroup.Group)
	g.SetLimit(threads)

	for row := 0; row < img.H; row++ {
		row := row
		if atomic.LoadInt32(&cancelled) != 0 {
			break
		}
		g.Go(func() error {
			if atomic.LoadInt32(&cancelled) != 0 {
				return nil
			}
			worker := space.Clone()
			computeRow(worker, img, row, req)

			n := atomic.AddInt64(&completedRows, 1)
			if n%int64(reportEvery) == 0 || int(n) == img.H {
				frac := float64(n) / float64(img.H)
				if progress != nil && !progress(CspaceBuilding, frac, "scanning configuration space") {
					atomic.StoreInt32(&cancelled, 1)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	if atomic.LoadInt32(&cancelled) != 0 {
		return img, NewPlanError(ErrCancelled, "cspace: scan cancelled by progress callback", nil)
	}
	return img, nil
}

func monoOrAnalyserSenseIdx(kfFixed bool) int {
	if kfFixed {
		return referenceframe.AxisMonochromator
	}
	return referenceframe.AxisAnalyser
}

// computeRow fills one row of img by evaluating the collision predicate at
// every pixel, following the instrument's angle assignment rule: whichever
// of monochromator/analyser is "fixed-k" carries a2, the other carries the
// independent a6; both crystals get half their scattering angle, and the
// sample crystal gets a4/2.
func computeRow(space *referenceframe.InstrumentSpace, img *ConfigSpaceImage, row int, req BuildRequest) {
	inst := space.Instrument
	for col := 0; col < img.W; col++ {
		a4, a2 := img.PixelToAngle(col, row)

		if req.KfFixed {
			inst.Axis(referenceframe.AxisMonochromator).SetAngle(referenceframe.AngleOut, a2)
			inst.Axis(referenceframe.AxisMonochromator).SetAngle(referenceframe.AngleInternal, a2/2)
			inst.Axis(referenceframe.AxisAnalyser).SetAngle(referenceframe.AngleOut, req.A6)
			inst.Axis(referenceframe.AxisAnalyser).SetAngle(referenceframe.AngleInternal, req.A6/2)
		} else {
			inst.Axis(referenceframe.AxisAnalyser).SetAngle(referenceframe.AngleOut, a2)
			inst.Axis(referenceframe.AxisAnalyser).SetAngle(referenceframe.AngleInternal, a2/2)
			inst.Axis(referenceframe.AxisMonochromator).SetAngle(referenceframe.AngleOut, req.A6)
			inst.Axis(referenceframe.AxisMonochromator).SetAngle(referenceframe.AngleInternal, req.A6/2)
		}
		inst.Axis(referenceframe.AxisSample).SetAngle(referenceframe.AngleOut, a4)
		inst.Axis(referenceframe.AxisSample).SetAngle(referenceframe.AngleInternal, a4/2)

		var code byte
		switch {
		case !space.CheckAngularLimits():
			code = PixelForbiddenAngle
		case space.CheckCollision2D():
			code = PixelCollision
		default:
			code = PixelFree
		}
		img.Set(col, row, code)
	}
}
