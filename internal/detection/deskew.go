package detection

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/wordsearch-mcp/internal/imaging"
	"github.com/ironsheep/wordsearch-mcp/internal/logging"
)

// DeskewOptions tunes skew estimation.
type DeskewOptions struct {
	Enabled bool `toml:"enabled" json:"enabled"`

	// MaxAngle bounds the coarse sweep to [-MaxAngle, MaxAngle] degrees.
	MaxAngle   float64 `toml:"max_angle" json:"max_angle"`
	CoarseStep float64 `toml:"coarse_step" json:"coarse_step"`
	FineStep   float64 `toml:"fine_step" json:"fine_step"`

	// Stride samples every Stride-th column when building profiles.
	Stride int `toml:"stride" json:"stride"`

	// MinImprovement is the relative variance gain over the unrotated
	// baseline a candidate needs before it is accepted.
	MinImprovement float64 `toml:"min_improvement" json:"min_improvement"`
}

// DefaultDeskewOptions returns the stock settings.
func DefaultDeskewOptions() DeskewOptions {
	return DeskewOptions{
		Enabled:        true,
		MaxAngle:       10,
		CoarseStep:     0.5,
		FineStep:       0.1,
		Stride:         4,
		MinImprovement: 0.05,
	}
}

// SkewEstimate reports the rotation that best aligns rows with the image
// axes. Angle is the counter-clockwise rotation, in degrees, that corrects
// the skew; it is exactly 0 when no candidate beat the baseline.
type SkewEstimate struct {
	Angle            float64 `json:"angle"`
	BaselineVariance float64 `json:"baseline_variance"`
	BestVariance     float64 `json:"best_variance"`
	Accepted         bool    `json:"accepted"`
}

// DeskewResult is the corrected raster and the estimate that produced it.
type DeskewResult struct {
	SkewEstimate
	Raster *imaging.Raster `json:"-"`
}

// EstimateSkew sweeps candidate angles and keeps the one whose row profile
// has the highest variance. Axis-aligned rulings and text rows produce
// sharply peaked profiles, so the variance peaks at the correcting angle.
//
// The sweep runs from -MaxAngle to MaxAngle in CoarseStep increments, then
// refines around the best candidate in FineStep increments.
func EstimateSkew(r *imaging.Raster, opts DeskewOptions) SkewEstimate {
	if opts.Stride < 1 {
		opts.Stride = 1
	}
	est := SkewEstimate{}
	if r.Width() < 2 || r.Height() < 2 || opts.CoarseStep <= 0 {
		return est
	}

	est.BaselineVariance = projectionVariance(r, 0, opts.Stride)
	bestAngle, bestVar := 0.0, est.BaselineVariance

	n := int(math.Round(opts.MaxAngle / opts.CoarseStep))
	for i := -n; i <= n; i++ {
		if i == 0 {
			continue
		}
		a := float64(i) * opts.CoarseStep
		if v := projectionVariance(r, a, opts.Stride); v > bestVar {
			bestAngle, bestVar = a, v
		}
	}

	if opts.FineStep > 0 {
		center := bestAngle
		m := int(math.Round(opts.CoarseStep / opts.FineStep))
		for k := -m; k <= m; k++ {
			if k == 0 {
				continue
			}
			a := roundAngle(center + float64(k)*opts.FineStep)
			if v := projectionVariance(r, a, opts.Stride); v > bestVar {
				bestAngle, bestVar = a, v
			}
		}
	}

	est.BestVariance = bestVar
	if bestAngle != 0 && bestVar > est.BaselineVariance*(1+opts.MinImprovement) {
		est.Angle = roundAngle(bestAngle)
		est.Accepted = true
	}
	return est
}

// Deskew estimates the skew of r and, when a correction is accepted,
// returns r rotated by it. Otherwise the raster is returned as a copy.
func Deskew(r *imaging.Raster, opts DeskewOptions) *DeskewResult {
	if !opts.Enabled {
		return &DeskewResult{Raster: r.Clone()}
	}

	est := EstimateSkew(r, opts)
	logging.Debug("deskew: angle=%.2f baseline=%.1f best=%.1f accepted=%t",
		est.Angle, est.BaselineVariance, est.BestVariance, est.Accepted)

	return &DeskewResult{
		SkewEstimate: est,
		Raster:       imaging.RotateRaster(r, est.Angle),
	}
}

// projectionVariance computes the variance of the row profile of r as it
// would look after imaging.Rotate(r, angle). Each destination sample is
// mapped back to its source pixel with the same center and rotation that
// imaging.Rotate uses, then counted if it lands on ink.
func projectionVariance(r *imaging.Raster, angle float64, stride int) float64 {
	w, h := r.Width(), r.Height()
	cx := float64(w)/2 - 0.5
	cy := float64(h)/2 - 0.5
	sin, cos := math.Sincos(math.Pi * angle / 180)

	profile := make([]float64, h)
	for y := 0; y < h; y++ {
		dy := float64(y) - cy
		n := 0
		for x := 0; x < w; x += stride {
			dx := float64(x) - cx
			sx := dx*cos - dy*sin + cx
			sy := dx*sin + dy*cos + cy
			if r.Ink(int(math.Floor(sx+0.5)), int(math.Floor(sy+0.5))) {
				n++
			}
		}
		profile[y] = float64(n)
	}
	return stat.Variance(profile, nil)
}

func roundAngle(a float64) float64 {
	return math.Round(a*100) / 100
}
