package deflection

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"
)

const (
	DefaultPoints = 100
	MaxPoints     = 100000

	// DefaultLimitRatio is the serviceability limit L/250.
	DefaultLimitRatio = 250.0

	// MidspanTolerance is the window used by the legacy midspan lookup.
	MidspanTolerance = 0.1
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrEmptySeries  = errors.New("empty series")
)

type Policy string

const (
	// PolicyIndex computes x = i*L/n and always ends on x = L.
	PolicyIndex Policy = "index"
	// PolicyAdditive accumulates x += L/n while x <= L, reproducing the
	// legacy sample set including its missing endpoint.
	PolicyAdditive Policy = "additive"
)

// Params describes a simply supported beam under uniform load, in SI units.
type Params struct {
	E float64 `json:"e_pa"`
	I float64 `json:"i_m4"`
	W float64 `json:"udl_n_m"`
	L float64 `json:"span_m"`
}

type Sample struct {
	X float64 `json:"x_m"`
	Y float64 `json:"y_m"`
}

type Series []Sample

type Stats struct {
	MinY          float64 `json:"min_y_m"`
	MaxY          float64 `json:"max_y_m"`
	Peak          Sample  `json:"peak"`
	Midspan       float64 `json:"midspan_m"`
	MidspanSample *Sample `json:"midspan_sample,omitempty"`
}

type Input struct {
	Params
	NumPoints            int     `json:"num_points"`
	Policy               Policy  `json:"policy"`
	DeflectionLimitRatio float64 `json:"deflection_limit_ratio"`
}

// Check compares the peak magnitude against span/ratio.
type Check struct {
	LimitRatio float64 `json:"deflection_limit_ratio"`
	LimitM     float64 `json:"deflection_limit_m"`
	PeakAbsM   float64 `json:"peak_abs_m"`
	OK         bool    `json:"ok"`

	// ClosedFormM is 5|w|L^4/384EI, the textbook midspan magnitude.
	ClosedFormM float64 `json:"closed_form_m"`
}

type Result struct {
	Params    Params `json:"params"`
	NumPoints int    `json:"num_points"`
	Policy    Policy `json:"policy"`
	Samples   Series `json:"samples"`
	Stats     Stats  `json:"stats"`
	Check     Check  `json:"check"`
	Notes     string `json:"notes"`
}

// Deflection evaluates v(x) = w*x*(L^3 - 2*L*x^2 + x^3) / (24*E*I).
// Inputs are not checked: EI = 0 yields Inf or NaN.
func Deflection(p Params, x float64) float64 {
	EI := p.E * p.I
	return p.W * x * (math.Pow(p.L, 3) - 2*p.L*math.Pow(x, 2) + math.Pow(x, 3)) / (24 * EI)
}

// Samples walks the span and evaluates Deflection at each station.
func Samples(p Params, numPoints int, policy Policy) Series {
	if numPoints <= 0 {
		numPoints = DefaultPoints
	}
	if policy == PolicyAdditive {
		return additive(p, numPoints)
	}

	out := make(Series, 0, numPoints+1)
	n := float64(numPoints)
	for i := 0; i <= numPoints; i++ {
		x := float64(i) * p.L / n
		if i == numPoints {
			x = p.L
		}
		out = append(out, Sample{X: x, Y: Deflection(p, x)})
	}
	return out
}

func additive(p Params, numPoints int) Series {
	step := p.L / float64(numPoints)
	if !(step > 0) || math.IsInf(step, 0) {
		// x can never advance
		if p.L >= 0 {
			return Series{{X: 0, Y: Deflection(p, 0)}}
		}
		return Series{}
	}
	out := make(Series, 0, numPoints+1)
	for x := 0.0; x <= p.L; x += step {
		out = append(out, Sample{X: x, Y: Deflection(p, x)})
	}
	return out
}

func Summarize(p Params, s Series) (Stats, error) {
	if len(s) == 0 {
		return Stats{}, ErrEmptySeries
	}
	ys := make(stats.Float64Data, len(s))
	for i, smp := range s {
		ys[i] = smp.Y
	}
	minY, err := stats.Min(ys)
	if err != nil {
		return Stats{}, errors.Wrap(err, "min deflection")
	}
	maxY, err := stats.Max(ys)
	if err != nil {
		return Stats{}, errors.Wrap(err, "max deflection")
	}

	peak := s[0]
	for _, smp := range s[1:] {
		if math.Abs(smp.Y) > math.Abs(peak.Y) {
			peak = smp
		}
	}

	st := Stats{
		MinY:    minY,
		MaxY:    maxY,
		Peak:    peak,
		Midspan: Deflection(p, p.L/2),
	}
	half := p.L / 2
	for i := range s {
		if math.Abs(s[i].X-half) < MidspanTolerance {
			smp := s[i]
			st.MidspanSample = &smp
			break
		}
	}
	return st, nil
}

func Validate(p Params) error {
	check := func(name string, v float64, positive bool) error {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return errors.Wrapf(ErrInvalidInput, "%s must be finite", name)
		}
		if positive && v <= 0 {
			return errors.Wrapf(ErrInvalidInput, "%s must be positive", name)
		}
		return nil
	}
	if err := check("e_pa", p.E, true); err != nil {
		return err
	}
	if err := check("i_m4", p.I, true); err != nil {
		return err
	}
	if err := check("udl_n_m", p.W, false); err != nil {
		return err
	}
	if err := check("span_m", p.L, true); err != nil {
		return err
	}
	// E and I can each be fine while their product under- or overflows
	return check("flexural rigidity e_pa*i_m4", p.E*p.I, true)
}

// MaxClosedForm is the textbook midspan magnitude 5wL^4/384EI.
func MaxClosedForm(p Params) float64 {
	return 5 * math.Abs(p.W) * math.Pow(p.L, 4) / (384 * p.E * p.I)
}

func serviceability(p Params, st Stats, ratio float64) Check {
	peak := math.Max(math.Abs(st.Peak.Y), math.Abs(st.Midspan))
	limit := p.L / ratio
	return Check{
		LimitRatio:  ratio,
		LimitM:      limit,
		PeakAbsM:    peak,
		OK:          peak <= limit,
		ClosedFormM: MaxClosedForm(p),
	}
}

func Calculate(in Input) (Result, error) {
	if err := Validate(in.Params); err != nil {
		return Result{}, err
	}
	if in.NumPoints <= 0 {
		in.NumPoints = DefaultPoints
	}
	if in.NumPoints > MaxPoints {
		return Result{}, errors.Wrapf(ErrInvalidInput, "num_points must not exceed %d", MaxPoints)
	}
	switch in.Policy {
	case "":
		in.Policy = PolicyIndex
	case PolicyIndex, PolicyAdditive:
	default:
		return Result{}, errors.Wrapf(ErrInvalidInput, "unknown policy %q", in.Policy)
	}

	if !(in.DeflectionLimitRatio > 0) {
		in.DeflectionLimitRatio = DefaultLimitRatio
	}

	series := Samples(in.Params, in.NumPoints, in.Policy)
	st, err := Summarize(in.Params, series)
	if err != nil {
		return Result{}, err
	}
	if !finite(st.Midspan) {
		return Result{}, errors.Wrap(ErrInvalidInput, "midspan deflection is not representable")
	}
	for _, smp := range series {
		if !finite(smp.Y) {
			return Result{}, errors.Wrapf(ErrInvalidInput, "deflection at x=%g is not representable", smp.X)
		}
	}
	return Result{
		Params:    in.Params,
		NumPoints: in.NumPoints,
		Policy:    in.Policy,
		Samples:   series,
		Stats:     st,
		Check:     serviceability(in.Params, st, in.DeflectionLimitRatio),
		Notes:     "Simply supported beam, uniform load (Euler-Bernoulli closed form).",
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
