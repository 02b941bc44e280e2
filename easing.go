package scrollstage

import "github.com/tanema/gween/ease"

// Curve names an interpolation curve. Names follow the power/sine/expo
// vocabulary common to web animation tooling.
type Curve string

const (
	Linear       Curve = "linear"
	Power1In     Curve = "power1.in"
	Power1Out    Curve = "power1.out"
	Power1InOut  Curve = "power1.inOut"
	Power2In     Curve = "power2.in"
	Power2Out    Curve = "power2.out"
	Power2InOut  Curve = "power2.inOut"
	Power3In     Curve = "power3.in"
	Power3Out    Curve = "power3.out"
	Power3InOut  Curve = "power3.inOut"
	Power4Out    Curve = "power4.out"
	SineInOut    Curve = "sine.inOut"
	ExpoOut      Curve = "expo.out"
	BackOut      Curve = "back.out"
	CircInOut    Curve = "circ.inOut"
)

var curveFuncs = map[Curve]ease.TweenFunc{
	Linear:      ease.Linear,
	Power1In:    ease.InQuad,
	Power1Out:   ease.OutQuad,
	Power1InOut: ease.InOutQuad,
	Power2In:    ease.InCubic,
	Power2Out:   ease.OutCubic,
	Power2InOut: ease.InOutCubic,
	Power3In:    ease.InQuart,
	Power3Out:   ease.OutQuart,
	Power3InOut: ease.InOutQuart,
	Power4Out:   ease.OutQuint,
	SineInOut:   ease.InOutSine,
	ExpoOut:     ease.OutExpo,
	BackOut:     ease.OutBack,
	CircInOut:   ease.InOutCirc,
}

// Func returns the gween easing function for c. Unknown names fall back to
// linear.
func (c Curve) Func() ease.TweenFunc {
	if fn, ok := curveFuncs[c]; ok {
		return fn
	}
	return ease.Linear
}

// Known reports whether c names a registered curve.
func (c Curve) Known() bool {
	_, ok := curveFuncs[c]
	return ok
}

// At maps normalized time u in [0, 1] through the curve. The endpoints are
// exact: At(0) == 0 and At(1) == 1.
func (c Curve) At(u float64) float64 {
	switch {
	case u <= 0:
		return 0
	case u >= 1:
		return 1
	}
	return float64(c.Func()(float32(u), 0, 1, 1))
}
