package oddsmath_test

import (
	"math"
	"testing"

	"github.com/villela/pickem-ev-engine/pkg/oddsmath"
)

func TestImpliedProbability(t *testing.T) {
	tests := []struct {
		name     string
		american int
		want     float64
	}{
		{name: "even odds +100", american: 100, want: 0.50},
		{name: "even odds -100", american: -100, want: 0.50},
		{name: "slight favorite -110", american: -110, want: 0.5238095238095238},
		{name: "underdog +150", american: 150, want: 0.40},
		{name: "heavy favorite -200", american: -200, want: 0.6666666666666666},
		{name: "big underdog +170", american: 170, want: 0.37037037037037035},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := oddsmath.ImpliedProbability(tt.american)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ImpliedProbability(%d) = %f, want %f", tt.american, got, tt.want)
			}
		})
	}
}

func TestImpliedProbabilityStaysInRange(t *testing.T) {
	// magnitudes extremas não podem sair do intervalo aberto (0,1)
	for _, odds := range []int{-100000, -5000, -100, 100, 5000, 100000} {
		p := oddsmath.ImpliedProbability(odds)
		if p <= 0 || p >= 1 {
			t.Errorf("ImpliedProbability(%d) = %f, out of (0,1)", odds, p)
		}
	}
}

func TestDevig(t *testing.T) {
	tests := []struct {
		name      string
		over      int
		under     int
		wantOver  float64
		wantUnder float64
	}{
		{name: "standard -110/-110", over: -110, under: -110, wantOver: 0.50, wantUnder: 0.50},
		{name: "asymmetric -130/+110", over: -130, under: 110, wantOver: 0.5427435387673957, wantUnder: 0.4572564612326044},
		{name: "heavy skew -200/+170", over: -200, under: 170, wantOver: 0.6428571428571429, wantUnder: 0.35714285714285715},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fairOver, fairUnder := oddsmath.Devig(tt.over, tt.under)

			if math.Abs(fairOver-tt.wantOver) > 1e-9 {
				t.Errorf("fairOver = %f, want %f", fairOver, tt.wantOver)
			}
			if math.Abs(fairUnder-tt.wantUnder) > 1e-9 {
				t.Errorf("fairUnder = %f, want %f", fairUnder, tt.wantUnder)
			}

			if math.Abs(fairOver+fairUnder-1.0) > 1e-9 {
				t.Errorf("devigged pair sums to %f, want 1.0", fairOver+fairUnder)
			}

			// remover o vig nunca aumenta a probabilidade de um lado
			if fairOver > oddsmath.ImpliedProbability(tt.over) {
				t.Errorf("fairOver %f exceeds implied %f", fairOver, oddsmath.ImpliedProbability(tt.over))
			}
			if fairUnder > oddsmath.ImpliedProbability(tt.under) {
				t.Errorf("fairUnder %f exceeds implied %f", fairUnder, oddsmath.ImpliedProbability(tt.under))
			}
		})
	}
}

func TestEVPercentage(t *testing.T) {
	tests := []struct {
		name      string
		fair      float64
		breakeven float64
		want      float64
	}{
		{name: "at breakeven", fair: 0.5425, breakeven: 0.5425, want: 0.0},
		{name: "good edge", fair: 0.60, breakeven: 0.5425, want: 10.599078341013835},
		{name: "slight negative", fair: 0.54, breakeven: 0.5425, want: -0.4608294930875445},
		{name: "clearly negative", fair: 0.50, breakeven: 0.5425, want: -7.834101382488479},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := oddsmath.EVPercentage(tt.fair, tt.breakeven)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("EVPercentage(%f, %f) = %f, want %f", tt.fair, tt.breakeven, got, tt.want)
			}
		})
	}
}

func TestEVPercentageZeroAtBreakeven(t *testing.T) {
	for _, p := range []float64{0.01, 0.25, 0.5, 0.5425, 0.577, 0.99} {
		if got := oddsmath.EVPercentage(p, p); got != 0 {
			t.Errorf("EVPercentage(%f, %f) = %f, want 0", p, p, got)
		}
	}
}

func TestParlayProbability(t *testing.T) {
	tests := []struct {
		name string
		legs []float64
		want float64
	}{
		{name: "empty parlay is certain", legs: nil, want: 1.0},
		{name: "two 60% legs", legs: []float64{0.6, 0.6}, want: 0.36},
		{name: "three coin flips", legs: []float64{0.5, 0.5, 0.5}, want: 0.125},
		{name: "one dead leg kills the parlay", legs: []float64{0.9, 0.0, 0.9}, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := oddsmath.ParlayProbability(tt.legs)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParlayProbability(%v) = %f, want %f", tt.legs, got, tt.want)
			}
		})
	}
}

func TestParlayEV(t *testing.T) {
	got := oddsmath.ParlayEV([]float64{0.6, 0.6}, 3.0)
	if math.Abs(got-0.08) > 1e-9 {
		t.Errorf("ParlayEV 60%%/60%% at 3x = %f, want 0.08", got)
	}

	got = oddsmath.ParlayEV([]float64{0.5, 0.5}, 3.0)
	if math.Abs(got-(-0.25)) > 1e-9 {
		t.Errorf("ParlayEV 50%%/50%% at 3x = %f, want -0.25", got)
	}
}

func TestBreakevenProbability(t *testing.T) {
	tests := []struct {
		name    string
		payout  float64
		numLegs int
		want    float64
		tol     float64
	}{
		{name: "2-leg 3x", payout: 3.0, numLegs: 2, want: 0.5773502691896257, tol: 1e-8},
		{name: "3-leg 6x", payout: 6.0, numLegs: 3, want: 0.5503212081491045, tol: 1e-8},
		{name: "5-leg 10x", payout: 10.0, numLegs: 5, want: 0.630957, tol: 1e-6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := oddsmath.BreakevenProbability(tt.payout, tt.numLegs)
			if math.Abs(got-tt.want) > tt.tol {
				t.Errorf("BreakevenProbability(%f, %d) = %f, want %f", tt.payout, tt.numLegs, got, tt.want)
			}

			// invariante de round-trip: breakeven^n == 1/payout
			if back := math.Pow(got, float64(tt.numLegs)); math.Abs(back-1.0/tt.payout) > 1e-8 {
				t.Errorf("breakeven^%d = %f, want %f", tt.numLegs, back, 1.0/tt.payout)
			}
		})
	}
}

func TestBreakevenRoundTripHasZeroEV(t *testing.T) {
	// um parlay onde toda leg está exatamente no breakeven tem EV zero
	cases := []struct {
		payout  float64
		numLegs int
	}{
		{3.0, 2},
		{6.0, 3},
		{10.0, 5},
	}

	for _, c := range cases {
		breakeven := oddsmath.BreakevenProbability(c.payout, c.numLegs)
		legs := make([]float64, c.numLegs)
		for i := range legs {
			legs[i] = breakeven
		}
		if ev := oddsmath.ParlayEV(legs, c.payout); math.Abs(ev) > 1e-8 {
			t.Errorf("ParlayEV at breakeven (payout=%f legs=%d) = %g, want 0", c.payout, c.numLegs, ev)
		}
	}
}
