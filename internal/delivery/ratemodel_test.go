package delivery

import (
	"math"
	"testing"

	"tdeo-sim/internal/config"
)

const eps = 1e-9

func TestTargetRateTable(t *testing.T) {
	m := DefaultRateModel()
	cases := []struct {
		power float64
		node  int
		want  float64
	}{
		{0.5, 1, 30},
		{2, 1, 30},
		{2, 2, 27},
		{2, 3, 24},
		{2, 4, 21},
		{2.01, 1, 55},
		{5, 1, 55},
		{10, 1, 80},
		{10, 4, 56},
		{15, 1, 95},
		{1000, 1, 95},
	}
	for _, tc := range cases {
		if got := m.TargetRate(tc.power, tc.node); math.Abs(got-tc.want) > eps {
			t.Errorf("TargetRate(%v, %d) = %v, want %v", tc.power, tc.node, got, tc.want)
		}
	}
}

func TestTargetRateClamped(t *testing.T) {
	m := DefaultRateModel()
	if u := m.Unclamped(15, 12); u >= 0 {
		t.Fatalf("expected negative unclamped rate for node 12, got %v", u)
	}
	for node := 1; node <= 30; node++ {
		r := m.TargetRate(15, node)
		if r < 0 || r > 100 {
			t.Fatalf("node %d rate %v outside [0,100]", node, r)
		}
	}
	if got := m.TargetRate(15, 11); got != 0 {
		t.Errorf("node 11 rate = %v, want 0", got)
	}

	over := NewRateModel([]Tier{{MaxPowerMW: math.Inf(1), BaseRate: 100}}, -0.5)
	if got := over.TargetRate(1, 3); got != 100 {
		t.Errorf("rate above 100 not clamped: %v", got)
	}
}

func TestTargetRateNonIncreasingInNode(t *testing.T) {
	m := DefaultRateModel()
	for _, p := range []float64{1, 2, 4, 5, 7, 10, 15} {
		prev := math.Inf(1)
		for node := 1; node <= 15; node++ {
			u := m.Unclamped(p, node)
			if u > prev {
				t.Fatalf("power %v: rate increased at node %d (%v > %v)", p, node, u, prev)
			}
			prev = u
		}
	}
}

func TestBaseRateBoundedLastTier(t *testing.T) {
	m := NewRateModel([]Tier{{MaxPowerMW: 1, BaseRate: 10}, {MaxPowerMW: 3, BaseRate: 40}}, 0)
	if got := m.BaseRate(50); got != 40 {
		t.Errorf("BaseRate above last bound = %v, want 40", got)
	}
	if got := NewRateModel(nil, 0).TargetRate(2, 1); got != 0 {
		t.Errorf("empty model rate = %v, want 0", got)
	}
}

func TestRateModelFromConfig(t *testing.T) {
	m := RateModelFromConfig(config.Default().RateModel)
	def := DefaultRateModel()
	for _, p := range []float64{1, 2, 3, 5, 9, 10, 11, 20} {
		for node := 1; node <= 5; node++ {
			if a, b := m.TargetRate(p, node), def.TargetRate(p, node); a != b {
				t.Errorf("config model (%v,%d) = %v, default = %v", p, node, a, b)
			}
		}
	}
	tiers := m.Tiers()
	tiers[0].BaseRate = 99
	if m.BaseRate(1) != 30 {
		t.Errorf("Tiers() leaked internal slice")
	}
}
