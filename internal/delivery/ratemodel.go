package delivery

import (
	"math"

	"tdeo-sim/internal/config"
)

// Tier maps powers up to MaxPowerMW (inclusive) to BaseRate percent.
type Tier struct {
	MaxPowerMW float64
	BaseRate   float64
}

// RateModel maps transmit power and node index to a target success rate.
type RateModel struct {
	tiers       []Tier
	attenuation float64
}

// DefaultTiers is the 2/5/10 mW step table with an unbounded top tier.
var DefaultTiers = []Tier{
	{MaxPowerMW: 2, BaseRate: 30},
	{MaxPowerMW: 5, BaseRate: 55},
	{MaxPowerMW: 10, BaseRate: 80},
	{MaxPowerMW: math.Inf(1), BaseRate: 95},
}

// DefaultAttenuation is the fraction of the base rate lost per node index.
const DefaultAttenuation = 0.1

// NewRateModel copies tiers, which must be in ascending MaxPowerMW order.
func NewRateModel(tiers []Tier, attenuation float64) *RateModel {
	t := make([]Tier, len(tiers))
	copy(t, tiers)
	return &RateModel{tiers: t, attenuation: attenuation}
}

// DefaultRateModel returns the model with DefaultTiers and DefaultAttenuation.
func DefaultRateModel() *RateModel {
	return NewRateModel(DefaultTiers, DefaultAttenuation)
}

// RateModelFromConfig builds a model from a validated config section.
func RateModelFromConfig(m config.RateModel) *RateModel {
	tiers := make([]Tier, len(m.Tiers))
	for i, t := range m.Tiers {
		tiers[i] = Tier{MaxPowerMW: t.Upper(), BaseRate: t.BaseRate}
	}
	return NewRateModel(tiers, m.AttenuationPerNode)
}

// Tiers returns a copy of the step table.
func (m *RateModel) Tiers() []Tier {
	t := make([]Tier, len(m.tiers))
	copy(t, m.tiers)
	return t
}

// BaseRate returns the rate of the first tier whose bound is >= powerMW.
// Powers above a bounded last tier use the last tier.
func (m *RateModel) BaseRate(powerMW float64) float64 {
	if len(m.tiers) == 0 {
		return 0
	}
	for _, t := range m.tiers {
		if powerMW <= t.MaxPowerMW {
			return t.BaseRate
		}
	}
	return m.tiers[len(m.tiers)-1].BaseRate
}

// DistanceFactor is the linear attenuation for node (1 for the closest client).
// It is not floored and turns negative for distant nodes.
func (m *RateModel) DistanceFactor(node int) float64 {
	return 1 - float64(node-1)*m.attenuation
}

// Unclamped returns base rate times distance factor without bounding.
func (m *RateModel) Unclamped(powerMW float64, node int) float64 {
	return m.BaseRate(powerMW) * m.DistanceFactor(node)
}

// TargetRate returns the success probability in percent, clamped to [0,100].
func (m *RateModel) TargetRate(powerMW float64, node int) float64 {
	return clampRate(m.Unclamped(powerMW, node))
}

func clampRate(r float64) float64 {
	switch {
	case math.IsNaN(r), r < 0:
		return 0
	case r > 100:
		return 100
	}
	return r
}
