// Package dashboard computes the shipment-risk dashboard views. Every view
// is a pure function of the order set and an override snapshot.
package dashboard

import (
	"fmt"
	"sort"
	"time"

	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/contracts"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/override"
)

const (
	trendWindow   = 15
	warningLimit  = 4
	labelLayout   = "Jan 02"
	transitKMDays = 500.0

	colorLow    = "#22c55e"
	colorMedium = "#facc15"
	colorHigh   = "#ef4444"

	defaultModeColor    = "#94a3b8"
	defaultCarbonFactor = 0.05
)

// Carbon factors, in kg CO2 per km per unit shipped.
var carbonFactors = map[contracts.ShippingMethod]float64{
	contracts.MethodAir:  0.5,
	contracts.MethodRoad: 0.1,
	contracts.MethodRail: 0.03,
	contracts.MethodSea:  0.01,
}

var modeColors = map[contracts.ShippingMethod]string{
	contracts.MethodAir:  "#6366f1",
	contracts.MethodRoad: "#f59e0b",
	contracts.MethodRail: "#8b5cf6",
	contracts.MethodSea:  "#0ea5e9",
}

type Metrics struct {
	OnTimePercent float64
	RiskPercent   float64
	CarbonMT      float64
	// AvgTransitDays is mean distance / 500km, an approximation rather
	// than a measured transit time.
	AvgTransitDays float64
	// Mitigating is true whenever any override exists. It only switches
	// display labels.
	Mitigating bool
}

// ComputeMetrics expects orders with overrides already applied. An empty
// order set yields zeroes rather than NaN.
func ComputeMetrics(view []contracts.Order, mitigating bool) Metrics {
	m := Metrics{Mitigating: mitigating}
	if len(view) == 0 {
		return m
	}

	var delayed int
	var carbonKG, distance float64
	for _, o := range view {
		if o.Delayed {
			delayed++
		}
		carbonKG += o.ShippingDistanceKM * float64(o.OrderQuantity) * carbonFactor(o.ShippingMethod) / 1000
		distance += o.ShippingDistanceKM
	}

	n := float64(len(view))
	m.RiskPercent = float64(delayed) / n * 100
	m.OnTimePercent = float64(len(view)-delayed) / n * 100
	m.CarbonMT = carbonKG / 1000
	m.AvgTransitDays = distance / n / transitKMDays
	return m
}

func carbonFactor(method contracts.ShippingMethod) float64 {
	if f, ok := carbonFactors[method]; ok {
		return f
	}
	return defaultCarbonFactor
}

// StatCards renders the four headline cards. The change column is a fixed
// label chosen by whether overrides exist, not a computed delta.
func StatCards(m Metrics) []contracts.StatCard {
	otdChange, riskLabel := "-1.1%", "Moderate"
	if m.Mitigating {
		otdChange, riskLabel = "+1.2%", "Mitigating"
	}

	return []contracts.StatCard{
		{Label: "On-Time Delivery", Value: fmt.Sprintf("%.1f%%", m.OnTimePercent), Change: otdChange, Positive: m.Mitigating},
		{Label: "Risk Exposure", Value: fmt.Sprintf("%.1f%%", m.RiskPercent), Change: riskLabel, Positive: m.Mitigating},
		{Label: "Avg Transit Time", Value: fmt.Sprintf("%.1f Days", m.AvgTransitDays), Change: "-0.2d", Positive: true},
		{Label: "Carbon Impact", Value: fmt.Sprintf("%.1f MT", m.CarbonMT), Change: "-3.1%", Positive: true},
	}
}

// ModeSplit is the delayed rate per shipping method.
func ModeSplit(view []contracts.Order) map[contracts.ShippingMethod]contracts.ModeRisk {
	type tally struct{ delayed, total int }
	groups := make(map[contracts.ShippingMethod]*tally)
	for _, o := range view {
		g, ok := groups[o.ShippingMethod]
		if !ok {
			g = &tally{}
			groups[o.ShippingMethod] = g
		}
		g.total++
		if o.Delayed {
			g.delayed++
		}
	}

	out := make(map[contracts.ShippingMethod]contracts.ModeRisk, len(groups))
	for method, g := range groups {
		color, ok := modeColors[method]
		if !ok {
			color = defaultModeColor
		}
		out[method] = contracts.ModeRisk{
			Value: float64(g.delayed) / float64(g.total) * 100,
			Color: color,
		}
	}
	return out
}

// TrendPoints is the daily delayed rate over the most recent 15 order dates,
// oldest first.
func TrendPoints(view []contracts.Order) contracts.Trend {
	type tally struct{ delayed, total int }
	days := make(map[time.Time]*tally)
	for _, o := range view {
		y, mo, d := o.OrderDate.Date()
		day := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
		t, ok := days[day]
		if !ok {
			t = &tally{}
			days[day] = t
		}
		t.total++
		if o.Delayed {
			t.delayed++
		}
	}

	keys := make([]time.Time, 0, len(days))
	for day := range days {
		keys = append(keys, day)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	if len(keys) > trendWindow {
		keys = keys[len(keys)-trendWindow:]
	}

	trend := contracts.Trend{
		Labels: make([]string, 0, len(keys)),
		Values: make([]float64, 0, len(keys)),
		Colors: make([]string, 0, len(keys)),
	}
	for _, day := range keys {
		t := days[day]
		v := float64(t.delayed) / float64(t.total) * 100
		trend.Labels = append(trend.Labels, day.Format(labelLayout))
		trend.Values = append(trend.Values, v)
		trend.Colors = append(trend.Colors, TrendColor(v))
	}
	return trend
}

// TrendColor buckets a daily risk percentage: <20 low, 20-35 medium, >35 high.
func TrendColor(v float64) string {
	switch {
	case v < 20:
		return colorLow
	case v <= 35:
		return colorMedium
	default:
		return colorHigh
	}
}

// Warnings lists the riskiest orders that have not been rerouted: delayed
// first, then by ascending supplier reliability.
func Warnings(orders []contracts.Order, snap override.Snapshot) []contracts.Warning {
	remaining := make([]contracts.Order, 0, len(orders))
	for _, o := range orders {
		if !snap.Has(o.ID) {
			remaining = append(remaining, o)
		}
	}

	sort.SliceStable(remaining, func(i, j int) bool {
		a, b := remaining[i], remaining[j]
		if a.Delayed != b.Delayed {
			return a.Delayed
		}
		return a.SupplierReliability < b.SupplierReliability
	})
	if len(remaining) > warningLimit {
		remaining = remaining[:warningLimit]
	}

	out := make([]contracts.Warning, 0, len(remaining))
	for _, o := range remaining {
		out = append(out, contracts.Warning{
			ID:     o.ID,
			Score:  fmt.Sprintf("%.0f%%", o.SupplierReliability*100),
			Method: o.ShippingMethod,
		})
	}
	return out
}
