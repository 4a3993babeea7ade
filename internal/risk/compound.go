package risk

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/contracts"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/signals"
)

const (
	// WeatherUnavailable is reported when the weather lookup fails.
	WeatherUnavailable = "Data_Unavailable"

	MaxRisk = 0.99

	severeWeatherMultiplier = 1.6
	newsSurgeMultiplier     = 1.4
	newsSurgeThreshold      = 100
)

// Model returns the probability that a shipment with the given features is
// delayed.
type Model interface {
	PredictDelay(f contracts.Features) (float64, error)
}

type Engine struct {
	model     Model
	signals   signals.Source
	newsQuery string
	logger    *zap.Logger
	now       func() time.Time
}

func NewEngine(model Model, source signals.Source, newsQuery string, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		model:     model,
		signals:   source,
		newsQuery: newsQuery,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Assess scores one manifest entry. Signal lookups never fail the call:
// weather falls back to WeatherUnavailable and news to zero. Only a model
// failure is returned.
func (e *Engine) Assess(ctx context.Context, runID string, entry contracts.ManifestEntry) (contracts.Assessment, error) {
	weather, news := e.externalFactors(ctx, entry.Destination)

	base, err := e.model.PredictDelay(entry.Features)
	if err != nil {
		return contracts.Assessment{}, fmt.Errorf("predict delay for %s: %w", entry.OrderID, err)
	}
	base = clamp(base, 0, 1)

	final := Compound(base, weather, news)

	return contracts.Assessment{
		ID:          uuid.NewString(),
		RunID:       runID,
		Timestamp:   e.now(),
		OrderID:     entry.OrderID,
		Destination: entry.Destination,
		Weather:     weather,
		NewsCount:   news,
		BaseRisk:    base,
		FinalRisk:   final,
		CargoValue:  entry.CargoValue,
		Exposure:    Exposure(entry.CargoValue, final),
		Tier:        Classify(final),
	}, nil
}

func (e *Engine) externalFactors(ctx context.Context, destination string) (string, int) {
	weather, err := e.signals.Weather(ctx, destination)
	if err != nil {
		e.logger.Debug("weather signal unavailable", zap.String("destination", destination), zap.Error(err))
		weather = WeatherUnavailable
	}

	news, err := e.signals.NewsCount(ctx, e.newsQuery)
	if err != nil {
		e.logger.Debug("news signal unavailable", zap.String("query", e.newsQuery), zap.Error(err))
		news = 0
	}
	return weather, news
}

// Compound applies the weather and news multipliers to base and caps the
// result at MaxRisk.
func Compound(base float64, weather string, news int) float64 {
	return math.Min(MaxRisk, base*WeatherMultiplier(weather)*NewsMultiplier(news))
}

func WeatherMultiplier(weather string) float64 {
	switch weather {
	case "Storm", "Rain", "Thunderstorm":
		return severeWeatherMultiplier
	default:
		return 1.0
	}
}

func NewsMultiplier(news int) float64 {
	if news > newsSurgeThreshold {
		return newsSurgeMultiplier
	}
	return 1.0
}

// Exposure is the expected-loss proxy cargo × risk, rounded to cents.
func Exposure(cargo decimal.Decimal, finalRisk float64) decimal.Decimal {
	return cargo.Mul(decimal.NewFromFloat(finalRisk)).Round(2)
}

// Classify maps final risk onto the three severity tiers, evaluated from
// the top down.
func Classify(finalRisk float64) contracts.Tier {
	switch {
	case finalRisk > 0.60:
		return contracts.TierCritical
	case finalRisk > 0.45:
		return contracts.TierElevated
	default:
		return contracts.TierNormal
	}
}

func clamp(value, min, max float64) float64 {
	if math.IsNaN(value) || value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
