// Package model loads the exported delay classifier. The artifact is a
// logistic model: standardized numeric features plus one-hot categorical
// weights, written as JSON or YAML.
package model

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/contracts"
)

type Scale struct {
	Mean  float64 `yaml:"mean"`
	Scale float64 `yaml:"scale"`
}

type Logistic struct {
	Intercept    float64                       `yaml:"intercept"`
	Coefficients map[string]float64            `yaml:"coefficients"`
	Scaling      map[string]Scale              `yaml:"scaling"`
	Categorical  map[string]map[string]float64 `yaml:"categorical"`
}

// Load decodes an artifact from disk. yaml.v3 accepts JSON documents too.
func Load(path string) (*Logistic, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model artifact %s: %w", path, err)
	}

	var m Logistic
	if err := yaml.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("decode model artifact %s: %w", path, err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("model artifact %s: %w", path, err)
	}
	return &m, nil
}

func (m *Logistic) validate() error {
	if len(m.Coefficients) == 0 && len(m.Categorical) == 0 {
		return errors.New("no coefficients")
	}
	for name := range m.Coefficients {
		if _, ok := numericValue(contracts.Features{}, name); !ok {
			return fmt.Errorf("unknown numeric feature %q", name)
		}
	}
	for name, s := range m.Scaling {
		if s.Scale == 0 {
			return fmt.Errorf("zero scale for %q", name)
		}
	}
	for name := range m.Categorical {
		if _, ok := categoricalValue(contracts.Features{}, name); !ok {
			return fmt.Errorf("unknown categorical feature %q", name)
		}
	}
	return nil
}

// PredictDelay returns the probability of the delayed class.
func (m *Logistic) PredictDelay(f contracts.Features) (float64, error) {
	z := m.Intercept
	for name, coef := range m.Coefficients {
		v, _ := numericValue(f, name)
		if s, ok := m.Scaling[name]; ok {
			v = (v - s.Mean) / s.Scale
		}
		z += coef * v
	}
	for name, weights := range m.Categorical {
		v, _ := categoricalValue(f, name)
		z += weights[v]
	}

	p := 1 / (1 + math.Exp(-z))
	if math.IsNaN(p) {
		return 0, errors.New("model produced NaN")
	}
	return p, nil
}

func numericValue(f contracts.Features, name string) (float64, bool) {
	switch name {
	case "supplier_reliability_score":
		return f.SupplierReliability, true
	case "warehouse_inventory_level":
		return f.WarehouseInventoryLevel, true
	case "order_quantity":
		return f.OrderQuantity, true
	case "shipping_distance_km":
		return f.ShippingDistanceKM, true
	case "processing_time_hours":
		return f.ProcessingTimeHours, true
	default:
		return 0, false
	}
}

func categoricalValue(f contracts.Features, name string) (string, bool) {
	switch name {
	case "shipping_method":
		return string(f.ShippingMethod), true
	case "weather_condition":
		return f.WeatherCondition, true
	case "order_priority":
		return f.OrderPriority, true
	default:
		return "", false
	}
}
