package model

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/contracts"
)

func writeArtifact(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadJSONAndPredict(t *testing.T) {
	path := writeArtifact(t, "delay_risk_model.json", `{"intercept": 0.5,
  "coefficients": {"supplier_reliability_score": -2.0, "shipping_distance_km": 1.0},
  "scaling": {"shipping_distance_km": {"mean": 2000, "scale": 1000}},
  "categorical": {"shipping_method": {"Air": 0.25}}}`)

	m, err := Load(path)
	require.NoError(t, err)

	f := contracts.DefaultFeatures()
	p, err := m.PredictDelay(f)
	require.NoError(t, err)

	// z = 0.5 - 2*0.85 + 1*0 + 0 (Sea has no weight)
	want := 1 / (1 + math.Exp(1.2))
	assert.InDelta(t, want, p, 1e-12)

	f.ShippingMethod = contracts.MethodAir
	pAir, err := m.PredictDelay(f)
	require.NoError(t, err)
	assert.Greater(t, pAir, p)
}

func TestLoadYAML(t *testing.T) {
	path := writeArtifact(t, "model.yaml", "intercept: 0\ncategorical:\n  order_priority:\n    High: 0\n")

	m, err := Load(path)
	require.NoError(t, err)

	p, err := m.PredictDelay(contracts.DefaultFeatures())
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p, 1e-12)
}

func TestLoadRejectsBadArtifacts(t *testing.T) {
	tests := map[string]string{
		"empty":           `{"intercept": 1}`,
		"unknown numeric": `{"coefficients": {"wind_speed": 1}}`,
		"zero scale":      `{"coefficients": {"order_quantity": 1}, "scaling": {"order_quantity": {"mean": 1, "scale": 0}}}`,
		"unknown cat":     `{"categorical": {"carrier": {"DHL": 1}}}`,
		"not a document":  `[1, 2`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeArtifact(t, "m.json", body))
			assert.Error(t, err)
		})
	}
}
