package contracts

import (
	"time"

	"github.com/shopspring/decimal"
)

type Tier string

const (
	TierNormal   Tier = "OPERATIONAL_NORMAL"
	TierElevated Tier = "ELEVATED_MONITORING"
	TierCritical Tier = "CRITICAL_ACTION_REQUIRED"
)

func (t Tier) String() string {
	return string(t)
}

// IsValid reports whether t is one of the three known tiers.
func (t Tier) IsValid() bool {
	switch t {
	case TierNormal, TierElevated, TierCritical:
		return true
	default:
		return false
	}
}

// Features is the record handed to the delay model.
type Features struct {
	SupplierReliability     float64        `json:"supplier_reliability_score" yaml:"supplier_reliability_score"`
	WarehouseInventoryLevel float64        `json:"warehouse_inventory_level" yaml:"warehouse_inventory_level"`
	OrderQuantity           float64        `json:"order_quantity" yaml:"order_quantity"`
	ShippingDistanceKM      float64        `json:"shipping_distance_km" yaml:"shipping_distance_km"`
	ProcessingTimeHours     float64        `json:"processing_time_hours" yaml:"processing_time_hours"`
	ShippingMethod          ShippingMethod `json:"shipping_method" yaml:"shipping_method"`
	WeatherCondition        string         `json:"weather_condition" yaml:"weather_condition"`
	OrderPriority           string         `json:"order_priority" yaml:"order_priority"`
}

// DefaultFeatures is the high-priority template used when a manifest row
// carries no shipment attributes of its own.
func DefaultFeatures() Features {
	return Features{
		SupplierReliability:     0.85,
		WarehouseInventoryLevel: 150,
		OrderQuantity:           400,
		ShippingDistanceKM:      2000,
		ProcessingTimeHours:     24,
		ShippingMethod:          MethodSea,
		WeatherCondition:        "Clear",
		OrderPriority:           "High",
	}
}

type ManifestEntry struct {
	OrderID     string          `json:"order_id"`
	Destination string          `json:"destination"`
	CargoValue  decimal.Decimal `json:"cargo_value"`
	Features    Features        `json:"features"`
}

type Assessment struct {
	ID          string          `json:"id"`
	RunID       string          `json:"run_id"`
	Timestamp   time.Time       `json:"timestamp"`
	OrderID     string          `json:"order_id"`
	Destination string          `json:"destination"`
	Weather     string          `json:"weather"`
	NewsCount   int             `json:"news_count"`
	BaseRisk    float64         `json:"base_risk"`
	FinalRisk   float64         `json:"final_risk"`
	CargoValue  decimal.Decimal `json:"cargo_value"`
	Exposure    decimal.Decimal `json:"exposure"`
	Tier        Tier            `json:"tier"`
}
