package contracts

import "time"

type ShippingMethod string

const (
	MethodAir  ShippingMethod = "Air"
	MethodRoad ShippingMethod = "Road"
	MethodRail ShippingMethod = "Rail"
	MethodSea  ShippingMethod = "Sea"
)

// Order is one row of the fulfillment dataset.
type Order struct {
	ID                  int64          `json:"order_id"`
	OrderDate           time.Time      `json:"order_date"`
	Delayed             bool           `json:"delayed"`
	ShippingMethod      ShippingMethod `json:"shipping_method"`
	ShippingDistanceKM  float64        `json:"shipping_distance_km"`
	OrderQuantity       int            `json:"order_quantity"`
	SupplierReliability float64        `json:"supplier_reliability_score"`
}

type StatCard struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Change   string `json:"change"`
	Positive bool   `json:"pos"`
}

type ModeRisk struct {
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

type Trend struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Colors []string  `json:"colors"`
}

type Warning struct {
	ID     int64          `json:"id"`
	Score  string         `json:"score"`
	Method ShippingMethod `json:"method"`
}

type Story struct {
	Status   string            `json:"status"`
	Story    string            `json:"story"`
	Timeline map[string]string `json:"timeline"`
}

type Message struct {
	Msg string `json:"msg"`
}
