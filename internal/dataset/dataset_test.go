package dataset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/contracts"
)

const ordersCSV = `order_id,order_date,supplier_reliability_score,warehouse_inventory_level,order_quantity,shipping_distance_km,shipping_method,delayed
1001,2024-03-01,0.91,120,50,800,Road,0
1002,2024-03-01 14:30:00,0.42,80,10,5200,Air,1
1003,2024-03-02,0.77,200,300,12000.5,Sea,1.0
`

func TestReadOrders(t *testing.T) {
	orders, err := ReadOrders(strings.NewReader(ordersCSV))
	require.NoError(t, err)
	require.Len(t, orders, 3)

	assert.Equal(t, contracts.Order{
		ID:                  1002,
		OrderDate:           time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC),
		Delayed:             true,
		ShippingMethod:      contracts.MethodAir,
		ShippingDistanceKM:  5200,
		OrderQuantity:       10,
		SupplierReliability: 0.42,
	}, orders[1])
	assert.False(t, orders[0].Delayed)
	assert.True(t, orders[2].Delayed)
	assert.InDelta(t, 12000.5, orders[2].ShippingDistanceKM, 1e-9)
}

func TestReadOrdersHeaderOnly(t *testing.T) {
	orders, err := ReadOrders(strings.NewReader("order_id,order_date,delayed,shipping_method,shipping_distance_km,order_quantity,supplier_reliability_score\n"))
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestReadOrdersErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing column", "order_id,order_date\n1,2024-01-01\n", "header missing columns"},
		{"bad flag", "order_id,order_date,delayed,shipping_method,shipping_distance_km,order_quantity,supplier_reliability_score\n1,2024-01-01,maybe,Air,1,1,0.5\n", "row 2"},
		{"bad date", "order_id,order_date,delayed,shipping_method,shipping_distance_km,order_quantity,supplier_reliability_score\n1,yesterday,0,Air,1,1,0.5\n", "invalid order_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadOrders(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCSVOrdersReloadsEachCall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orders.csv")
	require.NoError(t, os.WriteFile(path, []byte(ordersCSV), 0o644))
	source := NewCSVOrders(path)

	first, err := source.Orders(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 3)

	trimmed := strings.Join(strings.Split(ordersCSV, "\n")[:2], "\n") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(trimmed), 0o644))

	second, err := source.Orders(context.Background())
	require.NoError(t, err)
	assert.Len(t, second, 1)
}

func TestLoadManifestWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shipments_db.xlsx")
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"order_id", "destination", "cargo_value", "shipping_method"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"SHP-001", "Rotterdam", 250000, "Air"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"SHP-002", "Shanghai", 1200.5}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	entries, err := LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "SHP-001", entries[0].OrderID)
	assert.Equal(t, "Rotterdam", entries[0].Destination)
	assert.True(t, decimal.NewFromInt(250000).Equal(entries[0].CargoValue))
	assert.Equal(t, contracts.MethodAir, entries[0].Features.ShippingMethod)
	assert.Equal(t, 0.85, entries[0].Features.SupplierReliability)

	assert.Equal(t, contracts.DefaultFeatures(), entries[1].Features)
	assert.True(t, decimal.RequireFromString("1200.5").Equal(entries[1].CargoValue))
}

func TestLoadManifestCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.csv")
	body := "order_id,destination,cargo_value,supplier_reliability_score\nA1,Hamburg,\"$10,000\",0.4\n,,,\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	entries, err := LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, decimal.NewFromInt(10000).Equal(entries[0].CargoValue))
	assert.Equal(t, 0.4, entries[0].Features.SupplierReliability)
}

func TestLoadManifestRejectsNegativeCargo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manifest.csv")
	require.NoError(t, os.WriteFile(path, []byte("order_id,destination,cargo_value\nA1,Hamburg,-5\n"), 0o644))

	_, err := LoadManifest(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative")
}

func TestRequireArtifacts(t *testing.T) {
	dir := t.TempDir()
	present := filepath.Join(dir, "model.json")
	require.NoError(t, os.WriteFile(present, []byte("{}"), 0o644))

	require.NoError(t, RequireArtifacts(present))

	err := RequireArtifacts(present, filepath.Join(dir, "missing.xlsx"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingArtifact))

	err = RequireArtifacts(dir)
	assert.True(t, errors.Is(err, ErrMissingArtifact))
}
