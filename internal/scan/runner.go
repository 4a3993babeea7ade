// Package scan drives the batch risk scan over a shipment manifest.
package scan

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/contracts"
	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/sink"
)

// Assessor scores one manifest entry; satisfied by risk.Engine.
type Assessor interface {
	Assess(ctx context.Context, runID string, entry contracts.ManifestEntry) (contracts.Assessment, error)
}

type Summary struct {
	RunID   string
	Scanned int
	Failed  int
	ByTier  map[contracts.Tier]int
}

type Runner struct {
	assessor Assessor
	sink     sink.Sink
	out      io.Writer
	logger   *zap.Logger
}

func NewRunner(assessor Assessor, s sink.Sink, out io.Writer, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{assessor: assessor, sink: s, out: out, logger: logger}
}

var rule = strings.Repeat("-", 65)

// Run processes entries in order. A row whose model call fails is reported
// and skipped; a sink failure aborts the run.
func (r *Runner) Run(ctx context.Context, entries []contracts.ManifestEntry) (Summary, error) {
	summary := Summary{RunID: uuid.NewString(), ByTier: make(map[contracts.Tier]int)}

	fmt.Fprintln(r.out, "INITIALIZING GLOBAL RISK SCAN...")
	fmt.Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "%-12s | %-12s | %-8s | %-12s\n", "ORDER_ID", "CITY", "RISK", "EXPOSURE")
	fmt.Fprintln(r.out, rule)

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		a, err := r.assessor.Assess(ctx, summary.RunID, entry)
		if err != nil {
			summary.Failed++
			r.logger.Error("risk-scan assess error", zap.String("order_id", entry.OrderID), zap.Error(err))
			fmt.Fprintf(r.out, "%-12s | %-12s | %8s | %12s\n", entry.OrderID, entry.Destination, "MODEL_ERR", "-")
			continue
		}

		fmt.Fprintf(r.out, "%-12s | %-12s | %8s | %12s\n", a.OrderID, a.Destination, sink.Percent(a.FinalRisk, 1), sink.Money(a.Exposure))

		if err := r.sink.Record(ctx, a); err != nil {
			return summary, fmt.Errorf("record %s: %w", a.OrderID, err)
		}
		summary.Scanned++
		summary.ByTier[a.Tier]++

		r.logger.Debug("risk assessment",
			zap.String("order_id", a.OrderID),
			zap.String("weather", a.Weather),
			zap.Int("news", a.NewsCount),
			zap.Float64("base_risk", a.BaseRisk),
			zap.Float64("final_risk", a.FinalRisk),
			zap.String("tier", a.Tier.String()))
	}

	fmt.Fprintln(r.out, rule)
	fmt.Fprintln(r.out, "SCAN COMPLETE: Global Exceptions Logged.")
	return summary, nil
}
