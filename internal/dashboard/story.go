package dashboard

import (
	"fmt"
	"time"

	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/contracts"
)

const (
	StatusDelayed = "delayed"
	StatusOnTime  = "on-time"
)

// BuildStory narrates one order. A recovered order is always reported
// on-time regardless of its stored flag.
func BuildStory(o contracts.Order, recovered bool) contracts.Story {
	delayed := o.Delayed && !recovered

	status := StatusOnTime
	if delayed {
		status = StatusDelayed
	}

	story := fmt.Sprintf("Order #%d is moving via %s. ", o.ID, o.ShippingMethod)
	switch {
	case delayed:
		story += "Our AI has flagged a delay risk based on supplier reliability."
	case recovered:
		story += "AI Recovery Active: Shipment rerouted to avoid disruption."
	default:
		story += "The transit route is clear and following the optimized schedule."
	}

	estimate := 2 * 24 * time.Hour
	if delayed {
		estimate = 4 * 24 * time.Hour
	}

	return contracts.Story{
		Status: status,
		Story:  story,
		Timeline: map[string]string{
			"Ordered":    o.OrderDate.Format(labelLayout),
			"Processing": o.OrderDate.Add(12 * time.Hour).Format(labelLayout),
			"Transit":    o.OrderDate.Add(24 * time.Hour).Format(labelLayout),
			"Estimate":   o.OrderDate.Add(estimate).Format(labelLayout),
		},
	}
}
