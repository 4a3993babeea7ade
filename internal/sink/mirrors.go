package sink

import (
	"context"

	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/contracts"
)

// Publisher is satisfied by mq.Producer.
type Publisher interface {
	PublishJSON(ctx context.Context, key string, payload any) error
}

// Store is satisfied by storage.Repository.
type Store interface {
	InsertAssessment(ctx context.Context, a contracts.Assessment) error
}

type publisherSink struct {
	publisher Publisher
}

// NewPublisherSink publishes each assessment keyed by order id.
func NewPublisherSink(p Publisher) Sink {
	return publisherSink{publisher: p}
}

func (s publisherSink) Record(ctx context.Context, a contracts.Assessment) error {
	return s.publisher.PublishJSON(ctx, a.OrderID, a)
}

type storeSink struct {
	store Store
}

func NewStoreSink(s Store) Sink {
	return storeSink{store: s}
}

func (s storeSink) Record(ctx context.Context, a contracts.Assessment) error {
	return s.store.InsertAssessment(ctx, a)
}
