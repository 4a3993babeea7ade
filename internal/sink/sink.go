// Package sink records scored shipments. The exception log file is the
// system of record; Kafka and Postgres are optional mirrors.
package sink

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/contracts"
)

// ErrWriteFailed is returned once the exception log could not be appended
// after all retries.
var ErrWriteFailed = errors.New("exception log write failed")

type Sink interface {
	Record(ctx context.Context, a contracts.Assessment) error
}

// FileSink appends one formatted line per assessment to an append-only file.
type FileSink struct {
	mu      sync.Mutex
	path    string
	retries int
	backoff time.Duration
	logger  *zap.Logger
}

func NewFileSink(path string, retries int, logger *zap.Logger) *FileSink {
	if retries < 1 {
		retries = 1
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSink{path: path, retries: retries, backoff: 100 * time.Millisecond, logger: logger}
}

func (s *FileSink) Record(ctx context.Context, a contracts.Assessment) error {
	line := FormatLine(a)

	s.mu.Lock()
	defer s.mu.Unlock()

	var lastErr error
	for attempt := 1; attempt <= s.retries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrWriteFailed, ctx.Err())
			case <-time.After(time.Duration(attempt-1) * s.backoff):
			}
		}
		if lastErr = appendLine(s.path, line); lastErr == nil {
			return nil
		}
		s.logger.Warn("exception log append error", zap.String("path", s.path), zap.Int("attempt", attempt), zap.Error(lastErr))
	}
	return fmt.Errorf("%w: %s after %d attempts: %v", ErrWriteFailed, s.path, s.retries, lastErr)
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open exception log: %w", err)
	}
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("write exception log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close exception log: %w", err)
	}
	return nil
}

// Fanout writes to the primary sink first and fails only if it fails.
// Mirrors are best effort and their errors are logged.
type Fanout struct {
	primary Sink
	mirrors []namedSink
	logger  *zap.Logger
}

type namedSink struct {
	name string
	sink Sink
}

func NewFanout(primary Sink, logger *zap.Logger) *Fanout {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fanout{primary: primary, logger: logger}
}

func (f *Fanout) AddMirror(name string, s Sink) {
	f.mirrors = append(f.mirrors, namedSink{name: name, sink: s})
}

func (f *Fanout) Record(ctx context.Context, a contracts.Assessment) error {
	if err := f.primary.Record(ctx, a); err != nil {
		return err
	}
	for _, m := range f.mirrors {
		if err := m.sink.Record(ctx, a); err != nil {
			f.logger.Warn("assessment mirror error", zap.String("mirror", m.name), zap.String("order_id", a.OrderID), zap.Error(err))
		}
	}
	return nil
}
