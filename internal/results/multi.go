package results

import (
	"context"
	"errors"

	"github.com/feral-file/ff-timeline/internal/domain"
)

// Opener builds one sink
type Opener func(ctx context.Context) (Sink, error)

// OpenAll builds every sink in order and fans out to them.
// When an opener fails, the sinks already built are closed.
func OpenAll(ctx context.Context, openers ...Opener) (Sink, error) {
	sinks := make([]Sink, 0, len(openers))
	for _, open := range openers {
		s, err := open(ctx)
		if err != nil {
			if closeErr := (&multiSink{sinks: sinks}).Close(); closeErr != nil {
				return nil, errors.Join(err, closeErr)
			}
			return nil, err
		}
		sinks = append(sinks, s)
	}
	return NewMultiSink(sinks...), nil
}

type multiSink struct {
	sinks []Sink
}

// NewMultiSink creates a sink writing every bundle to each sink in order.
// A single sink is returned as is.
func NewMultiSink(sinks ...Sink) Sink {
	if len(sinks) == 1 {
		return sinks[0]
	}
	return &multiSink{sinks: sinks}
}

// Put implements Sink, stopping at the first failing sink
func (m *multiSink) Put(ctx context.Context, key string, bundle domain.Bundle) error {
	for _, s := range m.sinks {
		if err := s.Put(ctx, key, bundle); err != nil {
			return err
		}
	}
	return nil
}

// Close implements Sink, closing every sink
func (m *multiSink) Close() error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
