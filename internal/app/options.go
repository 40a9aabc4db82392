package service

import (
	"github.com/google/uuid"
	repository "github.com/okian/replaymerge/internal/adapters/repository"
	"github.com/okian/replaymerge/internal/domain/dedupe"
	"github.com/okian/replaymerge/internal/domain/match"
	"github.com/okian/replaymerge/internal/domain/naming"
	"github.com/okian/replaymerge/pkg/logger"
	"github.com/okian/replaymerge/pkg/metrics"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets the game store. The caller owns any observer wiring.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDeduper sets the upload digest set.
func WithDeduper(d dedupe.Deduper) Option {
	return func(s *Service) {
		if d != nil {
			s.deduper = d
		}
	}
}

// WithDedupeSize bounds the default upload digest set.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.dedupeSize = size
		}
	}
}

// WithEngine sets the game engine holding the lookup tables and id sequences.
func WithEngine(e *match.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithEncoder sets the archive file name encoder.
func WithEncoder(e *naming.Encoder) Option {
	return func(s *Service) {
		if e != nil {
			s.encoder = e
		}
	}
}

// WithDecodeWorkers sets how many recordings of a batch decode in parallel.
func WithDecodeWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.decodeWorkers = n
		}
	}
}

// WithMetrics sets the metrics manager.
func WithMetrics(m *metrics.Manager) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithSessionID fixes the session id instead of generating one.
func WithSessionID(id uuid.UUID) Option {
	return func(s *Service) {
		if id != uuid.Nil {
			s.id = id
		}
	}
}
