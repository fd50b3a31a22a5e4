package digest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spigell/careerdeck/internal/jobs"
	"github.com/spigell/careerdeck/internal/logger"
	"github.com/spigell/careerdeck/internal/preferences"
	"github.com/spigell/careerdeck/internal/storage"
	"github.com/spigell/careerdeck/internal/utils"
)

const maxLogPreview = 120

// Service persists one digest per calendar day.
type Service struct {
	store  storage.Store
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store storage.Store, log *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.WithFields(log),
		now:    time.Now,
	}
}

// GetOrCreate returns the digest stored for today, building and storing it
// first when there is none. created reports whether a new digest was built.
//
// A stored digest is returned as is, even when the catalog or preferences
// changed since it was generated: the digest is frozen for the rest of the
// day. No digest is stored when prefs is nil.
func (s *Service) GetOrCreate(ctx context.Context, catalog []*jobs.Listing, prefs *preferences.Preferences, today string) (d *Digest, created bool, err error) {
	key := Key(today)
	log := logger.WithDigestFields(s.logger, key, today)

	existing, err := s.Load(ctx, today)
	switch {
	case err == nil:
		log.Debug("using stored digest", zap.Int("jobs", len(existing.Jobs)))
		return existing, false, nil
	case errors.Is(err, storage.ErrNotFound):
	case errors.Is(err, errCorrupt):
		log.Warn("stored digest is unreadable, generating a new one", zap.Error(err))
	default:
		return nil, false, err
	}

	d = Build(catalog, prefs, today, s.now().UTC())
	if d == nil {
		log.Info("no preferences configured, digest not generated")
		return nil, false, nil
	}

	if err := storage.SetJSON(ctx, s.store, key, d); err != nil {
		return nil, false, fmt.Errorf("storing digest: %w", err)
	}

	log.Info("digest generated", zap.Int("catalog", len(catalog)), zap.Int("jobs", len(d.Jobs)))
	return d, true, nil
}

var errCorrupt = errors.New("corrupt digest")

// Load reads the stored digest for the given date.
func (s *Service) Load(ctx context.Context, date string) (*Digest, error) {
	data, err := s.store.Get(ctx, Key(date))
	if err != nil {
		return nil, err
	}

	var d Digest
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("%w: %v (%s)", errCorrupt, err, utils.TruncateForLog(string(data), maxLogPreview))
	}
	return &d, nil
}

// Discard removes the digest stored for the given date.
func (s *Service) Discard(ctx context.Context, date string) error {
	return s.store.Remove(ctx, Key(date))
}
