package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/careerdeck/internal/jobs"
	"github.com/spigell/careerdeck/internal/logger"
	"github.com/spigell/careerdeck/internal/preferences"
	"github.com/spigell/careerdeck/internal/resume"
	"github.com/spigell/careerdeck/internal/storage"
)

// session bundles what every command needs: logger, config and store.
type session struct {
	ctx    context.Context
	logger *zap.Logger
	config *Config
	store  storage.Store
}

// newSession builds the logger, reads the config and opens the store. It
// exits the process on failure, like the commands themselves do.
func newSession() *session {
	ctx := context.Background()

	logger, err := logger.New(logger.Options{
		JSON:   viper.GetBool("json"),
		Debug:  viper.GetBool("debug"),
		Output: viper.GetString("log-output"),
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	logger.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	store, err := storage.New(ctx, config.Storage, logger)
	if err != nil {
		logger.Fatal("opening storage", zap.Error(err))
	}

	return &session{ctx: ctx, logger: logger, config: config, store: store}
}

func (s *session) close() {
	if closer, ok := s.store.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			s.logger.Warn("closing storage", zap.Error(err))
		}
	}
	_ = s.logger.Sync()
}

func (s *session) catalog() *jobs.Listings {
	catalog, err := jobs.LoadCatalog(s.config.CatalogFile)
	if err != nil {
		s.logger.Fatal("loading job catalog", zap.Error(err), zap.String("path", s.config.CatalogFile))
	}
	s.logger.Debug("job catalog loaded", zap.Int("count", catalog.Len()))
	return catalog
}

// preferences returns nil when none are stored. Unreadable preferences are
// reported and treated as missing.
func (s *session) preferences() *preferences.Preferences {
	data, err := s.store.Get(s.ctx, preferences.StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.logger.Fatal("reading preferences", zap.Error(err))
	}

	prefs, err := preferences.Decode(data)
	if err != nil {
		s.logger.Warn("ignoring unreadable preferences", zap.Error(err), zap.String("hint", "run 'careerdeck prefs set' to store new ones"))
		return nil
	}
	return prefs
}

func (s *session) savePreferences(prefs *preferences.Preferences) {
	if err := storage.SetJSON(s.ctx, s.store, preferences.StorageKey, prefs); err != nil {
		s.logger.Fatal("storing preferences", zap.Error(err))
	}
}

// resume returns an empty record when none is stored or it is unreadable.
func (s *session) resume() *resume.Record {
	data, err := s.store.Get(s.ctx, resume.StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return resume.Empty()
	}
	if err != nil {
		s.logger.Fatal("reading résumé", zap.Error(err))
	}

	record, err := resume.Decode(data)
	if err != nil {
		s.logger.Warn("ignoring unreadable résumé", zap.Error(err))
		return resume.Empty()
	}
	return record
}

// location resolves the digest timezone.
func (s *session) location() *time.Location {
	if s.config.Digest == nil || s.config.Digest.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(s.config.Digest.Timezone)
	if err != nil {
		s.logger.Fatal("loading digest timezone", zap.Error(err), zap.String("timezone", s.config.Digest.Timezone))
	}
	return loc
}
