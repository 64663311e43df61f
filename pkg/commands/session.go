package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"tableflip.dev/journey/pkg/dashboard"
	"tableflip.dev/journey/pkg/logging"
	"tableflip.dev/journey/pkg/query"
	"tableflip.dev/journey/pkg/store"
)

// session is what every command needs: settings, a logger and the store.
type session struct {
	settings *store.Settings
	logger   *zap.Logger
	store    *store.Disk
}

func openSession() (*session, error) {
	settings, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Options{
		Level:       settings.LogLevel,
		Development: settings.LogDevelopment,
		File:        settings.LogFile,
	})
	if err != nil {
		return nil, err
	}
	s, err := store.Load(settings, store.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	logger.Debug("opened store", zap.String("path", settings.BasePath()))
	return &session{settings: settings, logger: logger, store: s}, nil
}

func (s *session) pipeline() (query.Pipeline, error) {
	if s.settings.Locale == "" {
		return query.Pipeline{}, nil
	}
	tag, err := language.Parse(s.settings.Locale)
	if err != nil {
		return query.Pipeline{}, fmt.Errorf("invalid locale %q: %w", s.settings.Locale, err)
	}
	return query.Pipeline{Language: tag}, nil
}

// dashboard builds a controller over the session store.
func (s *session) dashboard(sort query.SortOption) (*dashboard.Controller, error) {
	p, err := s.pipeline()
	if err != nil {
		return nil, err
	}
	return dashboard.New(s.store,
		dashboard.WithLogger(s.logger),
		dashboard.WithDelay(s.settings.Debounce),
		dashboard.WithSort(sort),
		dashboard.WithPipeline(p),
	), nil
}

func (s *session) close() {
	_ = s.logger.Sync()
}

func journalCompletions(toComplete string) []string {
	sess, err := openSession()
	if err != nil {
		return nil
	}
	defer sess.close()
	all, err := sess.store.ListAll(context.Background())
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(all))
	for _, j := range all {
		if strings.HasPrefix(j.ID, toComplete) {
			ids = append(ids, j.ID+"\t"+strconv.Quote(j.DisplayTitle()))
		}
	}
	return ids
}
