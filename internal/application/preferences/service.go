// Package preferences loads and stores the application state
package preferences

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/preferences"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/inbound"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/outbound"
	apperrors "github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/errors"
)

// Keys names the persisted entries
type Keys struct {
	Theme    string
	Language string
}

// Service implements inbound.PreferencesService. Theme and language survive
// restarts; tab and fullscreen are kept in memory.
type Service struct {
	mu     sync.Mutex
	kv     outbound.KeyValueStore
	keys   Keys
	state  preferences.State
	loaded bool
	logger *zap.Logger
}

// NewService creates the service. defaultLanguage applies until a language
// has been stored.
func NewService(kv outbound.KeyValueStore, keys Keys, defaultLanguage shared.Language, logger *zap.Logger) *Service {
	state := preferences.Default()
	state.Language = defaultLanguage.OrDefault()
	return &Service{kv: kv, keys: keys, state: state, logger: logger.Named("preferences-service")}
}

var _ inbound.PreferencesService = (*Service)(nil)

// Get returns the current state, loading persisted values on first use
func (s *Service) Get(ctx context.Context) preferences.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)
	return s.state
}

// Update validates and applies the patch, persisting theme and language
func (s *Service) Update(ctx context.Context, patch preferences.Patch) (preferences.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.load(ctx)

	next, err := s.state.Apply(patch)
	if err != nil {
		return s.state, apperrors.NewValidationError(err.Error())
	}

	if next.Theme != s.state.Theme {
		if err := s.kv.Set(ctx, s.keys.Theme, string(next.Theme)); err != nil {
			return s.state, apperrors.NewDatabaseError("save theme", err)
		}
		s.state.Theme = next.Theme
	}
	if next.Language != s.state.Language {
		if err := s.kv.Set(ctx, s.keys.Language, string(next.Language)); err != nil {
			return s.state, apperrors.NewDatabaseError("save language", err)
		}
	}

	s.state = next
	return s.state, nil
}

// load reads persisted values until both reads succeed or find nothing.
// Unreadable or invalid values keep the defaults. Callers hold s.mu.
func (s *Service) load(ctx context.Context) {
	if s.loaded {
		return
	}
	ok := true

	if theme, err := s.kv.Get(ctx, s.keys.Theme); err == nil {
		s.state.Theme = preferences.ParseTheme(theme)
	} else if !errors.Is(err, outbound.ErrKeyNotFound) {
		s.logger.Warn("Failed to load theme", zap.Error(err))
		ok = false
	}

	if raw, err := s.kv.Get(ctx, s.keys.Language); err == nil {
		if lang, perr := shared.ParseLanguage(raw); perr == nil && lang != "" {
			s.state.Language = lang
		}
	} else if !errors.Is(err, outbound.ErrKeyNotFound) {
		s.logger.Warn("Failed to load language", zap.Error(err))
		ok = false
	}

	s.loaded = ok
}
