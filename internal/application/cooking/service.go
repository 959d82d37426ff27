// Package cooking manages cooking-mode sessions and the keep-awake lease
// each one holds.
package cooking

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/cooking"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/inbound"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/outbound"
	apperrors "github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/errors"
)

// RecipeReader looks up the recipe to cook
type RecipeReader interface {
	Get(ctx context.Context, id string) (*recipe.Recipe, error)
}

// Metrics observes the number of open sessions
type Metrics interface {
	CookingSessions(n int)
}

// Config controls idle expiry
type Config struct {
	IdleTimeout  time.Duration
	ReapInterval time.Duration
}

type session struct {
	id              string
	clientID        string
	recipe          recipe.Recipe
	stepper         *cooking.Stepper
	showIngredients bool
	guard           *cooking.Guard
	held            bool
	lastActive      time.Time
}

// Service implements inbound.CookingService. A client has at most one open
// session; starting another closes the previous one.
type Service struct {
	mu        sync.Mutex
	sessions  map[string]*session
	byClient  map[string]string
	recipes   RecipeReader
	wakeLocks outbound.WakeLockProvider
	metrics   Metrics
	cfg       Config
	now       func() time.Time
	logger    *zap.Logger

	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	closed   bool
}

// NewService creates the cooking service. metrics may be nil.
func NewService(recipes RecipeReader, wakeLocks outbound.WakeLockProvider, metrics Metrics, cfg Config, logger *zap.Logger) *Service {
	return &Service{
		sessions:  make(map[string]*session),
		byClient:  make(map[string]string),
		recipes:   recipes,
		wakeLocks: wakeLocks,
		metrics:   metrics,
		cfg:       cfg,
		now:       time.Now,
		logger:    logger.Named("cooking-service"),
		stop:      make(chan struct{}),
	}
}

var _ inbound.CookingService = (*Service)(nil)

// Start opens cooking mode for a stored recipe. A missing keep-awake
// capability never fails the call.
func (s *Service) Start(ctx context.Context, clientID, recipeID string) (inbound.CookingView, error) {
	r, err := s.recipes.Get(ctx, recipeID)
	if err != nil {
		return inbound.CookingView{}, err
	}

	lease, err := s.wakeLocks.Acquire(ctx, clientID)
	held := err == nil
	if err != nil {
		s.logger.Warn("Wake lock unavailable", zap.String("client_id", clientID), zap.Error(err))
		lease = cooking.NoopLease{}
	}
	if _, noop := lease.(cooking.NoopLease); noop {
		held = false
	}

	sess := &session{
		id:         uuid.NewString(),
		clientID:   clientID,
		recipe:     r.Clone(),
		stepper:    cooking.NewStepper(r.Steps),
		guard:      cooking.NewGuard(lease),
		held:       held,
		lastActive: s.now(),
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		sess.guard.Release()
		return inbound.CookingView{}, apperrors.NewAppError(apperrors.CodeServiceUnavailable, "Cooking mode is shutting down", "")
	}
	if previous, ok := s.byClient[clientID]; ok {
		s.closeLocked(previous, "replaced")
	}
	s.sessions[sess.id] = sess
	s.byClient[clientID] = sess.id
	view := s.viewLocked(sess)
	s.observeLocked()
	s.mu.Unlock()

	s.logger.Info("Cooking session started",
		zap.String("session_id", sess.id),
		zap.String("recipe_id", recipeID),
		zap.Bool("wake_lock", held),
	)
	return view, nil
}

// Get returns the current step of a session
func (s *Service) Get(sessionID string) (inbound.CookingView, error) {
	return s.update(sessionID, func(*session) {})
}

// Next advances one step, clamped at the last one
func (s *Service) Next(sessionID string) (inbound.CookingView, error) {
	return s.update(sessionID, func(sess *session) { sess.stepper.Next() })
}

// Previous goes back one step, clamped at the first one
func (s *Service) Previous(sessionID string) (inbound.CookingView, error) {
	return s.update(sessionID, func(sess *session) { sess.stepper.Previous() })
}

// ToggleIngredients shows or hides the ingredient overlay
func (s *Service) ToggleIngredients(sessionID string) (inbound.CookingView, error) {
	return s.update(sessionID, func(sess *session) { sess.showIngredients = !sess.showIngredients })
}

// Close exits cooking mode and releases the lease
func (s *Service) Close(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sessionID]; !ok {
		return apperrors.NewNotFoundError("Cooking session")
	}
	s.closeLocked(sessionID, "closed")
	s.observeLocked()
	return nil
}

// Active returns the number of open sessions
func (s *Service) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Reap closes sessions idle for longer than the idle timeout and returns
// how many were closed.
func (s *Service) Reap() int {
	if s.cfg.IdleTimeout <= 0 {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.cfg.IdleTimeout)
	reaped := 0
	for id, sess := range s.sessions {
		if sess.lastActive.Before(cutoff) {
			s.closeLocked(id, "idle")
			reaped++
		}
	}
	if reaped > 0 {
		s.observeLocked()
	}
	return reaped
}

// StartReaper runs Reap every ReapInterval until Shutdown
func (s *Service) StartReaper() {
	if s.cfg.ReapInterval <= 0 || s.cfg.IdleTimeout <= 0 {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.cfg.ReapInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if n := s.Reap(); n > 0 {
					s.logger.Info("Reaped idle cooking sessions", zap.Int("count", n))
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// Shutdown stops the reaper and closes every session
func (s *Service) Shutdown(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.sessions {
		s.closeLocked(id, "shutdown")
	}
	s.observeLocked()
	return nil
}

func (s *Service) update(sessionID string, fn func(*session)) (inbound.CookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return inbound.CookingView{}, apperrors.NewNotFoundError("Cooking session")
	}
	fn(sess)
	sess.lastActive = s.now()
	return s.viewLocked(sess), nil
}

func (s *Service) closeLocked(sessionID, reason string) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return
	}
	sess.guard.Release()
	delete(s.sessions, sessionID)
	if s.byClient[sess.clientID] == sessionID {
		delete(s.byClient, sess.clientID)
	}
	s.logger.Debug("Cooking session closed",
		zap.String("session_id", sessionID),
		zap.String("reason", reason),
	)
}

func (s *Service) observeLocked() {
	if s.metrics != nil {
		s.metrics.CookingSessions(len(s.sessions))
	}
}

func (s *Service) viewLocked(sess *session) inbound.CookingView {
	view := inbound.CookingView{
		SessionID:       sess.id,
		RecipeID:        sess.recipe.ID,
		RecipeName:      sess.recipe.Name,
		CurrentStep:     sess.stepper.Current(),
		TotalSteps:      sess.stepper.Total(),
		Step:            sess.stepper.Step(),
		Position:        sess.stepper.Position(),
		IsFirst:         sess.stepper.IsFirst(),
		IsLast:          sess.stepper.IsLast(),
		ShowIngredients: sess.showIngredients,
		WakeLockHeld:    sess.held && !sess.guard.Released(),
	}
	if sess.showIngredients {
		view.Ingredients = append([]string{}, sess.recipe.Ingredients...)
	}
	return view
}
