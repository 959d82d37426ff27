// Package generation runs the per-client recipe generator: the text stage
// inside the request and the image stage in the background.
package generation

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/ai"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/generation"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/inbound"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/outbound"
	apperrors "github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/errors"
)

const (
	msgNothingToSave = "Není co uložit, nejprve vygenerujte recept."
	msgSuperseded    = "Požadavek byl nahrazen novějším."
	subscriberBuffer = 8
)

// RecipeAppender stores generated recipes
type RecipeAppender interface {
	Append(ctx context.Context, r recipe.Recipe) (*recipe.Recipe, error)
	SetImage(ctx context.Context, id, image string) error
}

type clientFlow struct {
	flow    *generation.Flow
	saveMu  sync.Mutex
	subs    map[int]chan generation.Snapshot
	nextSub int
}

// Service implements inbound.GenerationService
type Service struct {
	mu              sync.Mutex
	flows           map[string]*clientFlow
	gateway         outbound.AIGateway
	recipes         RecipeAppender
	defaultLanguage shared.Language
	imageTimeout    time.Duration
	logger          *zap.Logger

	background context.Context
	stop       context.CancelFunc
	wg         sync.WaitGroup
}

// NewService creates the generation service. imageTimeout bounds each
// background image request; zero means no bound.
func NewService(gateway outbound.AIGateway, recipes RecipeAppender, defaultLanguage shared.Language, imageTimeout time.Duration, logger *zap.Logger) *Service {
	background, stop := context.WithCancel(context.Background())
	return &Service{
		flows:           make(map[string]*clientFlow),
		gateway:         gateway,
		recipes:         recipes,
		defaultLanguage: defaultLanguage.OrDefault(),
		imageTimeout:    imageTimeout,
		logger:          logger.Named("generation-service"),
		background:      background,
		stop:            stop,
	}
}

var _ inbound.GenerationService = (*Service)(nil)

// Submit runs the text stage and returns the resulting snapshot. The image
// stage continues after Submit returns.
func (s *Service) Submit(ctx context.Context, clientID, prompt string, lang shared.Language) (generation.Snapshot, error) {
	lang = s.language(s.gateway.ResolveLanguage(prompt, lang))

	s.mu.Lock()
	cf := s.flow(clientID)
	token, err := cf.flow.Submit(prompt, lang, ai.PromptRequiredMessage(lang))
	snap := s.publish(cf)
	s.mu.Unlock()

	if errors.Is(err, generation.ErrPromptRequired) {
		return snap, apperrors.NewValidationError(snap.Error)
	}

	s.logger.Info("Generating recipe",
		zap.String("client_id", clientID),
		zap.Uint64("token", token),
		zap.String("language", string(lang)),
	)

	generated, err := s.gateway.GenerateRecipe(ctx, prompt, lang)

	s.mu.Lock()
	if err != nil {
		cf.flow.RecipeFailed(token, userMessage(err))
		snap = s.publish(cf)
		s.mu.Unlock()
		return snap, err
	}

	r := generated.ToRecipe(recipe.DefaultCategory(lang))
	applied := cf.flow.RecipeSucceeded(token, r)
	snap = s.publish(cf)
	s.mu.Unlock()

	if !applied {
		s.logger.Debug("Discarding stale recipe", zap.String("client_id", clientID), zap.Uint64("token", token))
		return snap, apperrors.NewConflictError(msgSuperseded)
	}

	s.startImage(clientID, token, r.Name)
	return snap, nil
}

// startImage requests the illustration detached from the request context
func (s *Service) startImage(clientID string, token uint64, name string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ctx := s.background
		cancel := context.CancelFunc(func() {})
		if s.imageTimeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, s.imageTimeout)
		}
		image, err := s.gateway.GenerateImage(ctx, ai.ImagePrompt(name))
		cancel()

		s.mu.Lock()
		cf := s.flow(clientID)
		if err != nil {
			if cf.flow.ImageFailed(token) {
				s.publish(cf)
			}
			s.mu.Unlock()
			s.logger.Warn("Image generation failed",
				zap.String("client_id", clientID),
				zap.Uint64("token", token),
				zap.Error(err),
			)
			return
		}

		applied, savedID := cf.flow.ImageSucceeded(token, image)
		if applied {
			s.publish(cf)
		}
		s.mu.Unlock()

		if savedID != "" {
			if err := s.recipes.SetImage(s.background, savedID, image); err != nil {
				s.logger.Warn("Failed to attach image to saved recipe",
					zap.String("recipe_id", savedID),
					zap.Error(err),
				)
			}
		}
	}()
}

// Current returns the client's latest snapshot
func (s *Service) Current(clientID string) generation.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flow(clientID).flow.Snapshot()
}

// Save appends the displayed recipe to the collection. Repeated saves of the
// same generation return the stored copy without appending again.
func (s *Service) Save(ctx context.Context, clientID string) (*recipe.Recipe, error) {
	s.mu.Lock()
	cf := s.flow(clientID)
	s.mu.Unlock()

	cf.saveMu.Lock()
	defer cf.saveMu.Unlock()

	s.mu.Lock()
	displayed, saved, err := cf.flow.Saveable()
	token := cf.flow.Token()
	savedID := cf.flow.Snapshot().SavedID
	s.mu.Unlock()

	if err != nil {
		return nil, apperrors.NewValidationError(msgNothingToSave)
	}
	if saved {
		displayed.ID = savedID
		return &displayed, nil
	}

	stored, err := s.recipes.Append(ctx, displayed)
	if err != nil {
		s.mu.Lock()
		cf.flow.SaveFailed(token, userMessage(err))
		s.publish(cf)
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	cf.flow.MarkSaved(token, stored.ID)
	snap := s.publish(cf)
	s.mu.Unlock()

	// The image may have landed between Saveable and MarkSaved.
	if snap.Token == token && snap.Recipe != nil && snap.Recipe.Image != "" && stored.Image == "" {
		if err := s.recipes.SetImage(ctx, stored.ID, snap.Recipe.Image); err == nil {
			stored.Image = snap.Recipe.Image
		}
	}

	s.logger.Info("Generated recipe saved",
		zap.String("client_id", clientID),
		zap.String("recipe_id", stored.ID),
	)
	return stored, nil
}

// Subscribe streams every snapshot change of the client's flow. The current
// snapshot is delivered first. The returned function unsubscribes.
func (s *Service) Subscribe(clientID string) (<-chan generation.Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cf := s.flow(clientID)
	id := cf.nextSub
	cf.nextSub++
	ch := make(chan generation.Snapshot, subscriberBuffer)
	cf.subs[id] = ch
	ch <- cf.flow.Snapshot()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if sub, ok := cf.subs[id]; ok {
				delete(cf.subs, id)
				close(sub)
			}
		})
	}
}

// Shutdown abandons pending image requests and waits for them to finish.
func (s *Service) Shutdown(ctx context.Context) error {
	s.stop()

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
	for _, cf := range s.flows {
		for id, ch := range cf.subs {
			delete(cf.subs, id)
			close(ch)
		}
	}
	return nil
}

// flow returns the client's flow, creating it. Callers hold s.mu.
func (s *Service) flow(clientID string) *clientFlow {
	cf, ok := s.flows[clientID]
	if !ok {
		cf = &clientFlow{flow: generation.NewFlow(), subs: make(map[int]chan generation.Snapshot)}
		s.flows[clientID] = cf
	}
	return cf
}

// publish fans the current snapshot out to subscribers. A slow subscriber
// loses its oldest pending snapshot rather than blocking. Callers hold s.mu.
func (s *Service) publish(cf *clientFlow) generation.Snapshot {
	snap := cf.flow.Snapshot()
	for _, ch := range cf.subs {
		select {
		case ch <- snap:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
	return snap
}

func (s *Service) language(lang shared.Language) shared.Language {
	if lang.Valid() {
		return lang
	}
	return s.defaultLanguage
}

func userMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
