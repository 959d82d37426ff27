// Package generation implements the two-stage recipe generation flow: a
// mandatory text stage followed by a best-effort image stage. Results are
// applied only when they carry the latest request token.
package generation

import (
	"errors"
	"strings"
	"time"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
)

var (
	ErrPromptRequired = errors.New("prompt is required")
	ErrNothingToSave  = errors.New("no generated recipe to save")
)

// Phase of the text stage.
type Phase string

const (
	PhaseIdle          Phase = "idle"
	PhaseRecipeLoading Phase = "recipe_loading"
	PhaseRecipeReady   Phase = "recipe_ready"
	PhaseError         Phase = "error"
)

// ImageState of the image stage. Only meaningful in PhaseRecipeReady.
type ImageState string

const (
	ImageNone    ImageState = "none"
	ImagePending ImageState = "pending"
	ImageReady   ImageState = "ready"
	ImageFailed  ImageState = "failed"
)

// Snapshot is a copy of the flow state safe to hand to other goroutines.
type Snapshot struct {
	Token     uint64          `json:"token"`
	Phase     Phase           `json:"phase"`
	Image     ImageState      `json:"image"`
	Prompt    string          `json:"prompt,omitempty"`
	Language  shared.Language `json:"language,omitempty"`
	Recipe    *recipe.Recipe  `json:"recipe,omitempty"`
	Error     string          `json:"error,omitempty"`
	Saved     bool            `json:"saved"`
	SavedID   string          `json:"savedId,omitempty"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Flow is the state of one client's generator view. It is not safe for
// concurrent use; callers serialize access.
type Flow struct {
	state Snapshot
	now   func() time.Time
}

// NewFlow returns an idle flow.
func NewFlow() *Flow {
	f := &Flow{now: time.Now}
	f.state = Snapshot{Phase: PhaseIdle, Image: ImageNone, UpdatedAt: f.now()}
	return f
}

// Submit starts a new generation and returns its token. A blank prompt sets
// message as the inline error and returns ErrPromptRequired without touching
// the token or the displayed recipe.
func (f *Flow) Submit(prompt string, lang shared.Language, message string) (uint64, error) {
	if strings.TrimSpace(prompt) == "" {
		f.state.Error = message
		f.touch()
		return 0, ErrPromptRequired
	}

	f.state = Snapshot{
		Token:    f.state.Token + 1,
		Phase:    PhaseRecipeLoading,
		Image:    ImageNone,
		Prompt:   prompt,
		Language: lang,
	}
	f.touch()
	return f.state.Token, nil
}

// Current reports whether token belongs to the latest submission.
func (f *Flow) Current(token uint64) bool {
	return token != 0 && token == f.state.Token
}

// RecipeSucceeded shows the recipe and marks the image stage pending.
// Returns false when the token is stale.
func (f *Flow) RecipeSucceeded(token uint64, r recipe.Recipe) bool {
	if !f.Current(token) || f.state.Phase != PhaseRecipeLoading {
		return false
	}
	r = r.Clone()
	r.Image = ""
	f.state.Recipe = &r
	f.state.Phase = PhaseRecipeReady
	f.state.Image = ImagePending
	f.state.Error = ""
	f.touch()
	return true
}

// RecipeFailed moves the flow to PhaseError with message.
func (f *Flow) RecipeFailed(token uint64, message string) bool {
	if !f.Current(token) || f.state.Phase != PhaseRecipeLoading {
		return false
	}
	f.state.Phase = PhaseError
	f.state.Error = message
	f.touch()
	return true
}

// ImageSucceeded attaches the image to the displayed recipe. It also returns
// the id of the stored copy when the recipe was saved before the image
// arrived, so the caller can update it.
func (f *Flow) ImageSucceeded(token uint64, dataURI string) (applied bool, savedID string) {
	if !f.imageApplicable(token) {
		return false, ""
	}
	f.state.Recipe.Image = dataURI
	f.state.Image = ImageReady
	f.touch()
	return true, f.state.SavedID
}

// ImageFailed leaves the recipe displayed without an image. No user-facing
// error is set.
func (f *Flow) ImageFailed(token uint64) bool {
	if !f.imageApplicable(token) {
		return false
	}
	f.state.Image = ImageFailed
	f.touch()
	return true
}

func (f *Flow) imageApplicable(token uint64) bool {
	return f.Current(token) && f.state.Phase == PhaseRecipeReady && f.state.Image == ImagePending
}

// Saveable returns the displayed recipe and whether it was already saved.
func (f *Flow) Saveable() (recipe.Recipe, bool, error) {
	if f.state.Phase != PhaseRecipeReady || f.state.Recipe == nil {
		return recipe.Recipe{}, false, ErrNothingToSave
	}
	return f.state.Recipe.Clone(), f.state.Saved, nil
}

// MarkSaved sets the one-shot saved flag for the submission with token.
func (f *Flow) MarkSaved(token uint64, storedID string) bool {
	if !f.Current(token) || f.state.Phase != PhaseRecipeReady {
		return false
	}
	f.state.Saved = true
	f.state.SavedID = storedID
	f.touch()
	return true
}

// SaveFailed shows a save error without leaving PhaseRecipeReady.
func (f *Flow) SaveFailed(token uint64, message string) {
	if f.Current(token) {
		f.state.Error = message
		f.touch()
	}
}

// Token is the latest issued token.
func (f *Flow) Token() uint64 { return f.state.Token }

// Snapshot returns a deep copy of the current state.
func (f *Flow) Snapshot() Snapshot {
	s := f.state
	if s.Recipe != nil {
		r := s.Recipe.Clone()
		s.Recipe = &r
	}
	return s
}

func (f *Flow) touch() {
	f.state.UpdatedAt = f.now()
}
