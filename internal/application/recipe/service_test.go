package recipe

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/persistence/recipestore"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/security"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/inbound"
	apperrors "github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/errors"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/test/testutils"
)

type countingMetrics struct {
	created, deleted, stored int
}

func (m *countingMetrics) RecipeCreated()      { m.created++ }
func (m *countingMetrics) RecipeDeleted()      { m.deleted++ }
func (m *countingMetrics) RecipesStored(n int) { m.stored = n }

type RecipeServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *recipestore.Store
	gateway *testutils.MockAIGateway
	metrics *countingMetrics
	service *RecipeService
	seeded  []recipe.Recipe
}

func (s *RecipeServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.seeded = testutils.NewRecipeFactory(11).CreateRecipes(3)
	s.store = testutils.NewMemoryRecipeStore(s.T(), s.seeded...)
	s.gateway = &testutils.MockAIGateway{}
	s.metrics = &countingMetrics{}
	s.service = NewRecipeService(s.store, s.gateway, security.NewValidationService(zap.NewNop()), s.metrics, shared.Czech, zap.NewNop())
}

func (s *RecipeServiceTestSuite) TestList_FiltersInOrder() {
	all, err := s.service.List(s.ctx, inbound.ListQuery{Category: recipe.AllCategories})
	s.Require().NoError(err)
	s.Equal(s.seeded, all)

	byName, err := s.service.List(s.ctx, inbound.ListQuery{SearchTerm: s.seeded[1].Name})
	s.Require().NoError(err)
	ids := make([]string, 0, len(byName))
	for _, r := range byName {
		ids = append(ids, r.ID)
	}
	s.Contains(ids, s.seeded[1].ID)
}

func (s *RecipeServiceTestSuite) TestCreate_SplitsLinesAndDefaultsCategory() {
	created, err := s.service.Create(s.ctx, recipe.Draft{
		Name:            "Palačinky",
		Description:     "Tenké palačinky",
		IngredientsText: "2 vejce\r\n\n  \n250 ml mléka\n",
		StepsText:       "Smíchejte.\nUsmažte.",
	}, shared.Slovak)
	s.Require().NoError(err)

	s.Equal([]string{"2 vejce", "250 ml mléka"}, created.Ingredients)
	s.Equal([]string{"Smíchejte.", "Usmažte."}, created.Steps)
	s.Equal("Ostatné", created.Category)
	s.NotEmpty(created.ID)

	stored := s.store.Load(s.ctx)
	s.Len(stored, 4)
	s.Equal(*created, stored[3])
	s.Equal(1, s.metrics.created)
	s.Equal(4, s.metrics.stored)
}

func (s *RecipeServiceTestSuite) TestCreate_ValidationFailure() {
	_, err := s.service.Create(s.ctx, recipe.Draft{Name: "Bez popisu"}, shared.Czech)

	s.True(apperrors.Is(err, apperrors.CodeValidationFailed))
	s.Len(s.store.Load(s.ctx), 3)
}

func (s *RecipeServiceTestSuite) TestUpdate_KeepsIDAndPosition() {
	target := s.seeded[1]
	draft := target.ToDraft()
	draft.Name = "Přejmenovaný recept"

	updated, err := s.service.Update(s.ctx, target.ID, draft, shared.Czech)
	s.Require().NoError(err)
	s.Equal(target.ID, updated.ID)

	stored := s.store.Load(s.ctx)
	s.Equal("Přejmenovaný recept", stored[1].Name)
	s.Equal(target.Steps, stored[1].Steps)
	s.Equal(s.seeded[0], stored[0])
	s.Equal(s.seeded[2], stored[2])
}

func (s *RecipeServiceTestSuite) TestUpdate_UnknownID() {
	_, err := s.service.Update(s.ctx, "missing", s.seeded[0].ToDraft(), shared.Czech)
	s.True(apperrors.Is(err, apperrors.CodeRecipeNotFound))
}

func (s *RecipeServiceTestSuite) TestDelete_RemovesExactlyOne() {
	s.Require().NoError(s.service.Delete(s.ctx, s.seeded[0].ID))

	stored := s.store.Load(s.ctx)
	s.Equal([]recipe.Recipe{s.seeded[1], s.seeded[2]}, stored)
	s.Equal(1, s.metrics.deleted)

	err := s.service.Delete(s.ctx, s.seeded[0].ID)
	s.True(apperrors.Is(err, apperrors.CodeRecipeNotFound))
}

func (s *RecipeServiceTestSuite) TestAppend_FillsIDAndCategory() {
	appended, err := s.service.Append(s.ctx, recipe.Recipe{
		Name:        "Vygenerovaný",
		Description: "Z AI",
		Ingredients: []string{"sůl"},
		Steps:       []string{"Vařte."},
	})
	s.Require().NoError(err)

	s.NotEmpty(appended.ID)
	s.Equal("Ostatní", appended.Category)
	testutils.AssertValidRecipe(s.T(), *appended)
}

func (s *RecipeServiceTestSuite) TestRegenerateImage() {
	target := s.seeded[2]
	s.gateway.On("GenerateImage", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, target.Name)
	})).Return("data:image/jpeg;base64,AAAA", nil).Once()

	updated, err := s.service.RegenerateImage(s.ctx, target.ID)
	s.Require().NoError(err)

	s.Equal("data:image/jpeg;base64,AAAA", updated.Image)
	s.Equal("data:image/jpeg;base64,AAAA", s.store.Load(s.ctx)[2].Image)
	s.gateway.AssertExpectations(s.T())
}

func (s *RecipeServiceTestSuite) TestRegenerateImage_FailureLeavesRecipe() {
	failure := apperrors.NewNoImageReturned("Nepodařilo se vygenerovat obrázek: API nevrátilo žádný obrázek.")
	s.gateway.On("GenerateImage", mock.Anything, mock.Anything).Return("", failure).Once()

	_, err := s.service.RegenerateImage(s.ctx, s.seeded[0].ID)

	s.True(errors.Is(err, failure))
	s.Equal(s.seeded, s.store.Load(s.ctx))
}

func (s *RecipeServiceTestSuite) TestReplaceAllAndReset() {
	s.Require().NoError(s.service.ReplaceAll(s.ctx, []recipe.Recipe{{Name: "Jediný", Description: "x"}}))

	stored := s.store.Load(s.ctx)
	s.Require().Len(stored, 1)
	s.NotEmpty(stored[0].ID)
	s.Equal("Ostatní", stored[0].Category)
	s.NotNil(stored[0].Ingredients)

	seed, err := s.service.Reset(s.ctx)
	s.Require().NoError(err)
	s.Len(seed, 3)
	s.Equal(seed, s.store.Load(s.ctx))
}

func (s *RecipeServiceTestSuite) TestCategories() {
	s.Equal(recipe.Categories(shared.Slovak), s.service.Categories(s.ctx, shared.Slovak))
	s.Equal(recipe.Categories(shared.Czech), s.service.Categories(s.ctx, ""))
}

func TestRecipeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeServiceTestSuite))
}

func TestGet(t *testing.T) {
	r := testutils.NewRecipeBuilder().Build()
	svc := NewRecipeService(testutils.NewMemoryRecipeStore(t, r), &testutils.MockAIGateway{},
		security.NewValidationService(zap.NewNop()), nil, shared.Czech, zap.NewNop())

	got, err := svc.Get(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, r, *got)

	_, err = svc.Get(context.Background(), "nope")
	assert.True(t, apperrors.Is(err, apperrors.CodeRecipeNotFound))
}

func TestRegenerateImage_ReplacesExistingImage(t *testing.T) {
	r := testutils.NewRecipeBuilder().
		WithImage("data:image/jpeg;base64,OLD").
		WithSourceURL("https://www.example.cz/recepty/polevka").
		Build()
	gateway := &testutils.MockAIGateway{}
	gateway.On("GenerateImage", mock.Anything, mock.Anything).Return("data:image/jpeg;base64,NEW", nil).Once()
	svc := NewRecipeService(testutils.NewMemoryRecipeStore(t, r), gateway,
		security.NewValidationService(zap.NewNop()), nil, shared.Czech, zap.NewNop())

	updated, err := svc.RegenerateImage(context.Background(), r.ID)
	require.NoError(t, err)

	assert.Equal(t, "data:image/jpeg;base64,NEW", updated.Image)
	assert.Equal(t, r.SourceURL, updated.SourceURL)
	assert.Equal(t, r.Name, updated.Name)
	gateway.AssertExpectations(t)
}
