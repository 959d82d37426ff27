// Package testutils provides test data factories for consistent test data generation
package testutils

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
)

// RecipeFactory provides methods to create test recipes
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a new recipe factory with seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{
		faker: gofakeit.New(seed),
	}
}

// CreateRecipe returns a complete recipe in a random Czech category
func (rf *RecipeFactory) CreateRecipe() recipe.Recipe {
	categories := recipe.Categories(shared.Czech)

	return NewRecipeBuilder().
		WithID(rf.faker.UUID()).
		WithName(fmt.Sprintf("%s %s", rf.faker.Adjective(), rf.faker.Dinner())).
		WithDescription(rf.faker.Sentence(8)).
		WithCategory(categories[rf.faker.Number(0, len(categories)-1)]).
		WithIngredients(rf.ingredients(rf.faker.Number(2, 6))...).
		WithSteps(rf.steps(rf.faker.Number(1, 5))...).
		Build()
}

// CreateRecipes returns n distinct recipes
func (rf *RecipeFactory) CreateRecipes(n int) []recipe.Recipe {
	out := make([]recipe.Recipe, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, rf.CreateRecipe())
	}
	return out
}

// CreateDraft returns a valid form draft using the multi-line text fields
func (rf *RecipeFactory) CreateDraft() recipe.Draft {
	return rf.CreateRecipe().ToDraft()
}

func (rf *RecipeFactory) ingredients(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, fmt.Sprintf("%d g %s", rf.faker.Number(10, 500), rf.faker.Vegetable()))
	}
	return out
}

func (rf *RecipeFactory) steps(n int) []string {
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, rf.faker.Sentence(6))
	}
	return out
}

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	r recipe.Recipe
}

// NewRecipeBuilder creates a new recipe builder with default values
func NewRecipeBuilder() *RecipeBuilder {
	return &RecipeBuilder{r: recipe.Recipe{
		ID:          recipe.NewID(),
		Name:        "Bramborová polévka",
		Description: "Hustá polévka z brambor a hub.",
		Category:    "Polévky",
		Ingredients: []string{"500 g brambor", "1 cibule", "hrst sušených hub"},
		Steps:       []string{"Oloupejte brambory.", "Vařte 20 minut.", "Dochuťte majoránkou."},
	}}
}

func (rb *RecipeBuilder) WithID(id string) *RecipeBuilder {
	rb.r.ID = id
	return rb
}

func (rb *RecipeBuilder) WithName(name string) *RecipeBuilder {
	rb.r.Name = name
	return rb
}

func (rb *RecipeBuilder) WithDescription(description string) *RecipeBuilder {
	rb.r.Description = description
	return rb
}

func (rb *RecipeBuilder) WithCategory(category string) *RecipeBuilder {
	rb.r.Category = category
	return rb
}

func (rb *RecipeBuilder) WithIngredients(ingredients ...string) *RecipeBuilder {
	rb.r.Ingredients = append([]string{}, ingredients...)
	return rb
}

// WithSteps sets the steps. No arguments yields a recipe without steps.
func (rb *RecipeBuilder) WithSteps(steps ...string) *RecipeBuilder {
	rb.r.Steps = append([]string{}, steps...)
	return rb
}

func (rb *RecipeBuilder) WithImage(image string) *RecipeBuilder {
	rb.r.Image = image
	return rb
}

func (rb *RecipeBuilder) WithSourceURL(url string) *RecipeBuilder {
	rb.r.SourceURL = url
	return rb
}

// Build returns a copy of the recipe
func (rb *RecipeBuilder) Build() recipe.Recipe {
	return rb.r.Clone()
}
