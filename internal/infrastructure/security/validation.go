// Package security provides input validation for recipe drafts
package security

import (
	"errors"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
	apperrors "github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/errors"
)

// Field messages shown next to the recipe form
const (
	msgNameRequired        = "Vyplňte název receptu."
	msgDescriptionRequired = "Vyplňte popis receptu."
	msgImage               = "Obrázek musí být data URI nebo odkaz http(s)."
	msgSourceURL           = "Zdroj musí být platná adresa URL."
	msgCategory            = "Neznámá kategorie."
	msgInvalid             = "Neplatná hodnota."
)

// ValidationService validates recipe drafts
type ValidationService struct {
	logger    *zap.Logger
	validator *validator.Validate
}

// NewValidationService creates a new validation service
func NewValidationService(logger *zap.Logger) *ValidationService {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Register custom validation rules
	_ = validate.RegisterValidation("recipe_image", validateRecipeImage)

	return &ValidationService{
		logger:    logger.Named("validation"),
		validator: validate,
	}
}

// ValidateDraft checks a draft before it is applied. allowedCategories are
// accepted in addition to an empty category.
func (v *ValidationService) ValidateDraft(draft recipe.Draft, allowedCategories []string) error {
	var fieldErrors []apperrors.ValidationError

	if err := v.validator.Struct(draft); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return apperrors.NewInternalError("validation failed").WithCause(err)
		}
		for _, fe := range verrs {
			fieldErrors = append(fieldErrors, apperrors.ValidationError{
				Field:   fe.Field(),
				Value:   fe.Value(),
				Tag:     fe.Tag(),
				Message: message(fe),
			})
		}
	}

	if strings.TrimSpace(draft.Name) == "" && !hasField(fieldErrors, "name") {
		fieldErrors = append(fieldErrors, apperrors.ValidationError{Field: "name", Tag: "required", Message: msgNameRequired})
	}
	if strings.TrimSpace(draft.Description) == "" && !hasField(fieldErrors, "description") {
		fieldErrors = append(fieldErrors, apperrors.ValidationError{Field: "description", Tag: "required", Message: msgDescriptionRequired})
	}

	category := strings.TrimSpace(draft.Category)
	if category != "" && !slices.Contains(allowedCategories, category) {
		fieldErrors = append(fieldErrors, apperrors.ValidationError{
			Field:   "category",
			Value:   category,
			Tag:     "category",
			Message: msgCategory,
		})
	}

	if len(fieldErrors) > 0 {
		v.logger.Debug("Draft rejected", zap.Int("errors", len(fieldErrors)))
		return apperrors.NewValidationErrors(fieldErrors)
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Field() + "/" + fe.Tag() {
	case "name/required":
		return msgNameRequired
	case "description/required":
		return msgDescriptionRequired
	case "image/recipe_image":
		return msgImage
	case "sourceUrl/url":
		return msgSourceURL
	default:
		return msgInvalid
	}
}

func hasField(errs []apperrors.ValidationError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

// validateRecipeImage accepts image data URIs and http(s) links
func validateRecipeImage(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return IsRecipeImage(value)
}

// IsRecipeImage reports whether value can be used as a recipe image
func IsRecipeImage(value string) bool {
	switch {
	case strings.HasPrefix(value, "data:image/"):
		return strings.Contains(value, ";base64,")
	case strings.HasPrefix(value, "https://"), strings.HasPrefix(value, "http://"):
		return !strings.ContainsAny(value, " \n\t")
	default:
		return false
	}
}
