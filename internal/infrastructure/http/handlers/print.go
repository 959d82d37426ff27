package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/security"
)

//go:embed templates/*
var templatesFS embed.FS

type printLabels struct {
	Ingredients string
	Steps       string
	Source      string
}

var labels = map[shared.Language]printLabels{
	shared.Czech:  {Ingredients: "Ingredience", Steps: "Postup", Source: "Zdroj"},
	shared.Slovak: {Ingredients: "Ingrediencie", Steps: "Postup", Source: "Zdroj"},
}

type printPage struct {
	Lang   string
	Recipe recipe.Recipe
	Labels printLabels
}

// Printer renders the standalone print view of a recipe
type Printer struct {
	tmpl *template.Template
}

// NewPrinter parses the embedded print template
func NewPrinter() (*Printer, error) {
	tmpl, err := template.New("print.html").Funcs(template.FuncMap{
		// Recipe images are data URIs, which html/template would otherwise
		// replace with a placeholder.
		"imageURL": func(image string) template.URL {
			if !security.IsRecipeImage(image) {
				return ""
			}
			return template.URL(image)
		},
	}).ParseFS(templatesFS, "templates/print.html")
	if err != nil {
		return nil, err
	}
	return &Printer{tmpl: tmpl}, nil
}

// Render writes the page for r
func (p *Printer) Render(c *gin.Context, r recipe.Recipe, lang shared.Language) error {
	lang = lang.OrDefault()
	page := printPage{Lang: htmlLang(lang), Recipe: r, Labels: labels[lang]}

	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, page); err != nil {
		return err
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", buf.Bytes())
	return nil
}

func htmlLang(lang shared.Language) string {
	if lang == shared.Czech {
		return "cs"
	}
	return string(lang)
}
