package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/fx"

	appimporter "github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/application/importer"
	apprecipe "github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/application/recipe"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/config"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/container"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/inbound"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/logger"
)

type services struct {
	config   *config.Config
	recipes  *apprecipe.RecipeService
	importer *appimporter.Service
}

// withServices builds the storage and service graph from the configuration,
// runs fn and closes the storage again
func withServices(c *cli.Context, fn func(ctx context.Context, s *services) error) error {
	var s services
	app := fx.New(
		fx.NopLogger,
		container.CoreModule(c.String("config")),
		container.ServiceModule,
		fx.Decorate(func(lg *logger.Logger) *logger.Logger {
			if !c.Bool("verbose") {
				lg.SetLevel("error")
			}
			return lg
		}),
		fx.Populate(&s.config, &s.recipes, &s.importer),
	)
	if err := app.Err(); err != nil {
		return err
	}

	ctx := c.Context
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = app.Stop(stopCtx)
	}()

	return fn(ctx, &s)
}

// ListAction prints the stored recipes
func ListAction(c *cli.Context) error {
	return withServices(c, func(ctx context.Context, s *services) error {
		recipes, err := s.recipes.List(ctx, inbound.ListQuery{
			SearchTerm: c.String("search"),
			Category:   c.String("category"),
		})
		if err != nil {
			return err
		}

		if len(recipes) == 0 {
			fmt.Println("No recipes found")
			return nil
		}

		fmt.Printf("%-36s %-24s %s\n", "ID", "Category", "Name")
		fmt.Println(strings.Repeat("-", 90))
		for _, r := range recipes {
			fmt.Printf("%-36s %-24s %s\n", r.ID, r.Category, r.Name)
		}
		fmt.Printf("\nTotal: %d recipes\n", len(recipes))
		return nil
	})
}

// ExportAction writes the whole collection as JSON or YAML
func ExportAction(c *cli.Context) error {
	output := c.String("output")
	format, err := formatOf(c.String("format"), output)
	if err != nil {
		return err
	}

	return withServices(c, func(ctx context.Context, s *services) error {
		recipes, err := s.recipes.List(ctx, inbound.ListQuery{})
		if err != nil {
			return err
		}
		data, err := encodeCollection(recipes, format)
		if err != nil {
			return fmt.Errorf("encode recipes: %w", err)
		}

		if output == "" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(output, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", output, err)
		}
		fmt.Fprintf(os.Stderr, "Exported %d recipes to %s\n", len(recipes), output)
		return nil
	})
}

// ImportAction replaces the collection with the contents of a file
func ImportAction(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		return fmt.Errorf("missing file argument")
	}
	format, err := formatOf(c.String("format"), path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	return withServices(c, func(ctx context.Context, s *services) error {
		lang := container.DefaultLanguage(s.config)
		recipes, err := decodeCollection(data, format, recipe.DefaultCategory(lang))
		if err != nil {
			return err
		}
		if err := s.recipes.ReplaceAll(ctx, recipes); err != nil {
			return err
		}
		fmt.Printf("Imported %d recipes\n", len(recipes))
		return nil
	})
}

// FetchAction imports one recipe from a web page
func FetchAction(c *cli.Context) error {
	url := c.Args().First()
	if url == "" {
		return fmt.Errorf("missing url argument")
	}
	lang, err := shared.ParseLanguage(c.String("lang"))
	if err != nil {
		return fmt.Errorf("--lang must be cz or sk")
	}

	return withServices(c, func(ctx context.Context, s *services) error {
		r, err := s.importer.Import(ctx, url, lang)
		if err != nil {
			return err
		}
		fmt.Printf("Imported %q (%s) into %s\n", r.Name, r.ID, r.Category)
		return nil
	})
}

// ResetAction restores the bundled seed recipes
func ResetAction(c *cli.Context) error {
	if !c.Bool("yes") && !confirm("Replace all stored recipes with the bundled ones?") {
		fmt.Println("Aborted")
		return nil
	}

	return withServices(c, func(ctx context.Context, s *services) error {
		recipes, err := s.recipes.Reset(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Restored %d recipes\n", len(recipes))
		return nil
	})
}

func confirm(question string) bool {
	fmt.Printf("%s [y/N] ", question)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
