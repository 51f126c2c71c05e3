package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"github.com/seekwell-app/seekwell/internal/ai"
	"github.com/seekwell-app/seekwell/internal/ai/gemini"
	"github.com/seekwell-app/seekwell/internal/auth"
	"github.com/seekwell-app/seekwell/internal/config"
	"github.com/seekwell-app/seekwell/internal/database"
	"github.com/seekwell-app/seekwell/internal/mailer"
	"github.com/seekwell-app/seekwell/internal/models"
	"github.com/seekwell-app/seekwell/internal/services"
	"github.com/seekwell-app/seekwell/internal/vectorindex"
)

func main() {
	app := &cli.App{
		Name:  "seekctl",
		Usage: "admin tasks for the job search backend",
		Before: func(c *cli.Context) error {
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
			return nil
		},
		Commands: []*cli.Command{
			migrateCommand(),
			seedCommand(),
			digestRunCommand(),
			reindexCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "run database migrations",
		Action: func(c *cli.Context) error {
			db, _, err := loadDB()
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			fmt.Println("migrations applied")
			return nil
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "create a demo account with a profile and skills",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Value: "demo@example.com"},
			&cli.StringFlag{Name: "password", Value: "demo-password-1"},
		},
		Action: func(c *cli.Context) error {
			db, _, err := loadDB()
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			return seed(c.Context, db, c.String("email"), c.String("password"))
		},
	}
}

func digestRunCommand() *cli.Command {
	return &cli.Command{
		Name:  "digest-run",
		Usage: "build and send all due digests once",
		Action: func(c *cli.Context) error {
			db, cfg, err := loadDB()
			if err != nil {
				return err
			}
			provider, index, err := loadAI(c.Context, cfg)
			if err != nil {
				return err
			}
			defer provider.Close()

			var mail mailer.Mailer
			if cfg.Mailer == "gmail" {
				mail, err = mailer.NewGmail(c.Context, cfg.GmailCredsFile, cfg.GmailTokenFile, cfg.DigestFrom)
				if err != nil {
					return err
				}
			} else {
				mail = mailer.NewLog()
			}

			matchSvc := services.NewMatchService(db, provider, index, cfg.MatchTopK)
			appSvc := services.NewApplicationService(db, provider, nil)
			digestSvc := services.NewDigestService(db, matchSvc, appSvc, provider, mail,
				cfg.DigestTopN, cfg.DigestWorkers)

			return digestSvc.RunDue(c.Context, time.Now())
		},
	}
}

func reindexCommand() *cli.Command {
	return &cli.Command{
		Name:  "reindex",
		Usage: "re-embed every active job into the vector index",
		Action: func(c *cli.Context) error {
			db, cfg, err := loadDB()
			if err != nil {
				return err
			}
			provider, index, err := loadAI(c.Context, cfg)
			if err != nil {
				return err
			}
			defer provider.Close()

			jobSvc := services.NewJobService(db, provider, index, cfg.ExtractionMinConfidence)
			n, err := jobSvc.ReindexAll(c.Context)
			if err != nil {
				return err
			}
			fmt.Printf("reindexed %d jobs\n", n)
			return nil
		},
	}
}

func loadDB() (*gorm.DB, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL is required")
	}
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	return db, cfg, nil
}

func loadAI(ctx context.Context, cfg *config.Config) (ai.Provider, vectorindex.Index, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	provider, err := gemini.NewProvider(ctx, ai.NewConfig(
		ai.WithAPIKey(cfg.GeminiAPIKey),
		ai.WithModel(cfg.GeminiModel),
		ai.WithEmbeddingModel(cfg.EmbeddingModel),
	))
	if err != nil {
		return nil, nil, err
	}

	var index vectorindex.Index
	if cfg.VectorURL != "" {
		index = vectorindex.NewQdrant(vectorindex.QdrantConfig{
			URL:        cfg.VectorURL,
			APIKey:     cfg.VectorAPIKey,
			Collection: cfg.VectorCollection,
		})
	} else {
		index = vectorindex.NewMemory()
	}
	if err := index.EnsureCollection(ctx, cfg.VectorDim); err != nil {
		provider.Close()
		return nil, nil, err
	}
	return provider, index, nil
}

func seed(ctx context.Context, db *gorm.DB, email, password string) error {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{Email: email}
	err = db.WithContext(ctx).Where(models.User{Email: email}).
		Attrs(models.User{PasswordHash: hash, DigestFrequency: models.FrequencyWeekly}).
		FirstOrCreate(&user).Error
	if err != nil {
		return err
	}

	profile := models.Profile{UserID: user.ID}
	err = db.WithContext(ctx).Where(models.Profile{UserID: user.ID}).
		Attrs(models.Profile{
			Headline:         "Backend Engineer",
			Summary:          "Builds APIs and data pipelines.",
			YearsExperience:  5,
			RemotePreference: "any",
		}).
		FirstOrCreate(&profile).Error
	if err != nil {
		return err
	}

	for _, name := range []string{"go", "postgresql", "docker"} {
		skill := models.Skill{Name: name}
		if err := db.WithContext(ctx).Where(models.Skill{Name: name}).FirstOrCreate(&skill).Error; err != nil {
			return err
		}
		us := models.UserSkill{UserID: user.ID, SkillID: skill.ID}
		err := db.WithContext(ctx).
			Where(models.UserSkill{UserID: user.ID, SkillID: skill.ID}).
			Attrs(models.UserSkill{Proficiency: 4}).
			FirstOrCreate(&us).Error
		if err != nil {
			return err
		}
	}

	fmt.Printf("seeded account %s (user id %d)\n", email, user.ID)
	return nil
}
