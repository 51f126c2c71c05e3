package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/seekwell-app/seekwell/internal/ai"
	"github.com/seekwell-app/seekwell/internal/ai/gemini"
	"github.com/seekwell-app/seekwell/internal/automation"
	"github.com/seekwell-app/seekwell/internal/blobstore"
	"github.com/seekwell-app/seekwell/internal/config"
	"github.com/seekwell-app/seekwell/internal/database"
	"github.com/seekwell-app/seekwell/internal/handlers"
	"github.com/seekwell-app/seekwell/internal/mailer"
	"github.com/seekwell-app/seekwell/internal/queue"
	"github.com/seekwell-app/seekwell/internal/services"
	"github.com/seekwell-app/seekwell/internal/vectorindex"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	logger := slog.Default().With("component", "api")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", "err", err)
		os.Exit(1)
	}

	ctx := context.Background()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	if err := database.Migrate(db); err != nil {
		logger.Error("migration failed", "err", err)
		os.Exit(1)
	}

	provider, err := gemini.NewProvider(ctx, ai.NewConfig(
		ai.WithAPIKey(cfg.GeminiAPIKey),
		ai.WithModel(cfg.GeminiModel),
		ai.WithEmbeddingModel(cfg.EmbeddingModel),
	))
	if err != nil {
		logger.Error("failed to initialize ai provider", "err", err)
		os.Exit(1)
	}
	defer provider.Close()

	var index vectorindex.Index
	if cfg.VectorURL != "" {
		index = vectorindex.NewQdrant(vectorindex.QdrantConfig{
			URL:        cfg.VectorURL,
			APIKey:     cfg.VectorAPIKey,
			Collection: cfg.VectorCollection,
		})
	} else {
		logger.Warn("VECTOR_URL not set, using in-memory vector index")
		index = vectorindex.NewMemory()
	}
	if err := index.EnsureCollection(ctx, cfg.VectorDim); err != nil {
		logger.Error("failed to prepare vector collection", "err", err)
		os.Exit(1)
	}

	var blobs blobstore.Store
	if cfg.S3AccessKey != "" {
		blobs, err = blobstore.NewS3(ctx, blobstore.S3Config{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			logger.Error("failed to initialize blob store", "err", err)
			os.Exit(1)
		}
	} else {
		logger.Warn("S3_ACCESS_KEY not set, resume files are held in memory")
		blobs = blobstore.NewMemory()
	}

	var q *queue.Client
	if cfg.AMQPURL != "" {
		q, err = queue.Dial(cfg.AMQPURL)
		if err != nil {
			logger.Error("failed to connect to broker", "err", err)
			os.Exit(1)
		}
		defer q.Close()
	} else {
		logger.Warn("AMQP_URL not set, background tasks run inline")
	}

	var mail mailer.Mailer
	if cfg.Mailer == "gmail" {
		mail, err = mailer.NewGmail(ctx, cfg.GmailCredsFile, cfg.GmailTokenFile, cfg.DigestFrom)
		if err != nil {
			logger.Error("failed to initialize gmail mailer", "err", err)
			os.Exit(1)
		}
	} else {
		mail = mailer.NewLog()
	}

	autoClient := automation.NewClient(cfg.AutomationURL, cfg.AutomationAPIKey, 0)

	userSvc := services.NewUserService(db, cfg.TokenTTL)
	jobSvc := services.NewJobService(db, provider, index, cfg.ExtractionMinConfidence)
	matchSvc := services.NewMatchService(db, provider, index, cfg.MatchTopK)
	appSvc := services.NewApplicationService(db, provider, autoClient)
	resumeSvc := services.NewResumeService(db, blobs, provider, publisherOrNil(q), 10<<20)
	digestSvc := services.NewDigestService(db, matchSvc, appSvc, provider, mail,
		cfg.DigestTopN, cfg.DigestWorkers)

	startDigestScheduler(ctx, digestSvc, cfg.DigestInterval, logger)

	router := handlers.NewRouter(db, handlers.Handlers{
		Auth:         handlers.NewAuthHandler(userSvc),
		Users:        handlers.NewUserHandler(userSvc),
		Jobs:         handlers.NewJobHandler(jobSvc, publisherOrNil(q)),
		Matches:      handlers.NewMatchHandler(matchSvc),
		Applications: handlers.NewApplicationHandler(appSvc, resumeSvc),
		Resumes:      handlers.NewResumeHandler(resumeSvc),
		Digests:      handlers.NewDigestHandler(digestSvc),
	})

	logger.Info("server starting", "addr", cfg.HTTPAddr)
	if err := router.Run(cfg.HTTPAddr); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

// publisherOrNil avoids handing services a non-nil interface wrapping a nil
// *queue.Client.
func publisherOrNil(q *queue.Client) services.Publisher {
	if q == nil {
		return nil
	}
	return q
}

// startDigestScheduler ticks the digest run in the background.
func startDigestScheduler(ctx context.Context, digests *services.DigestService, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = time.Hour
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				if err := digests.RunDue(ctx, now); err != nil {
					logger.Error("digest run failed", "err", err)
				}
			}
		}
	}()
}
