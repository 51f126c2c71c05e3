package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/seekwell-app/seekwell/internal/ai"
	"github.com/seekwell-app/seekwell/internal/ai/gemini"
	"github.com/seekwell-app/seekwell/internal/blobstore"
	"github.com/seekwell-app/seekwell/internal/config"
	"github.com/seekwell-app/seekwell/internal/database"
	"github.com/seekwell-app/seekwell/internal/queue"
	"github.com/seekwell-app/seekwell/internal/services"
	"github.com/seekwell-app/seekwell/internal/vectorindex"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	logger := slog.Default().With("component", "worker")

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if err := cfg.ValidateWorker(); err != nil {
		logger.Error("invalid config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
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

	q, err := queue.Dial(cfg.AMQPURL)
	if err != nil {
		logger.Error("failed to connect to broker", "err", err)
		os.Exit(1)
	}
	defer q.Close()

	jobSvc := services.NewJobService(db, provider, index, cfg.ExtractionMinConfidence)
	resumeSvc := services.NewResumeService(db, blobs, provider, q, 10<<20)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		err := q.Consume(ctx, queue.QueueResumeParse, cfg.WorkerConcurrency, func(ctx context.Context, body []byte) error {
			var task queue.ResumeParseTask
			if err := json.Unmarshal(body, &task); err != nil {
				logger.Error("malformed resume task", "err", err)
				return nil // drop it, redelivery won't help
			}
			return resumeSvc.Process(ctx, task.ResumeID)
		})
		if err != nil {
			logger.Error("resume consumer stopped", "err", err)
			stop()
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		err := q.Consume(ctx, queue.QueueJobIngest, cfg.WorkerConcurrency, func(ctx context.Context, body []byte) error {
			var task queue.JobIngestTask
			if err := json.Unmarshal(body, &task); err != nil {
				logger.Error("malformed ingest task", "err", err)
				return nil
			}
			extraction, err := jobSvc.Extract(ctx, task.RawContent)
			if err != nil {
				return err
			}
			_, err = jobSvc.IngestExtraction(ctx, extraction,
				task.SourceURL, task.SourcePlatform, services.MarshalExtraction(extraction))
			return err
		})
		if err != nil {
			logger.Error("ingest consumer stopped", "err", err)
			stop()
		}
	}()

	logger.Info("worker started",
		"concurrency", cfg.WorkerConcurrency,
		"queues", []string{queue.QueueResumeParse, queue.QueueJobIngest})

	<-ctx.Done()
	logger.Info("shutting down")
	wg.Wait()
}
