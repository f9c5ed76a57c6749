// The apiserver command runs the NyayVandan analysis API: it loads the
// unified case corpus, builds the retrieval indexes, and serves the REST
// surface until terminated.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/turtacn/NyayVandan/internal/application/analysis"
	"github.com/turtacn/NyayVandan/internal/application/ethics"
	"github.com/turtacn/NyayVandan/internal/application/explain"
	"github.com/turtacn/NyayVandan/internal/application/ingestion"
	"github.com/turtacn/NyayVandan/internal/application/retrieval"
	"github.com/turtacn/NyayVandan/internal/config"
	"github.com/turtacn/NyayVandan/internal/domain/caselaw"
	"github.com/turtacn/NyayVandan/internal/infrastructure/casestore"
	"github.com/turtacn/NyayVandan/internal/infrastructure/database/postgres"
	"github.com/turtacn/NyayVandan/internal/infrastructure/database/redis"
	"github.com/turtacn/NyayVandan/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/NyayVandan/internal/infrastructure/search/flat"
	"github.com/turtacn/NyayVandan/internal/infrastructure/search/milvus"
	"github.com/turtacn/NyayVandan/internal/infrastructure/storage/minio"
	"github.com/turtacn/NyayVandan/internal/intelligence/embed"
	"github.com/turtacn/NyayVandan/internal/intelligence/lexical"
	"github.com/turtacn/NyayVandan/internal/intelligence/ner"
	httpserver "github.com/turtacn/NyayVandan/internal/interfaces/http"
	"github.com/turtacn/NyayVandan/internal/interfaces/http/handlers"
	"github.com/turtacn/NyayVandan/internal/interfaces/http/middleware"
)

const defaultConfigPath = "configs/config.yaml"

func main() {
	configPath := flag.String("config", defaultConfigPath, "path to configuration file")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	flag.Parse()

	if err := run(*configPath, *port); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, portOverride int) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if portOverride > 0 {
		cfg.Server.Port = portOverride
	}

	logger, err := logging.NewLogger(logging.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting NyayVandan API server", logging.Int("port", cfg.Server.Port))

	// Case store: PostgreSQL when reachable, in-memory otherwise so local
	// development needs no running database.
	store, closeStore, err := buildStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	// Dataset ingestion.
	records, err := ingestCorpus(ctx, cfg, store, logger)
	if err != nil {
		return err
	}

	// Retrieval indexes.
	embedder := embed.NewCachingEmbedder(
		embed.NewOpenAIEmbedder(cfg.Embedding, cfg.Milvus.EmbeddingDim, logger),
		cfg.Embedding.CacheTTL,
	)

	lexIndex := lexical.NewIndex(cfg.Retrieval.LexicalMaxTerms)
	texts := make([]string, len(records))
	for i := range records {
		texts[i] = records[i].Text
	}
	lexIndex.Build(texts)

	vecIndex, indexReady, closeIndex, err := buildVectorIndex(ctx, cfg, records, embedder, logger)
	if err != nil {
		return err
	}
	defer closeIndex()

	ranker := retrieval.NewRanker(store, vecIndex, lexIndex, ner.NewExtractor(), embedder, cfg.Retrieval, logger)
	auditor := ethics.NewAuditor(cfg.Ethics, logger)
	explainer := explain.NewExplainer(logger)
	metrics := prometheus.NewMetrics()

	opts := analysis.Options{
		Metrics:    metrics,
		IndexReady: indexReady,
	}

	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, cfg.Redis, logger)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		defer redisClient.Close()
		opts.Cache = redis.NewResponseCache(redisClient, cfg.Redis.KeyPrefix, cfg.Redis.ResponseTTL, logger)
	}

	if cfg.Kafka.Enabled {
		publisher, err := kafka.NewAuditPublisher(cfg.Kafka, logger)
		if err != nil {
			return fmt.Errorf("kafka: %w", err)
		}
		defer publisher.Close()
		opts.Audit = kafkaAuditSink{publisher: publisher}
	}

	svc := analysis.NewService(store, ranker, explainer, auditor, opts, logger)

	router := httpserver.NewRouter(httpserver.RouterConfig{
		AnalyzeHandler: handlers.NewAnalyzeHandler(svc, logger),
		HealthHandler:  handlers.NewHealthHandler(svc),
		CORS:           middleware.DefaultCORSConfig(),
		Logging:        middleware.DefaultLoggingConfig(),
		Logger:         logger,
		Metrics:        metrics,
	})
	srv := httpserver.NewServer(cfg.Server, router, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	return srv.Stop(context.Background())
}

func loadConfig(path string) (*config.Config, error) {
	if _, err := os.Stat(path); err == nil {
		return config.Load(path)
	}
	return config.LoadFromEnv()
}

// buildStore connects to PostgreSQL and runs migrations; when the database
// is unreachable it falls back to the in-memory store.
func buildStore(ctx context.Context, cfg *config.Config, logger logging.Logger) (caselaw.Repository, func(), error) {
	conn, err := postgres.Connect(ctx, cfg.Database, logger)
	if err != nil {
		logger.Warn("postgres unavailable, using in-memory case store", logging.Err(err))
		return casestore.NewMemory(), func() {}, nil
	}

	if cfg.Database.MigrationPath != "" {
		if err := postgres.RunMigrations(postgres.BuildDSN(cfg.Database), cfg.Database.MigrationPath); err != nil {
			conn.Close()
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
	}
	return postgres.NewCaseRepository(conn.Pool(), logger), conn.Close, nil
}

// ingestCorpus loads every configured dataset source and persists the
// unified records.  The returned slice preserves the store's List order so
// the lexical index rows stay aligned with repository reads.
func ingestCorpus(ctx context.Context, cfg *config.Config, store caselaw.Repository, logger logging.Logger) ([]caselaw.CaseRecord, error) {
	var opener ingestion.ObjectOpener
	if cfg.MinIO.AccessKey != "" {
		source, err := minio.NewObjectSource(cfg.MinIO, logger)
		if err != nil {
			return nil, fmt.Errorf("minio: %w", err)
		}
		opener = source
	}

	loader := ingestion.NewLoader(cfg.Ingestion, opener, logger)
	records, constitution, err := loader.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("ingestion: %w", err)
	}
	logger.Info("constitution articles available", logging.Int("count", len(constitution)))

	for i := range records {
		if err := store.Save(ctx, &records[i]); err != nil {
			return nil, fmt.Errorf("persist corpus: %w", err)
		}
	}
	return store.List(ctx)
}

// buildVectorIndex embeds the corpus and loads it into Milvus when enabled,
// or into the in-process flat index otherwise.
func buildVectorIndex(ctx context.Context, cfg *config.Config, records []caselaw.CaseRecord,
	embedder embed.Embedder, logger logging.Logger) (retrieval.VectorIndex, func() bool, func(), error) {

	ids := make([]string, len(records))
	texts := make([]string, len(records))
	for i := range records {
		ids[i] = records[i].ID
		texts[i] = records[i].Text
	}

	vecs, err := embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("embed corpus: %w", err)
	}

	if cfg.Milvus.Enabled {
		client, err := milvus.Dial(ctx, cfg.Milvus, logger)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("milvus: %w", err)
		}
		mstore := milvus.NewStore(client, cfg.Milvus, logger)
		if err := mstore.EnsureCollection(ctx); err != nil {
			client.Close()
			return nil, nil, nil, fmt.Errorf("milvus collection: %w", err)
		}
		if err := mstore.Upsert(ctx, ids, vecs); err != nil {
			client.Close()
			return nil, nil, nil, fmt.Errorf("milvus upsert: %w", err)
		}
		ready := func() bool { return client.IsHealthy() }
		return milvusVectorIndex{store: mstore}, ready, func() { client.Close() }, nil
	}

	index := flat.NewIndex(cfg.Milvus.EmbeddingDim)
	if err := index.Load(ids, vecs); err != nil {
		return nil, nil, nil, fmt.Errorf("flat index: %w", err)
	}
	ready := func() bool { return index.Size() > 0 }
	return flatVectorIndex{index: index}, ready, func() {}, nil
}
