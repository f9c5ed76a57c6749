package config

import "time"

// Default value constants.  The retrieval and ethics constants mirror the
// reference values the ranking and audit engines were calibrated with; change
// them only together with the documented contract.
const (
	DefaultServerPort      = 8000
	DefaultShutdownTimeout = 30 * time.Second

	DefaultDBHost     = "localhost"
	DefaultDBPort     = 5432
	DefaultDBName     = "nyayvandan"
	DefaultDBMaxConns = 25

	DefaultRedisAddr   = "localhost:6379"
	DefaultResponseTTL = 10 * time.Minute
	DefaultKeyPrefix   = "nyay:"

	DefaultKafkaBroker = "localhost:9092"
	DefaultAuditTopic  = "nyay.ethical-review.v1"

	DefaultMilvusAddr       = "localhost:19530"
	DefaultMilvusCollection = "case_embeddings"
	DefaultEmbeddingDim     = 384

	DefaultMinIOEndpoint = "localhost:9000"

	DefaultEmbeddingBaseURL   = "http://localhost:8081/v1"
	DefaultEmbeddingModel     = "all-MiniLM-L6-v2"
	DefaultEmbeddingBatchSize = 32

	DefaultSemanticWeight = 0.50
	DefaultLexicalWeight  = 0.30
	DefaultEntityWeight   = 0.20

	DefaultHighThreshold     = 0.60
	DefaultModerateThreshold = 0.40
	DefaultSomewhatThreshold = 0.25

	DefaultEntityOverlapMode = "flat"

	DefaultTopK            = 5
	DefaultMaxTopK         = 15
	DefaultLexicalMaxTerms = 3000

	DefaultCourtWeight    = 0.40
	DefaultTemporalWeight = 0.30
	DefaultOutcomeWeight  = 0.30

	DefaultDiversityThreshold = 0.3
	DefaultMinCourtDiversity  = 2
	DefaultMinYearRange       = 2

	DefaultCivilSumLimit = 500

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// ApplyDefaults fills zero-value fields in cfg with platform defaults.  It
// must run after unmarshalling and before Validate so optional-but-defaulted
// fields are never seen as missing.  Explicit configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15 * time.Second
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 30 * time.Second
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Database.Host == "" {
		cfg.Database.Host = DefaultDBHost
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = DefaultDBPort
	}
	if cfg.Database.DBName == "" {
		cfg.Database.DBName = DefaultDBName
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = DefaultDBMaxConns
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 10
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = time.Hour
	}

	if cfg.Redis.Addr == "" {
		cfg.Redis.Addr = DefaultRedisAddr
	}
	if cfg.Redis.ResponseTTL == 0 {
		cfg.Redis.ResponseTTL = DefaultResponseTTL
	}
	if cfg.Redis.KeyPrefix == "" {
		cfg.Redis.KeyPrefix = DefaultKeyPrefix
	}

	if len(cfg.Kafka.Brokers) == 0 {
		cfg.Kafka.Brokers = []string{DefaultKafkaBroker}
	}
	if cfg.Kafka.AuditTopic == "" {
		cfg.Kafka.AuditTopic = DefaultAuditTopic
	}
	if cfg.Kafka.MaxRetries == 0 {
		cfg.Kafka.MaxRetries = 3
	}

	if cfg.Milvus.Addr == "" {
		cfg.Milvus.Addr = DefaultMilvusAddr
	}
	if cfg.Milvus.CollectionName == "" {
		cfg.Milvus.CollectionName = DefaultMilvusCollection
	}
	if cfg.Milvus.EmbeddingDim == 0 {
		cfg.Milvus.EmbeddingDim = DefaultEmbeddingDim
	}
	if cfg.Milvus.HNSWM == 0 {
		cfg.Milvus.HNSWM = 16
	}
	if cfg.Milvus.HNSWEf == 0 {
		cfg.Milvus.HNSWEf = 64
	}

	if cfg.MinIO.Endpoint == "" {
		cfg.MinIO.Endpoint = DefaultMinIOEndpoint
	}

	if cfg.Embedding.BaseURL == "" {
		cfg.Embedding.BaseURL = DefaultEmbeddingBaseURL
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = DefaultEmbeddingModel
	}
	if cfg.Embedding.Timeout == 0 {
		cfg.Embedding.Timeout = 30 * time.Second
	}
	if cfg.Embedding.BatchSize == 0 {
		cfg.Embedding.BatchSize = DefaultEmbeddingBatchSize
	}
	if cfg.Embedding.CacheTTL == 0 {
		cfg.Embedding.CacheTTL = 5 * time.Minute
	}

	r := &cfg.Retrieval
	if r.SemanticWeight == 0 && r.LexicalWeight == 0 && r.EntityWeight == 0 {
		r.SemanticWeight = DefaultSemanticWeight
		r.LexicalWeight = DefaultLexicalWeight
		r.EntityWeight = DefaultEntityWeight
	}
	if r.HighThreshold == 0 {
		r.HighThreshold = DefaultHighThreshold
	}
	if r.ModerateThreshold == 0 {
		r.ModerateThreshold = DefaultModerateThreshold
	}
	if r.SomewhatThreshold == 0 {
		r.SomewhatThreshold = DefaultSomewhatThreshold
	}
	if r.EntityOverlapMode == "" {
		r.EntityOverlapMode = DefaultEntityOverlapMode
	}
	if r.DefaultTopK == 0 {
		r.DefaultTopK = DefaultTopK
	}
	if r.MaxTopK == 0 {
		r.MaxTopK = DefaultMaxTopK
	}
	if r.LexicalMaxTerms == 0 {
		r.LexicalMaxTerms = DefaultLexicalMaxTerms
	}

	e := &cfg.Ethics
	if e.CourtWeight == 0 && e.TemporalWeight == 0 && e.OutcomeWeight == 0 {
		e.CourtWeight = DefaultCourtWeight
		e.TemporalWeight = DefaultTemporalWeight
		e.OutcomeWeight = DefaultOutcomeWeight
	}
	if e.DiversityThreshold == 0 {
		e.DiversityThreshold = DefaultDiversityThreshold
	}
	if e.MinCourtDiversity == 0 {
		e.MinCourtDiversity = DefaultMinCourtDiversity
	}
	if e.MinYearRange == 0 {
		e.MinYearRange = DefaultMinYearRange
	}

	if cfg.Ingestion.CivilSumLimit == 0 {
		cfg.Ingestion.CivilSumLimit = DefaultCivilSumLimit
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}
}
