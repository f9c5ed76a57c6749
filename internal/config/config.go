// Package config defines all configuration structures for the NyayVandan
// platform.  No I/O or parsing logic lives here — only plain data types and
// validation.
package config

import (
	"fmt"
	"time"
)

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"db_name"`
	SSLMode         string        `mapstructure:"ssl_mode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationPath   string        `mapstructure:"migration_path"`
}

// RedisConfig holds the response-cache connection parameters.
type RedisConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Addr         string        `mapstructure:"addr"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	ResponseTTL  time.Duration `mapstructure:"response_ttl"`
	KeyPrefix    string        `mapstructure:"key_prefix"`
}

// KafkaConfig holds the review-audit event stream parameters.
type KafkaConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	Brokers      []string      `mapstructure:"brokers"`
	AuditTopic   string        `mapstructure:"audit_topic"`
	BatchTimeout time.Duration `mapstructure:"batch_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxRetries   int           `mapstructure:"max_retries"`
}

// MilvusConfig holds the external vector-index connection parameters.  When
// disabled the in-process flat index serves vector search.
type MilvusConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Addr           string `mapstructure:"addr"`
	CollectionName string `mapstructure:"collection_name"`
	EmbeddingDim   int    `mapstructure:"embedding_dim"`
	HNSWM          int    `mapstructure:"hnsw_m"`
	HNSWEf         int    `mapstructure:"hnsw_ef"`
}

// MinIOConfig holds object-storage parameters for dataset sources.
type MinIOConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// EmbeddingConfig holds the embedding-service parameters.  The service speaks
// the OpenAI embeddings API; in the reference deployment it is a local
// sentence-transformer server, never a hosted API.
type EmbeddingConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	APIKey    string        `mapstructure:"api_key"`
	Model     string        `mapstructure:"model"`
	Timeout   time.Duration `mapstructure:"timeout"`
	BatchSize int           `mapstructure:"batch_size"`
	CacheTTL  time.Duration `mapstructure:"cache_ttl"`
}

// RetrievalConfig holds the hybrid-ranking constants.  They are read at
// construction time and never re-read per call.
type RetrievalConfig struct {
	// Fusion weights; must sum to 1.0.
	SemanticWeight float64 `mapstructure:"semantic_weight"`
	LexicalWeight  float64 `mapstructure:"lexical_weight"`
	EntityWeight   float64 `mapstructure:"entity_weight"`

	// Label thresholds, monotonically non-increasing from high to low.
	HighThreshold     float64 `mapstructure:"high_threshold"`
	ModerateThreshold float64 `mapstructure:"moderate_threshold"`
	SomewhatThreshold float64 `mapstructure:"somewhat_threshold"`

	// EntityOverlapMode selects "flat" (single merged reference set) or
	// "per_category" (mean of per-category Jaccard scores).
	EntityOverlapMode string `mapstructure:"entity_overlap_mode"`

	DefaultTopK     int `mapstructure:"default_top_k"`
	MaxTopK         int `mapstructure:"max_top_k"`
	LexicalMaxTerms int `mapstructure:"lexical_max_terms"`
}

// EthicsConfig holds the diversity-audit constants.
type EthicsConfig struct {
	CourtWeight    float64 `mapstructure:"court_weight"`
	TemporalWeight float64 `mapstructure:"temporal_weight"`
	OutcomeWeight  float64 `mapstructure:"outcome_weight"`

	DiversityThreshold float64 `mapstructure:"diversity_threshold"`
	MinCourtDiversity  int     `mapstructure:"min_court_diversity"`
	MinYearRange       int     `mapstructure:"min_year_range"`
}

// IngestionConfig holds dataset-source locations.  Paths may be local files
// or "s3://bucket/key" URIs resolved through MinIO.
type IngestionConfig struct {
	JudgmentsCSV    string `mapstructure:"judgments_csv"`
	CivilSumCSV     string `mapstructure:"civilsum_csv"`
	CivilSumLimit   int    `mapstructure:"civilsum_limit"`
	ConstitutionCSV string `mapstructure:"constitution_csv"`
	QAJSONDir       string `mapstructure:"qa_json_dir"`
}

// LogConfig holds structured-logging parameters.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Config is the root configuration for all NyayVandan processes.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Kafka     KafkaConfig     `mapstructure:"kafka"`
	Milvus    MilvusConfig    `mapstructure:"milvus"`
	MinIO     MinIOConfig     `mapstructure:"minio"`
	Embedding EmbeddingConfig `mapstructure:"embedding"`
	Retrieval RetrievalConfig `mapstructure:"retrieval"`
	Ethics    EthicsConfig    `mapstructure:"ethics"`
	Ingestion IngestionConfig `mapstructure:"ingestion"`
	Log       LogConfig       `mapstructure:"log"`
}

const weightTolerance = 1e-9

// Validate checks cross-field consistency.  It assumes ApplyDefaults has
// already run, so zero values indicate deliberate misconfiguration.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d out of range", c.Server.Port)
	}

	r := c.Retrieval
	if sum := r.SemanticWeight + r.LexicalWeight + r.EntityWeight; !withinTolerance(sum, 1.0) {
		return fmt.Errorf("config: retrieval fusion weights sum to %v, want 1.0", sum)
	}
	if r.HighThreshold < r.ModerateThreshold || r.ModerateThreshold < r.SomewhatThreshold {
		return fmt.Errorf("config: retrieval label thresholds must be non-increasing (%v/%v/%v)",
			r.HighThreshold, r.ModerateThreshold, r.SomewhatThreshold)
	}
	switch r.EntityOverlapMode {
	case "flat", "per_category":
	default:
		return fmt.Errorf("config: retrieval.entity_overlap_mode %q must be \"flat\" or \"per_category\"", r.EntityOverlapMode)
	}
	if r.DefaultTopK <= 0 || r.MaxTopK < r.DefaultTopK {
		return fmt.Errorf("config: retrieval top_k bounds invalid (default=%d max=%d)", r.DefaultTopK, r.MaxTopK)
	}
	if r.LexicalMaxTerms <= 0 {
		return fmt.Errorf("config: retrieval.lexical_max_terms must be positive")
	}

	e := c.Ethics
	if sum := e.CourtWeight + e.TemporalWeight + e.OutcomeWeight; !withinTolerance(sum, 1.0) {
		return fmt.Errorf("config: ethics diversity weights sum to %v, want 1.0", sum)
	}
	if e.DiversityThreshold < 0 || e.DiversityThreshold > 1 {
		return fmt.Errorf("config: ethics.diversity_threshold %v out of [0,1]", e.DiversityThreshold)
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("config: kafka enabled but no brokers configured")
	}
	if c.Milvus.Enabled && c.Milvus.Addr == "" {
		return fmt.Errorf("config: milvus enabled but no address configured")
	}
	return nil
}

func withinTolerance(got, want float64) bool {
	d := got - want
	return d < weightTolerance && d > -weightTolerance
}
