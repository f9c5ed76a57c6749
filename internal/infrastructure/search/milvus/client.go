// Package milvus adapts a Milvus cluster as the vector index for case
// embeddings. It is the deployment-scale alternative to the in-process
// flat index and is selected via configuration.
package milvus

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/milvus-io/milvus-sdk-go/v2/client"

	"github.com/turtacn/NyayVandan/internal/config"
	"github.com/turtacn/NyayVandan/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/NyayVandan/pkg/errors"
)

type clientFactory func(ctx context.Context, conf client.Config) (client.Client, error)

// newMilvusClient is a variable so tests can substitute a fake.
var newMilvusClient clientFactory = client.NewClient

const connectTimeout = 10 * time.Second

// Client wraps the SDK connection with health tracking.
type Client struct {
	mc      client.Client
	logger  logging.Logger
	healthy atomic.Bool
}

// Dial connects to the configured cluster and verifies it responds.
func Dial(ctx context.Context, cfg config.MilvusConfig, logger logging.Logger) (*Client, error) {
	if cfg.Addr == "" {
		return nil, errors.Validation("milvus address is required")
	}
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	mc, err := newMilvusClient(connectCtx, client.Config{Address: cfg.Addr})
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServiceUnavailable, "failed to connect to milvus")
	}

	c := &Client{mc: mc, logger: logger.Named("milvus")}
	if err := c.CheckHealth(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	c.logger.Info("milvus connected", logging.String("addr", cfg.Addr))
	return c, nil
}

// CheckHealth pings the cluster and updates the cached health flag.
func (c *Client) CheckHealth(ctx context.Context) error {
	if _, err := c.mc.CheckHealth(ctx); err != nil {
		c.healthy.Store(false)
		return errors.Wrap(err, errors.ErrCodeServiceUnavailable, "milvus unhealthy")
	}
	c.healthy.Store(true)
	return nil
}

// IsHealthy reports the last observed health state.
func (c *Client) IsHealthy() bool { return c.healthy.Load() }

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c.mc != nil {
		return c.mc.Close()
	}
	return nil
}
