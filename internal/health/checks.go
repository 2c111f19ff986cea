package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aminati-ec/catalog-studio/internal/config"
	"github.com/aminati-ec/catalog-studio/internal/publisher"
	"github.com/hellofresh/health-go/v5"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

type Endpoints struct {
	ContentStore publisher.ContentStore
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "content-store",
			Timeout:   5 * time.Second,
			SkipOnErr: false,
			Check: func(ctx context.Context) error {
				if endpoints.ContentStore == nil {
					return fmt.Errorf("content store is not initialized")
				}
				// A missing feed is healthy (first run); only transport
				// or auth failures count against the store.
				if _, _, _, err := endpoints.ContentStore.Get(ctx, "products.json"); err != nil {
					return fmt.Errorf("failed to reach content store: %w", err)
				}
				return nil
			},
		},
	}

	if cfg.RedisConnect.Enabled() {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: true,
			Check: healthRedis.New(
				healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				},
			),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{

			Name:    "catalog-studio",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
