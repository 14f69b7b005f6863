package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/squeegee-samurai/squeegee-api/config"
	"github.com/squeegee-samurai/squeegee-api/pkg/helpers"
)

// Container carries the infrastructure built in main to the router.
// Redis, RabbitPub and ES are nil when their integration is disabled or unreachable.
type Container struct {
	Config    *config.Config
	Logger    *logrus.Logger
	PGPool    *pgxpool.Pool
	Redis     *redis.Client
	RabbitPub *helpers.RabbitPublisher
	ES        *elasticsearch.Client
}

func New(cfg *config.Config, logger *logrus.Logger, pool *pgxpool.Pool) *Container {
	return &Container{Config: cfg, Logger: logger, PGPool: pool}
}
