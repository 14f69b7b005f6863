package router

import (
	"context"

	"github.com/squeegee-samurai/squeegee-api/internal/application"
	"github.com/squeegee-samurai/squeegee-api/internal/container"
	pginfra "github.com/squeegee-samurai/squeegee-api/internal/infrastructure/postgres"
	"github.com/squeegee-samurai/squeegee-api/internal/infrastructure/search"
	handlers "github.com/squeegee-samurai/squeegee-api/internal/interface/http"
	"github.com/squeegee-samurai/squeegee-api/internal/router/modules"
	"github.com/squeegee-samurai/squeegee-api/pkg/helpers"
)

// BuildService wires the signup/login service from the container. Optional
// integrations that are nil stay nil interfaces.
func BuildService(c *container.Container) *application.Service {
	var mail application.JobPublisher
	if c.RabbitPub != nil {
		mail = c.RabbitPub
	}
	var index application.UserIndexer
	if c.ES != nil && c.Config.SearchIndexEnabled {
		index = search.NewUserIndexer(c.ES, c.Config.ESUsersIndex)
	}
	return application.NewService(
		pginfra.NewUserRepository(c.PGPool),
		helpers.NewPasswordHasher(c.Config.BcryptCost),
		mail,
		index,
		c.Config,
		c.Logger,
	)
}

// HealthChecks returns Postgres as the required probe plus one probe per
// optional integration that is wired.
func HealthChecks(c *container.Container) []handlers.Check {
	checks := []handlers.Check{{
		Name:     "postgres",
		Required: true,
		Fn:       func(ctx context.Context) error { return c.PGPool.Ping(ctx) },
	}}
	if c.Redis != nil {
		checks = append(checks, handlers.Check{Name: "redis", Fn: func(ctx context.Context) error {
			return c.Redis.Ping(ctx).Err()
		}})
	}
	if c.RabbitPub != nil {
		checks = append(checks, handlers.Check{Name: "rabbitmq", Fn: func(context.Context) error {
			return c.RabbitPub.Healthy()
		}})
	}
	if c.ES != nil {
		idx := search.NewUserIndexer(c.ES, c.Config.ESUsersIndex)
		checks = append(checks, handlers.Check{Name: "elasticsearch", Fn: idx.Ping})
	}
	return checks
}

// InitModules builds every module from c and registers it with r.
// Call once during startup.
func InitModules(r *Registry, c *container.Container) {
	svc := BuildService(c)
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc, c.Logger)))
	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(c.Config.AppName, c.Logger, HealthChecks(c)...)))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
