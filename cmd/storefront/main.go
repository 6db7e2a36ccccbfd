// @title           Storefront API
// @version         1.0
// @description     Subscription product page selection and cart display API

// @contact.name   API Support
// @contact.email  support@smallbiznis.dev

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api
// @Schemes 	http https

package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/smallbiznis/storefront/internal/cart"
	"github.com/smallbiznis/storefront/internal/catalog"
	"github.com/smallbiznis/storefront/internal/clock"
	"github.com/smallbiznis/storefront/internal/config"
	"github.com/smallbiznis/storefront/internal/events"
	"github.com/smallbiznis/storefront/internal/migration"
	"github.com/smallbiznis/storefront/internal/observability"
	"github.com/smallbiznis/storefront/internal/reconcile"
	"github.com/smallbiznis/storefront/internal/render"
	"github.com/smallbiznis/storefront/internal/seed"
	"github.com/smallbiznis/storefront/internal/selection"
	"github.com/smallbiznis/storefront/internal/server"
	"github.com/smallbiznis/storefront/pkg/db"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		fx.Invoke(func(conn *gorm.DB, cfg config.Config, node *snowflake.Node) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			if cfg.SeedDemoCatalog {
				return seed.EnsureDemoCatalog(conn, node)
			}
			return nil
		}),

		// Core dependencies for the product page
		catalog.Module,
		selection.Module,
		cart.Module,
		events.Module,
		render.Module,
		reconcile.Module,
		fx.Invoke(func(agent *reconcile.Agent, bus *events.Bus) error {
			return agent.Subscribe(bus)
		}),

		fx.Provide(server.NewEngine),
		fx.Provide(server.NewServer),
		fx.Invoke(func(s *server.Server) {
			s.RegisterAPIRoutes()
		}),
		fx.Invoke(server.RunHTTP),
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
