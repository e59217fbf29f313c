package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/limanops/tarife/internal/catalog"
	"github.com/limanops/tarife/internal/clock"
	"github.com/limanops/tarife/internal/config"
	"github.com/limanops/tarife/internal/logger"
	"github.com/limanops/tarife/internal/migration"
	"github.com/limanops/tarife/internal/observability"
	"github.com/limanops/tarife/internal/rating"
	"github.com/limanops/tarife/internal/server"
	"github.com/limanops/tarife/internal/tariff"
	"github.com/limanops/tarife/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		logger.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		// Functional domains
		migration.Module,
		catalog.Module,
		tariff.Module,
		rating.Module,

		server.Module,
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
