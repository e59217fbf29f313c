package tariff

import (
	"github.com/limanops/tarife/internal/tariff/repository"
	"github.com/limanops/tarife/internal/tariff/service"
	"go.uber.org/fx"
)

var Module = fx.Module("tariff.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
