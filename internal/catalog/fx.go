package catalog

import (
	"github.com/limanops/tarife/internal/catalog/repository"
	"github.com/limanops/tarife/internal/catalog/service"
	"go.uber.org/fx"
)

var Module = fx.Module("catalog.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
