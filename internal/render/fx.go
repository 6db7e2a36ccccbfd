package render

import (
	"github.com/smallbiznis/storefront/internal/reconcile"
	"go.uber.org/fx"
)

var Module = fx.Module("render.surface",
	fx.Provide(
		NewMemorySurface,
		func(s *MemorySurface) reconcile.Surface { return s },
	),
)
