package reconcile

import (
	"go.uber.org/fx"
)

var Module = fx.Module("reconcile.agent",
	fx.Provide(NewAgent),
)
