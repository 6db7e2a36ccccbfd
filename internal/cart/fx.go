package cart

import (
	"github.com/smallbiznis/storefront/internal/cart/client"
	"go.uber.org/fx"
)

var Module = fx.Module("cart.client",
	fx.Provide(client.NewHTTPClient),
)
