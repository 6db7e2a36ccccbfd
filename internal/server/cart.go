package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/smallbiznis/storefront/internal/events"
)

type notifyCartRequest struct {
	Source string `json:"source"`
}

// @Summary      Add To Cart
// @Description  Submit the session selection to the external cart
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  cartdomain.CartState
// @Router       /sessions/{id}/cart [post]
func (s *Server) AddToCart(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	ctx := c.Request.Context()

	items, session, err := s.selectionSvc.BuildLineItems(ctx, id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	cart, err := s.cartClient.AddItems(ctx, items)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	// Published after the cart call returns, so the overlay pass this
	// triggers always sees the just-added lines.
	if err := s.bus.Publish(ctx, events.Event{
		Type: events.EventCartItemsAdded,
		Payload: events.ItemsAddedPayload{
			SessionID: session.ID,
			PlanType:  string(session.PlanType),
			ItemCount: len(items),
		}.ToMap(),
	}); err != nil {
		s.log.Warn("cart items added event publish failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"cart":    cart,
		"session": session,
	}})
}

// @Summary      Get Display Cart
// @Description  Get the live cart joined with the current display overlays
// @Tags         cart
// @Accept       json
// @Produce      json
// @Success      200  {object}  map[string]any
// @Router       /cart/display [get]
func (s *Server) GetDisplayCart(c *gin.Context) {
	cart, err := s.cartClient.GetCart(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"cart":    cart,
		"display": s.surface.Snapshot(),
	}})
}

// @Summary      Notify Cart Updated
// @Description  Signal that the external cart changed, triggering an overlay pass
// @Tags         cart
// @Accept       json
// @Produce      json
// @Success      202  {object}  map[string]string
// @Router       /cart/notify [post]
func (s *Server) NotifyCartUpdated(c *gin.Context) {
	var req notifyCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	if err := s.bus.Publish(c.Request.Context(), events.Event{
		Type:    events.EventCartUpdated,
		Payload: events.CartUpdatedPayload{Source: strings.TrimSpace(req.Source)}.ToMap(),
	}); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "accepted"})
}
