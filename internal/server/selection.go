package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	selectiondomain "github.com/smallbiznis/storefront/internal/selection/domain"
)

type setPlanRequest struct {
	PlanType string `json:"plan_type"`
}

type setFlavorRequest struct {
	Slot   int    `json:"slot"`
	Flavor string `json:"flavor"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type setImageRequest struct {
	Index     *int `json:"index,omitempty"`
	Direction *int `json:"direction,omitempty"`
}

// @Summary      Create Session
// @Description  Create a new selection session with default plan, flavor and quantity
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Success      200  {object}  selectiondomain.SessionView
// @Router       /sessions [post]
func (s *Server) CreateSession(c *gin.Context) {
	if !s.sessionLimiter.Allow(c.ClientIP()) {
		AbortWithError(c, tooManyRequestsError())
		return
	}

	resp, err := s.selectionSvc.Create(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Session
// @Description  Get selection session state
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  selectiondomain.SessionView
// @Router       /sessions/{id} [get]
func (s *Server) GetSession(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.selectionSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Set Plan Type
// @Description  Switch the session between single and double plans
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "Session ID"
// @Param        request  body      setPlanRequest  true  "Set Plan Request"
// @Success      200  {object}  selectiondomain.SessionView
// @Router       /sessions/{id}/plan [post]
func (s *Server) SetPlanType(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req setPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	plan, err := selectiondomain.ParsePlanType(req.PlanType)
	if err != nil {
		AbortWithError(c, newValidationError("plan_type", "invalid_plan_type", "plan_type must be single or double"))
		return
	}

	resp, err := s.selectionSvc.SetPlanType(c.Request.Context(), id, plan)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Set Flavor
// @Description  Set the flavor for one selection slot
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string            true  "Session ID"
// @Param        request  body      setFlavorRequest  true  "Set Flavor Request"
// @Success      200  {object}  selectiondomain.SessionView
// @Router       /sessions/{id}/flavor [post]
func (s *Server) SetFlavor(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req setFlavorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	flavor := strings.TrimSpace(req.Flavor)
	if flavor == "" {
		AbortWithError(c, newValidationError("flavor", "required", "flavor is required"))
		return
	}

	resp, err := s.selectionSvc.SetFlavor(c.Request.Context(), id, req.Slot, flavor)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Set Quantity
// @Description  Set the subscription quantity, clamped to a minimum of one
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string              true  "Session ID"
// @Param        request  body      setQuantityRequest  true  "Set Quantity Request"
// @Success      200  {object}  selectiondomain.SessionView
// @Router       /sessions/{id}/quantity [post]
func (s *Server) SetQuantity(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req setQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.selectionSvc.SetQuantity(c.Request.Context(), id, req.Quantity)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Set Image
// @Description  Set the gallery image by index, or navigate relative to the current one
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id       path      string           true  "Session ID"
// @Param        request  body      setImageRequest  true  "Set Image Request"
// @Success      200  {object}  selectiondomain.SessionView
// @Router       /sessions/{id}/image [post]
func (s *Server) SetImage(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var req setImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	var (
		resp *selectiondomain.SessionView
		err  error
	)
	switch {
	case req.Index != nil:
		resp, err = s.selectionSvc.SetImage(c.Request.Context(), id, *req.Index)
	case req.Direction != nil:
		resp, err = s.selectionSvc.NavigateImage(c.Request.Context(), id, *req.Direction)
	default:
		AbortWithError(c, newValidationError("index", "required", "index or direction is required"))
		return
	}
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Quote
// @Description  Get the rendered price quote for the current selection
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  selectiondomain.QuoteView
// @Router       /sessions/{id}/quote [get]
func (s *Server) GetQuote(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	resp, err := s.selectionSvc.Get(c.Request.Context(), id)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp.Quote})
}
