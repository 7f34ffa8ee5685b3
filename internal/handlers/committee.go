package handlers

import (
	"github.com/Bithika-Jain/Project-Exhibition/internal/middleware"
	"github.com/Bithika-Jain/Project-Exhibition/internal/services"
	"github.com/Bithika-Jain/Project-Exhibition/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommitteeHandler struct {
	committeeService *services.CommitteeService
}

func NewCommitteeHandler(db *gorm.DB) *CommitteeHandler {
	return &CommitteeHandler{
		committeeService: services.NewCommitteeService(db),
	}
}

// List returns all committee profiles
// GET /committees/
func (h *CommitteeHandler) List(c *gin.Context) {
	committees, err := h.committeeService.List()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, committees)
}

// Get returns one committee profile
// GET /committees/:id/
func (h *CommitteeHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	committee, err := h.committeeService.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, committee)
}

// Apply files a committee membership request for the calling faculty
// POST /committees/apply/
func (h *CommitteeHandler) Apply(c *gin.Context) {
	var req services.CommitteeApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	committee, err := h.committeeService.Apply(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, committee)
}

// Approve grants review powers, admin only
// POST /committees/:id/approve/
func (h *CommitteeHandler) Approve(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	committee, err := h.committeeService.Approve(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, committee)
}

// Update edits the caller's own committee profile
// PATCH /committees/:id/
func (h *CommitteeHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req services.UpdateCommitteeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	committee, err := h.committeeService.Update(middleware.GetUserID(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, committee)
}
