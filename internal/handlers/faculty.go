package handlers

import (
	"github.com/Bithika-Jain/Project-Exhibition/internal/middleware"
	"github.com/Bithika-Jain/Project-Exhibition/internal/services"
	"github.com/Bithika-Jain/Project-Exhibition/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type FacultyHandler struct {
	facultyService *services.FacultyService
}

func NewFacultyHandler(db *gorm.DB) *FacultyHandler {
	return &FacultyHandler{
		facultyService: services.NewFacultyService(db),
	}
}

// List returns all faculty profiles
// GET /faculty/
func (h *FacultyHandler) List(c *gin.Context) {
	faculty, err := h.facultyService.List()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, faculty)
}

// Get returns one faculty profile
// GET /faculty/:id/
func (h *FacultyHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	faculty, err := h.facultyService.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, faculty)
}

// Create attaches a faculty profile to the calling account
// POST /faculty/
func (h *FacultyHandler) Create(c *gin.Context) {
	var req services.FacultyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	faculty, err := h.facultyService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, faculty)
}

// Update edits the caller's own profile
// PATCH /faculty/:id/
func (h *FacultyHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req services.UpdateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	faculty, err := h.facultyService.Update(middleware.GetUserID(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, faculty)
}
