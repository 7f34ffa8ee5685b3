package handlers

import (
	"fmt"
	"net/http"

	"github.com/Bithika-Jain/Project-Exhibition/internal/middleware"
	"github.com/Bithika-Jain/Project-Exhibition/internal/services"
	"github.com/Bithika-Jain/Project-Exhibition/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ApplicationHandler struct {
	applicationService *services.ApplicationService
	exportService      *services.ExportService
}

func NewApplicationHandler(db *gorm.DB, notifier *services.NotificationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: services.NewApplicationService(db, notifier),
		exportService:      services.NewExportService(db),
	}
}

// Create applies to a project
// POST /applications/
func (h *ApplicationHandler) Create(c *gin.Context) {
	var req services.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	application, err := h.applicationService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, application)
}

// List returns the applications visible to the caller
// GET /applications/
func (h *ApplicationHandler) List(c *gin.Context) {
	isAdmin := middleware.GetRole(c) == "admin"
	applications, err := h.applicationService.List(middleware.GetUserID(c), isAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, applications)
}

// My returns the calling student's applications
// GET /applications/my/
func (h *ApplicationHandler) My(c *gin.Context) {
	applications, err := h.applicationService.My(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, applications)
}

// FacultyApplications returns applications on the caller's projects
// GET /applications/faculty_applications/
func (h *ApplicationHandler) FacultyApplications(c *gin.Context) {
	applications, err := h.applicationService.FacultyApplications(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, applications)
}

// Get returns one application
// GET /applications/:id/
func (h *ApplicationHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	isAdmin := middleware.GetRole(c) == "admin"
	application, err := h.applicationService.Get(middleware.GetUserID(c), id, isAdmin)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, application)
}

// Select picks the applicant and force-rejects their other applications
// POST /applications/:id/select/
func (h *ApplicationHandler) Select(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	application, err := h.applicationService.Select(middleware.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, application)
}

// Reject turns down an application and restores its seat
// POST /applications/:id/reject/
func (h *ApplicationHandler) Reject(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	application, err := h.applicationService.Reject(middleware.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, application)
}

// Shortlist marks a pending application as shortlisted
// POST /applications/:id/shortlist/
func (h *ApplicationHandler) Shortlist(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	application, err := h.applicationService.Shortlist(middleware.GetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, application)
}

// Withdraw deletes the caller's own application
// DELETE /applications/:id/
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.applicationService.Withdraw(middleware.GetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "application withdrawn"})
}

// Export streams an xlsx of the caller's project applications
// GET /applications/export/
func (h *ApplicationHandler) Export(c *gin.Context) {
	buf, filename, err := h.exportService.ExportApplications(middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
