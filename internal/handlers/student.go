package handlers

import (
	"github.com/Bithika-Jain/Project-Exhibition/internal/middleware"
	"github.com/Bithika-Jain/Project-Exhibition/internal/services"
	"github.com/Bithika-Jain/Project-Exhibition/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StudentHandler struct {
	studentService *services.StudentService
}

func NewStudentHandler(db *gorm.DB) *StudentHandler {
	return &StudentHandler{
		studentService: services.NewStudentService(db),
	}
}

// List returns all student profiles
// GET /students/
func (h *StudentHandler) List(c *gin.Context) {
	students, err := h.studentService.List()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, students)
}

// Get returns one student profile
// GET /students/:id/
func (h *StudentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	student, err := h.studentService.Get(id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, student)
}

// Create attaches a student profile to the calling account
// POST /students/
func (h *StudentHandler) Create(c *gin.Context) {
	var req services.StudentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	student, err := h.studentService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, student)
}

// Update edits the caller's own profile
// PATCH /students/:id/
func (h *StudentHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req services.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	student, err := h.studentService.Update(middleware.GetUserID(c), id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, student)
}
