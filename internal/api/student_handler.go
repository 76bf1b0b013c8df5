// internal/api/student_handler.go
package api

import (
	"alcyxob/fitcoach/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	trainerService service.TrainerService
}

func NewStudentHandler(trainerService service.TrainerService) *StudentHandler {
	return &StudentHandler{trainerService: trainerService}
}

type AddStudentRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// AddStudentByEmail godoc
// @Summary Add a student to the trainer's roster by email
// @Description Associates an existing student user with the authenticated trainer.
// @Tags Trainer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param studentRequest body AddStudentRequest true "Student's email"
// @Success 200 {object} UserResponse "Student successfully added"
// @Failure 403 {object} gin.H "Forbidden (user is not a student)"
// @Failure 404 {object} gin.H "Student not found"
// @Failure 409 {object} gin.H "Student already has a trainer"
// @Router /trainer/students [post]
func (h *StudentHandler) AddStudentByEmail(c *gin.Context) {
	var req AddStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}

	student, err := h.trainerService.AddStudentByEmail(c.Request.Context(), trainerID, req.Email)
	if err != nil {
		respondServiceError(c, err, "Failed to add student.")
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(student))
}

// GetStudents godoc
// @Summary Get the trainer's students
// @Tags Trainer
// @Produce json
// @Security BearerAuth
// @Success 200 {array} UserResponse "List of students"
// @Router /trainer/students [get]
func (h *StudentHandler) GetStudents(c *gin.Context) {
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}

	students, err := h.trainerService.GetStudents(c.Request.Context(), trainerID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve students.")
		return
	}

	c.JSON(http.StatusOK, MapUsersToResponse(students))
}
