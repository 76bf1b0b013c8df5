package api

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RoutineHandler serves routines and their training links.
type RoutineHandler struct {
	routineService service.RoutineService
}

func NewRoutineHandler(routineService service.RoutineService) *RoutineHandler {
	return &RoutineHandler{routineService: routineService}
}

// ListRoutines godoc
// @Summary List routines
// @Description Trainers get the routines they own, students the ones assigned to them.
// @Tags Routines
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.TrainingRoutine
// @Router /routines [get]
func (h *RoutineHandler) ListRoutines(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, err.Error())
		return
	}

	routines, err := h.routineService.ListRoutines(c.Request.Context(), userID, role)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve routines.")
		return
	}
	c.JSON(http.StatusOK, orEmpty(routines))
}

// CreateRoutine godoc
// @Summary Create a routine for one of the trainer's students
// @Tags Routines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param routine body domain.NewRoutine true "Routine"
// @Success 201 {object} domain.TrainingRoutine
// @Failure 403 {object} gin.H "Student not managed by this trainer"
// @Router /routines [post]
func (h *RoutineHandler) CreateRoutine(c *gin.Context) {
	var req domain.NewRoutine
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}

	routine, err := h.routineService.CreateRoutine(c.Request.Context(), trainerID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create routine.")
		return
	}
	c.JSON(http.StatusCreated, routine)
}

// GetRoutine godoc
// @Summary Get a routine
// @Failure 404 {object} gin.H "Routine not found"
// @Router /routines/{id} [get]
func (h *RoutineHandler) GetRoutine(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	routineID, ok := pathID(c, "id")
	if !ok {
		return
	}

	routine, err := h.routineService.GetRoutine(c.Request.Context(), userID, routineID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve routine.")
		return
	}
	c.JSON(http.StatusOK, routine)
}

// DeleteRoutine removes a routine and all of its links.
// @Router /routines/{id} [delete]
func (h *RoutineHandler) DeleteRoutine(c *gin.Context) {
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}
	routineID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.routineService.DeleteRoutine(c.Request.Context(), trainerID, routineID); err != nil {
		respondServiceError(c, err, "Failed to delete routine.")
		return
	}
	c.Status(http.StatusNoContent)
}

// ListRoutineTrainings lists the links of a routine ordered by position.
// @Router /routines/{id}/trainings [get]
func (h *RoutineHandler) ListRoutineTrainings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	routineID, ok := pathID(c, "id")
	if !ok {
		return
	}

	links, err := h.routineService.ListRoutineTrainings(c.Request.Context(), userID, routineID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve routine trainings.")
		return
	}
	c.JSON(http.StatusOK, orEmpty(links))
}

// CreateRoutineTraining godoc
// @Summary Link a training to a routine
// @Tags Routines
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param link body domain.NewRoutineTraining true "Link"
// @Success 201 {object} domain.RoutineTraining
// @Failure 409 {object} gin.H "Training already linked to the routine"
// @Router /routine-trainings [post]
func (h *RoutineHandler) CreateRoutineTraining(c *gin.Context) {
	var req domain.NewRoutineTraining
	// Bind JSON request body; exercise_settings are checked by the service
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}

	// Call the RoutineService to create the link
	link, err := h.routineService.CreateRoutineTraining(c.Request.Context(), trainerID, req)
	if err != nil {
		// 409 when the training is already linked, 403/404 for ownership
		respondServiceError(c, err, "Failed to link training.")
		return
	}
	c.JSON(http.StatusCreated, link)
}

// DeleteRoutineTraining removes a link. The training itself is kept.
// @Router /routine-trainings/{id} [delete]
func (h *RoutineHandler) DeleteRoutineTraining(c *gin.Context) {
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}
	linkID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.routineService.DeleteRoutineTraining(c.Request.Context(), trainerID, linkID); err != nil {
		respondServiceError(c, err, "Failed to unlink training.")
		return
	}
	c.Status(http.StatusNoContent)
}

// ResolveExercises returns the effective exercise prescriptions of a link.
// @Router /routine-trainings/{id}/exercises [get]
func (h *RoutineHandler) ResolveExercises(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	linkID, ok := pathID(c, "id")
	if !ok {
		return
	}

	rows, err := h.routineService.ResolveExercises(c.Request.Context(), userID, linkID)
	if err != nil {
		respondServiceError(c, err, "Failed to resolve exercises.")
		return
	}
	c.JSON(http.StatusOK, orEmpty(rows))
}
