package api

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// TrainingHandler serves library trainings and their exercise defaults.
type TrainingHandler struct {
	trainingService service.TrainingService
}

func NewTrainingHandler(trainingService service.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainingService: trainingService}
}

// CreateTraining godoc
// @Summary Create a training
// @Tags Trainings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param training body domain.NewTraining true "Training"
// @Success 201 {object} domain.Training
// @Router /trainings [post]
func (h *TrainingHandler) CreateTraining(c *gin.Context) {
	var req domain.NewTraining
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}

	training, err := h.trainingService.CreateTraining(c.Request.Context(), trainerID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create training.")
		return
	}
	c.JSON(http.StatusCreated, training)
}

// GetTraining returns a single training.
// @Router /trainings/{id} [get]
func (h *TrainingHandler) GetTraining(c *gin.Context) {
	trainingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	training, err := h.trainingService.GetTraining(c.Request.Context(), trainingID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve training.")
		return
	}
	c.JSON(http.StatusOK, training)
}

// DeleteTraining godoc
// @Summary Delete a training and its exercise defaults
// @Failure 409 {object} gin.H "Training is still linked to a routine"
// @Router /trainings/{id} [delete]
func (h *TrainingHandler) DeleteTraining(c *gin.Context) {
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}
	trainingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.trainingService.DeleteTraining(c.Request.Context(), trainerID, trainingID); err != nil {
		respondServiceError(c, err, "Failed to delete training.")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetLibrary godoc
// @Summary List the library trainings of a trainer
// @Description A trainer may only list their own library.
// @Tags Trainings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Training
// @Router /trainers/{id}/trainings [get]
func (h *TrainingHandler) GetLibrary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	trainerID, ok := pathID(c, "id")
	if !ok {
		return
	}
	if trainerID != userID {
		abortWithError(c, http.StatusForbidden, service.ErrTrainingAccessDenied.Error())
		return
	}

	trainings, err := h.trainingService.GetLibrary(c.Request.Context(), trainerID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve library.")
		return
	}
	c.JSON(http.StatusOK, orEmpty(trainings))
}

// GetExerciseDefaults lists the default exercise configuration of a training.
// @Router /trainings/{id}/exercises [get]
func (h *TrainingHandler) GetExerciseDefaults(c *gin.Context) {
	trainingID, ok := pathID(c, "id")
	if !ok {
		return
	}
	rows, err := h.trainingService.GetExerciseDefaults(c.Request.Context(), trainingID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve training exercises.")
		return
	}
	c.JSON(http.StatusOK, orEmpty(rows))
}

// AddExerciseDefault appends an exercise to a training.
// @Router /trainings/{id}/exercises [post]
func (h *TrainingHandler) AddExerciseDefault(c *gin.Context) {
	var req domain.NewExerciseTraining
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}
	trainingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	et, err := h.trainingService.AddExerciseDefault(c.Request.Context(), trainerID, trainingID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to add exercise to training.")
		return
	}
	c.JSON(http.StatusCreated, et)
}
