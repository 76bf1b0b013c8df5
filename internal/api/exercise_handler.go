package api

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// CreateExerciseRequest defines the expected JSON for creating an exercise.
type CreateExerciseRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	MuscleGroup string `json:"muscle_group" binding:"omitempty"` // e.g., "Peito", "Pernas"
	Difficulty  string `json:"difficulty" binding:"omitempty"`
}

// MediaUploadRequest asks for a presigned upload URL.
type MediaUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

type MediaUploadResponse struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
}

// CreateExercise godoc
// @Summary Create a new exercise
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201 {object} domain.Exercise "Exercise created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 409 {object} gin.H "Exercise name already used"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), trainerID, domain.NewExercise{
		Name:        req.Name,
		Description: req.Description,
		MuscleGroup: req.MuscleGroup,
		Difficulty:  req.Difficulty,
	})
	if err != nil {
		respondServiceError(c, err, "Failed to create exercise.")
		return
	}

	c.JSON(http.StatusCreated, exercise)
}

// GetTrainerExercises godoc
// @Summary Get exercises for the authenticated trainer
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Success 200 {array} domain.Exercise "List of exercises"
// @Router /exercises [get]
func (h *ExerciseHandler) GetTrainerExercises(c *gin.Context) {
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}

	exercises, err := h.exerciseService.GetExercisesByTrainer(c.Request.Context(), trainerID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve exercises.")
		return
	}

	c.JSON(http.StatusOK, orEmpty(exercises))
}

// DeleteExercise removes an exercise owned by the trainer, and its media.
// @Router /exercises/{id} [delete]
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}
	exerciseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.exerciseService.DeleteExercise(c.Request.Context(), trainerID, exerciseID); err != nil {
		respondServiceError(c, err, "Failed to delete exercise.")
		return
	}
	c.Status(http.StatusNoContent)
}

// RequestMediaUpload godoc
// @Summary Get a presigned URL to upload the exercise demo video
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body MediaUploadRequest true "Content type of the upload"
// @Success 200 {object} MediaUploadResponse
// @Failure 503 {object} gin.H "Media storage not configured"
// @Router /exercises/{id}/media [post]
func (h *ExerciseHandler) RequestMediaUpload(c *gin.Context) {
	var req MediaUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	trainerID, ok := currentUserID(c)
	if !ok {
		return
	}
	exerciseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	url, key, err := h.exerciseService.RequestMediaUpload(c.Request.Context(), trainerID, exerciseID, req.ContentType)
	if err != nil {
		respondServiceError(c, err, "Failed to prepare media upload.")
		return
	}
	c.JSON(http.StatusOK, MediaUploadResponse{UploadURL: url, ObjectKey: key})
}

// GetMediaURL returns a presigned download URL for the exercise video.
// @Router /exercises/{id}/media [get]
func (h *ExerciseHandler) GetMediaURL(c *gin.Context) {
	exerciseID, ok := pathID(c, "id")
	if !ok {
		return
	}

	url, err := h.exerciseService.GetMediaURL(c.Request.Context(), exerciseID)
	if err != nil {
		respondServiceError(c, err, "Failed to get media URL.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

// orEmpty keeps list endpoints from answering null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
