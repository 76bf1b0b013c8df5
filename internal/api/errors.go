package api

import (
	"alcyxob/fitcoach/internal/domain"
	"alcyxob/fitcoach/internal/service"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	badRequestErrors = []error{
		service.ErrInvalidID, service.ErrInvalidRole, service.ErrValidationFailed,
		service.ErrRoutineInvalid, service.ErrInvalidOrder, service.ErrTrainingNameRequired,
		service.ErrInvalidRepType, service.ErrInvalidSets,
	}
	forbiddenErrors = []error{
		service.ErrExerciseAccessDenied, service.ErrRoutineAccessDenied, service.ErrTrainingAccessDenied,
		service.ErrStudentNotManaged, service.ErrStudentNotRole,
	}
	notFoundErrors = []error{
		domain.ErrNotFound, service.ErrExerciseNotFound, service.ErrRoutineNotFound,
		service.ErrTrainingNotFound, service.ErrLinkNotFound, service.ErrStudentNotFound,
		service.ErrMediaNotFound,
	}
	conflictErrors = []error{
		service.ErrUserAlreadyExists, service.ErrExerciseDuplicate, service.ErrTrainingAlreadyLinked,
		service.ErrTrainingInUse, service.ErrStudentAlreadyAssigned,
	}
)

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case isAny(err, badRequestErrors):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrAuthenticationFailed):
		return http.StatusUnauthorized
	case isAny(err, forbiddenErrors):
		return http.StatusForbidden
	case isAny(err, notFoundErrors):
		return http.StatusNotFound
	case isAny(err, conflictErrors):
		return http.StatusConflict
	case errors.Is(err, service.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondServiceError aborts with the mapped status. Internal errors are
// logged and replaced by fallback so driver messages never reach clients.
func respondServiceError(c *gin.Context, err error, fallback string) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		log.Printf("ERROR: %s %s: %v", c.Request.Method, c.FullPath(), err)
		abortWithError(c, code, fallback)
		return
	}
	abortWithError(c, code, err.Error())
}
