package api

import (
	"net/http"

	"github.com/dmarchuk/flightroster/internal/domain"
	"github.com/dmarchuk/flightroster/internal/logging"
	"github.com/gin-gonic/gin"
)

// respondError translates a service error into the HTTP outcome. The
// body is always {"errors": [...]}.
func respondError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFound(err):
		respondErrors(c, http.StatusNotFound, err.Error())
	case domain.IsConflict(err):
		respondErrors(c, http.StatusConflict, err.Error())
	case domain.IsValidation(err):
		respondErrors(c, http.StatusBadRequest, err.Error())
	default:
		logging.L().Errorw("internal server error", "path", c.FullPath(), "error", err)
		respondErrors(c, http.StatusInternalServerError, "internal server error")
	}
}

func respondErrors(c *gin.Context, status int, messages ...string) {
	c.JSON(status, gin.H{"errors": messages})
}
