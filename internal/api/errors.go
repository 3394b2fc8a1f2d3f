package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/okayama-mayu/rails-engine/internal/catalog"
)

type apiError struct {
	Status string `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

type errorBody struct {
	Errors []apiError `json:"errors"`
}

// writeError is the single place domain errors become HTTP responses.
// Anything that is not a validation or not-found error is a 500 whose
// detail is withheld from the client.
func writeError(c *gin.Context, err error) {
	var (
		verr *catalog.ValidationError
		nf   *catalog.NotFoundError
	)

	status, title, detail := http.StatusInternalServerError, "internal_error", "internal server error"
	switch {
	case errors.As(err, &verr):
		status, title, detail = http.StatusBadRequest, "validation_error", verr.Error()
	case errors.As(err, &nf):
		status, title, detail = http.StatusNotFound, "not_found", nf.Error()
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, errorBody{Errors: []apiError{{
		Status: strconv.Itoa(status),
		Title:  title,
		Detail: detail,
	}}})
}
