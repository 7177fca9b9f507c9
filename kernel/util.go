package kernel

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
)

// BindJSON binds the request body into obj and answers the request
// itself on failure: 413 when the body limiter tripped, 400 for
// anything malformed. Returns false if the handler should stop.
func (rt *RequestRuntime) BindJSON(obj any) bool {
	if err := rt.RequestContext.ShouldBindJSON(obj); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			rt.Ef(http.StatusRequestEntityTooLarge, "Payload too large. Please upload a smaller file.")
			return false
		}
		rt.Ef(http.StatusBadRequest, "could not bind body: %v", err)
		return false
	}
	return true
}

func UuidV7() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
