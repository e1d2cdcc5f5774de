package helpers

import (
	// Go Internal Packages
	"fmt"
	"net/http"
	"strconv"

	// Local Packages
	errors "pay-stream/errors"

	// External Packages
	"github.com/go-chi/chi/v5"
)

// PathID parses a positive integer path parameter.
func PathID(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, errors.EmptyParamErr(name)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.InvalidParamsErr(fmt.Errorf("%s must be a positive integer", name))
	}
	return id, nil
}

// QueryInt parses an optional integer query parameter, returning def when it
// is absent. Range checks are left to the caller.
func QueryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.InvalidParamsErr(fmt.Errorf("%s must be an integer", name))
	}
	return v, nil
}
