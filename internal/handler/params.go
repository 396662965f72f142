package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/discgolf-planner/internal/navigation"
)

// bindDestinationID binds the {id} path segment using OpenAPI "simple" style.
// On failure it writes a validation error and returns false.
func bindDestinationID(w http.ResponseWriter, r *http.Request) (string, bool) {
	var id string
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(fmt.Sprintf("invalid format for parameter id: %s", err)))
		return "", false
	}
	return id, true
}

// bindPlatform binds the optional ?platform= query parameter ("form" style,
// exploded) and parses it. A missing parameter means desktop.
func bindPlatform(w http.ResponseWriter, r *http.Request) (navigation.Platform, bool) {
	var raw *string
	if err := runtime.BindQueryParameter("form", true, false, "platform", r.URL.Query(), &raw); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody(fmt.Sprintf("invalid format for parameter platform: %s", err)))
		return "", false
	}
	var s string
	if raw != nil {
		s = *raw
	}
	platform, err := navigation.ParsePlatform(s)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
		return "", false
	}
	return platform, true
}
