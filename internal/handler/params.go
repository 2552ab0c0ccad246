package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// pathUUID binds the named chi URL parameter as a UUID using the OpenAPI
// "simple" style. On failure it writes a 400 and reports false.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (openapi_types.UUID, bool) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, chi.URLParam(r, name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		badRequest(w, "invalid "+name+": "+err.Error())
		return id, false
	}
	return id, true
}

// queryParam binds an optional "form" style query parameter into dest,
// which must be a pointer to a pointer. Absent parameters leave *dest nil.
// On failure it writes a 400 and reports false.
func queryParam(w http.ResponseWriter, r *http.Request, name string, dest any) bool {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		badRequest(w, "invalid "+name+": "+err.Error())
		return false
	}
	return true
}
