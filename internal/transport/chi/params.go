package chi

import (
	"fmt"
	"net/http"

	gochi "github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
)

// pathParam binds a required path segment, unescaping it.
func pathParam(r *http.Request, name string, dest any) error {
	err := runtime.BindStyledParameterWithOptions("simple", name, gochi.URLParam(r, name), dest,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return &badRequestError{msg: fmt.Sprintf("invalid format for parameter %s", name)}
	}
	return nil
}

// queryParam binds an optional query parameter. dest is a pointer to a
// pointer that stays nil when the parameter is absent.
func queryParam(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return &badRequestError{msg: fmt.Sprintf("invalid format for parameter %s", name)}
	}
	return nil
}

// bindQuery binds several optional query parameters, stopping at the first error.
func bindQuery(r *http.Request, params map[string]any) error {
	for name, dest := range params {
		if err := queryParam(r, name, dest); err != nil {
			return err
		}
	}
	return nil
}

func deref[T any](p *T) T {
	if p == nil {
		var zero T
		return zero
	}
	return *p
}
