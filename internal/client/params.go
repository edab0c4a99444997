package client

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/oapi-codegen/runtime"
)

// pathParam escapes a path segment the way generated OpenAPI clients do.
func pathParam(name, value string) (string, error) {
	p, err := runtime.StyleParamWithLocation("simple", false, name, runtime.ParamLocationPath, value)
	if err != nil {
		return "", fmt.Errorf("path parameter %s: %w", name, err)
	}
	return p, nil
}

// addQuery appends a form-styled query parameter to q. Empty values are skipped.
func addQuery(q url.Values, name, value string) error {
	if value == "" {
		return nil
	}
	frag, err := runtime.StyleParamWithLocation("form", true, name, runtime.ParamLocationQuery, value)
	if err != nil {
		return fmt.Errorf("query parameter %s: %w", name, err)
	}
	parsed, err := url.ParseQuery(frag)
	if err != nil {
		return fmt.Errorf("query parameter %s: %w", name, err)
	}
	for k, vs := range parsed {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	return nil
}

// wrap prefixes transport and encoding errors with the operation name.
// API errors pass through untouched so their message reaches the user as-is.
func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return err
	}
	return fmt.Errorf("client.Client.%s: %w", op, err)
}
