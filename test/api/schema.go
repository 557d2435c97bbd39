/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package api

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

//go:embed openapi.yaml
var contractDocument []byte

// ErrContractViolation is returned when a response does not match the
// documented schema for its route.
var ErrContractViolation = errors.New("response violates API contract")

// Contract validates responses against the embedded OpenAPI description of
// the platform.
type Contract struct {
	router routers.Router
}

//nolint:gochecknoglobals
var loadContract = sync.OnceValues(func() (*Contract, error) {
	return NewContract(contractDocument)
})

// DefaultContract returns the contract built from the embedded document.
func DefaultContract() (*Contract, error) {
	return loadContract()
}

// NewContract parses and validates an OpenAPI document.
func NewContract(data []byte) (*Contract, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("loading api contract: %w", err)
	}

	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validating api contract: %w", err)
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("building api contract router: %w", err)
	}

	return &Contract{
		router: router,
	}, nil
}

// ValidateResponse checks a response for the given route. Routes that are not
// documented are accepted as-is.
func (c *Contract) ValidateResponse(ctx context.Context, method, route string, status int, header http.Header, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, method, route, nil)
	if err != nil {
		return fmt.Errorf("creating contract request: %w", err)
	}

	matched, pathParams, err := c.router.FindRoute(req)
	if err != nil {
		// Either no path or no operation matched.
		var routeErr *routers.RouteError
		if errors.As(err, &routeErr) {
			return nil
		}

		return fmt.Errorf("matching contract route: %w", err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      matched,
		},
		Status: status,
		Header: header,
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
			MultiError:            true,
		},
	}

	input.SetBodyBytes(body)

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("%w: %s %s: %w", ErrContractViolation, method, route, err)
	}

	return nil
}
