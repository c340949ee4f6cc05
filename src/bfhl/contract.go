package bfhl

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed contract.yaml
var contractDocument []byte

const (
	requestSchemaName  = "ClassifyRequest"
	responseSchemaName = "ClassifyResponse"
	endpointPath       = "/bfhl"
)

// Contract holds the request and response schemas of the /bfhl endpoint.
type Contract struct {
	doc      *openapi3.T
	request  *openapi3.Schema
	response *openapi3.Schema
}

var loadDefaultContract = sync.OnceValues(func() (*Contract, error) {
	return LoadContract(contractDocument)
})

// DefaultContract returns the embedded contract, parsed once.
func DefaultContract() (*Contract, error) {
	return loadDefaultContract()
}

// LoadContract parses an OpenAPI document that defines the ClassifyRequest and
// ClassifyResponse schemas.
func LoadContract(data []byte) (*Contract, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("load contract: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("invalid contract: %w", err)
	}

	request, err := lookupSchema(doc, requestSchemaName)
	if err != nil {
		return nil, err
	}
	response, err := lookupSchema(doc, responseSchemaName)
	if err != nil {
		return nil, err
	}

	return &Contract{doc: doc, request: request, response: response}, nil
}

func lookupSchema(doc *openapi3.T, name string) (*openapi3.Schema, error) {
	ref := doc.Components.Schemas[name]
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("contract is missing schema %s", name)
	}
	return ref.Value, nil
}

// Title is the API title declared by the contract.
func (c *Contract) Title() string {
	if c.doc.Info == nil {
		return ""
	}
	return c.doc.Info.Title
}

// ValidateRequest checks a decoded JSON value against the request schema.
func (c *Contract) ValidateRequest(v any) error {
	if err := c.request.VisitJSON(v); err != nil {
		return fmt.Errorf("%w: %v", ErrShape, err)
	}
	return nil
}

// ValidateResponse checks a decoded JSON value against the response schema.
func (c *Contract) ValidateResponse(v any) error {
	if err := c.response.VisitJSON(v); err != nil {
		return fmt.Errorf("%w: %v", ErrResponseShape, err)
	}
	return nil
}
