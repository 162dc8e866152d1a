package req

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"

	"github.com/gorilla/schema"
	"github.com/xy-planning-network/switchback"
)

// A Parser decodes request payloads into structs and validates them.
type Parser struct {
	decoder *schema.Decoder
	validator
}

// NewParser constructs a *Parser with a query param decoder ignoring unknown keys
// and a validator supporting the "enum" rule for switchback.Enumerable fields.
func NewParser() *Parser {
	return &Parser{
		decoder:   newQueryParamDecoder(),
		validator: newValidator(),
	}
}

// ParseBody decodes into a pointer to a struct the JSON data in body.
// If successful, ParseBody runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
//
// ParseBody reads all of body, which can't be read from again.
// Use a [io.TeeReader] if an *http.Request.Body needs to be reused after calling ParseBody.
func (p *Parser) ParseBody(body io.Reader, structPtr any) error {
	var ourFault *json.InvalidUnmarshalError
	err := json.NewDecoder(body).Decode(structPtr)
	if errors.As(err, &ourFault) {
		return fmt.Errorf("switchback/http/req: %w: ParseBody called with non-pointer: %s", switchback.ErrBadAny, err)
	}

	if err != nil {
		return fmt.Errorf("switchback/http/req: %w: failed decoding request body: %s", switchback.ErrBadFormat, err)
	}

	return p.Validate(structPtr)
}

// ParseQueryParams decodes into a pointer to a struct the query params,
// typically those of *http.Request.URL.Query.
// If successful, ParseQueryParams runs validation against the contents,
// returning an ErrNotValid if the data fails validation rules.
func (p *Parser) ParseQueryParams(params url.Values, structPtr any) error {
	if !isStructPtr(structPtr) {
		return fmt.Errorf("switchback/http/req: %w: ParseQueryParams called with %T", switchback.ErrBadAny, structPtr)
	}

	if err := p.decoder.Decode(structPtr, params); err != nil {
		return fmt.Errorf("switchback/http/req: failed decoding request query params: %w", translateDecoderError(err))
	}

	return p.Validate(structPtr)
}

// Validate checks the fields on structPtr match the rules set by its "validate" struct tags.
// Failing rules return as ValidationErrors, which wrap switchback.ErrNotValid.
func (p *Parser) Validate(structPtr any) error {
	if err := p.validate(structPtr); err != nil {
		return fmt.Errorf("switchback/http/req: %T failed validation: %w", structPtr, err)
	}

	return nil
}
