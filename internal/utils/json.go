package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

var validate = validator.New(validator.WithRequiredStructEnabled())

// DecodeJSONRequest decodes the body into dst, rejecting unknown fields, and
// runs struct validation on the result.
func DecodeJSONRequest(r *http.Request, dst any) error {
	body, err := ReadRequestBody(r)
	if err != nil {
		return fmt.Errorf("failed to read request body: %w", err)
	}

	decoder := json.NewDecoder(bytes.NewReader(body))
	decoder.DisallowUnknownFields()
	if err = decoder.Decode(dst); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if err = validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid request: %w", err)
	}
	return nil
}

func ReadRequestBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
}
