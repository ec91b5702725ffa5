// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusUnprocessableEntity: ErrUnprocessable,
	http.StatusTooManyRequests:     ErrTooManyRequests,
	http.StatusInternalServerError: ErrInternalServerError,
}

// FieldError mirrors one rejected field of a 422 answer.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorBody is the JSON error envelope written by the server.
type errorBody struct {
	Error  string       `json:"error"`
	Errors []FieldError `json:"errors"`
}

// ResponseError carries the decoded error body of a non-2xx answer.
type ResponseError struct {
	StatusCode int
	Message    string
	Fields     []FieldError

	sentinel error
}

func (e *ResponseError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("%s: %s", e.sentinel, e.Message)
	}

	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return fmt.Sprintf("%s: %s", e.sentinel, strings.Join(parts, "; "))
}

func (e *ResponseError) Unwrap() error {
	return e.sentinel
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	respErr := &ResponseError{StatusCode: resp.StatusCode()}

	var body errorBody
	if err := json.Unmarshal(resp.Body(), &body); err == nil {
		respErr.Message = body.Error
		respErr.Fields = body.Errors
	} else {
		respErr.Message = strings.TrimSpace(string(resp.Body()))
	}
	if respErr.Message == "" {
		respErr.Message = http.StatusText(resp.StatusCode())
	}

	sentinel, ok := statusErrors[resp.StatusCode()]
	if !ok {
		sentinel = fmt.Errorf("http %d", resp.StatusCode())
	}
	respErr.sentinel = sentinel

	return respErr
}
