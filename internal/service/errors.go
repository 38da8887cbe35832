package service

import (
	"fmt"
	"net/http"
)

// Error is a classified service failure mapped by handlers onto the
// response envelope.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func invalidRequest(message string) *Error {
	return NewError(http.StatusBadRequest, "invalid_request", message)
}

func conflict(message string) *Error {
	return NewError(http.StatusBadRequest, "conflict", message)
}

func unauthorized(message string) *Error {
	return NewError(http.StatusUnauthorized, "unauthorized", message)
}

func notFound(message string) *Error {
	return NewError(http.StatusNotFound, "not_found", message)
}

// Pagination describes one page of a list response.
type Pagination struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

func paginate(page, limit, total int64) Pagination {
	pages := total / limit
	if total%limit != 0 {
		pages++
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
