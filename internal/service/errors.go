package service

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrPasswordIncorrect  = errors.New("password incorrect")
	ErrTokenIncorrect     = errors.New("token incorrect")
	ErrPageNotPublished   = errors.New("sales page is not published")
	ErrPageHasNoProduct   = errors.New("sales page has no product")
	ErrProductUnavailable = errors.New("product is not available")
	ErrPaymentFailed      = errors.New("payment failed")
	ErrCheckoutInProgress = errors.New("checkout already in progress")

	errNoChange = errors.New("no change")
)

// ValidationError reports input problems per field, keyed by the field's json name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "validation failed: " + strings.Join(names, ", ")
}
