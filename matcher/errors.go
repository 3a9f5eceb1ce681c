package matcher

import "errors"

var (
	// ErrUnsupported is returned when a matcher cannot be evaluated because
	// it was built from arguments it does not support.
	ErrUnsupported = errors.New("unsupported matcher")
	// ErrInvalidMatcher is returned when a matcher was built with arguments
	// outside its domain, such as a negative statement count.
	ErrInvalidMatcher = errors.New("invalid matcher")

	ErrSyntax         = errors.New("matcher expression syntax error")
	ErrUnknownMatcher = errors.New("unknown matcher")
	ErrArity          = errors.New("wrong number of arguments")
	ErrArgument       = errors.New("invalid argument")
)
