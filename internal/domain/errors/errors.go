package errors

import "errors"

var (
	ErrInvalidInput      = errors.New("invalid URL format")
	ErrTransport         = errors.New("transport error")
	ErrDecode            = errors.New("decode error")
	ErrMalformedResponse = errors.New("malformed response")
	ErrParse             = errors.New("parse error")
	ErrExportNotFound    = errors.New("export not found")
)
