package domain

import "errors"

var (
	ErrCorruptRecord     = errors.New("corrupt_record")
	ErrUnknownField      = errors.New("invalid_field")
	ErrImmutableField    = errors.New("immutable_field")
	ErrIndexOutOfRange   = errors.New("invalid_index")
	ErrLastItem          = errors.New("last_item")
	ErrInvoiceNotFound   = errors.New("invoice_not_found")
	ErrInvalidLanguage   = errors.New("invalid_language")
	ErrInvalidThemeMode  = errors.New("invalid_theme_mode")
	ErrInvalidTab        = errors.New("invalid_tab")
	ErrRendererNotConfig = errors.New("renderer_not_configured")
)
