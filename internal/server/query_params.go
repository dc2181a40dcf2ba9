package server

import (
	"strconv"
	"strings"

	invoicedomain "github.com/smallbiznis/fatura/internal/invoice/domain"
)

func parseOptionalBool(value string) (*bool, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil, nil
	}
	parsed, err := strconv.ParseBool(trimmed)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

// parseIndex reads a list position from a path segment.
func parseIndex(value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return 0, invoicedomain.ErrIndexOutOfRange
	}
	return parsed, nil
}
