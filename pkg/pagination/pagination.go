package pagination

import (
	"encoding/base64"
	"encoding/json"
	"errors"
)

const DefaultPageSize = 20

var ErrInvalidPageToken = errors.New("invalid_page_token")

type Pagination struct {
	PageToken string `form:"page_token"`
	PageSize  int    `form:"page_size,default=20" binding:"gte=1,lte=250"` // Min 1, Max 250
}

type Cursor struct {
	ID string `json:"id,omitempty"`
}

type PageInfo struct {
	NextPageToken string `json:"next_page_token"`
	HasMore       bool   `json:"has_more"`
}

func EncodeCursor(data Cursor) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}

func DecodeCursor(data string) (*Cursor, error) {
	b, err := base64.RawURLEncoding.DecodeString(data)
	if err != nil {
		return nil, ErrInvalidPageToken
	}

	var cursor Cursor
	if err := json.Unmarshal(b, &cursor); err != nil {
		return nil, ErrInvalidPageToken
	}

	return &cursor, nil
}

// Page slices an ordered list. The page token names the last id of the previous page.
func Page[T any](items []T, p Pagination, idOf func(T) string) ([]T, PageInfo, error) {
	size := p.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	start := 0
	if p.PageToken != "" {
		cursor, err := DecodeCursor(p.PageToken)
		if err != nil {
			return nil, PageInfo{}, err
		}
		start = -1
		for i, item := range items {
			if idOf(item) == cursor.ID {
				start = i + 1
				break
			}
		}
		if start < 0 {
			return nil, PageInfo{}, ErrInvalidPageToken
		}
	}

	end := start + size
	if end > len(items) {
		end = len(items)
	}
	page := items[start:end]

	info := PageInfo{HasMore: end < len(items)}
	if info.HasMore && len(page) > 0 {
		token, err := EncodeCursor(Cursor{ID: idOf(page[len(page)-1])})
		if err != nil {
			return nil, PageInfo{}, err
		}
		info.NextPageToken = token
	}
	return page, info, nil
}
