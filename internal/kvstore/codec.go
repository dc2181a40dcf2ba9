package kvstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/smallbiznis/fatura/internal/invoice/domain"
)

// CurrentVersion tags every record written by this build.
const CurrentVersion = 1

type envelope struct {
	Version int             `json:"version"`
	Data    json.RawMessage `json:"data"`
}

// Encode wraps v in a versioned envelope.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{Version: CurrentVersion, Data: data})
}

// Decode unwraps a versioned record into out and returns its version. Untagged records
// written before versioning decode as version 0. Malformed JSON yields ErrCorruptRecord.
func Decode(raw []byte, out any) (int, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return 0, fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
		}
		_, hasVersion := probe["version"]
		data, hasData := probe["data"]
		if hasVersion && hasData && len(probe) == 2 {
			var env envelope
			if err := json.Unmarshal(trimmed, &env); err != nil {
				return 0, fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
			}
			if env.Version > CurrentVersion {
				return env.Version, fmt.Errorf("%w: unsupported version %d", domain.ErrCorruptRecord, env.Version)
			}
			if err := json.Unmarshal(data, out); err != nil {
				return env.Version, fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
			}
			return env.Version, nil
		}
	}
	if err := json.Unmarshal(trimmed, out); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrCorruptRecord, err)
	}
	return 0, nil
}

// Load reads and decodes key. It returns found=false when the key was never written.
func Load(ctx context.Context, s Store, key string, out any) (bool, error) {
	raw, err := s.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if _, err := Decode(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

// Save encodes v and stores it under key.
func Save(ctx context.Context, s Store, key string, v any) error {
	raw, err := Encode(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw)
}
