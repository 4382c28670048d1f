package storage

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/bytedance/sonic"

	"github.com/existflow/ironboard/internal/model"
)

// FormatVersion is the envelope version written by this package
const FormatVersion = 1

var (
	errCorrupt            = errors.New("payload is not valid JSON")
	errUnsupportedVersion = errors.New("unsupported format version")
)

// envelope wraps every persisted value
type envelope struct {
	Version *int                   `json:"version"`
	Data    sonic.NoCopyRawMessage `json:"data"`
}

func encodeEnvelope(v any) ([]byte, error) {
	data, err := sonic.ConfigStd.Marshal(v)
	if err != nil {
		return nil, err
	}
	version := FormatVersion
	return sonic.ConfigStd.Marshal(envelope{Version: &version, Data: data})
}

// unwrap returns the data of a versioned envelope, or the raw payload itself
// when it is a legacy value written without an envelope. legacy reports which.
func unwrap(raw []byte) (data []byte, legacy bool, err error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, false, errCorrupt
	}
	if trimmed[0] == '[' {
		return trimmed, true, nil
	}

	var env envelope
	if err := sonic.ConfigStd.Unmarshal(trimmed, &env); err != nil {
		return nil, false, fmt.Errorf("%w: %v", errCorrupt, err)
	}
	if env.Version == nil {
		return trimmed, true, nil
	}
	if *env.Version != FormatVersion {
		return nil, false, fmt.Errorf("%w: %d", errUnsupportedVersion, *env.Version)
	}
	return env.Data, false, nil
}

// validator is implemented by every persisted record type
type validator interface {
	Validate() error
}

// decodeResult describes what decoding a payload had to do
type decodeResult struct {
	legacy  bool
	dropped []error
}

// decodeCollection decodes a collection payload. Records that do not decode
// or validate are skipped and reported in the result.
func decodeCollection[T validator](raw []byte) ([]T, decodeResult, error) {
	data, legacy, err := unwrap(raw)
	if err != nil {
		return nil, decodeResult{}, err
	}
	res := decodeResult{legacy: legacy}

	var items []sonic.NoCopyRawMessage
	if err := sonic.ConfigStd.Unmarshal(data, &items); err != nil {
		return nil, res, fmt.Errorf("%w: %v", errCorrupt, err)
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		var v T
		if err := sonic.ConfigStd.Unmarshal(item, &v); err != nil {
			res.dropped = append(res.dropped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		if err := v.Validate(); err != nil {
			res.dropped = append(res.dropped, fmt.Errorf("record %d: %w", i, err))
			continue
		}
		out = append(out, v)
	}
	return out, res, nil
}

// decodeSettings decodes settings over the defaults so missing keys keep them
func decodeSettings(raw []byte) (model.Settings, decodeResult, error) {
	data, legacy, err := unwrap(raw)
	if err != nil {
		return model.DefaultSettings(), decodeResult{}, err
	}
	res := decodeResult{legacy: legacy}

	settings := model.DefaultSettings()
	if err := sonic.ConfigStd.Unmarshal(data, &settings); err != nil {
		return model.DefaultSettings(), res, fmt.Errorf("%w: %v", errCorrupt, err)
	}
	return settings, res, nil
}
