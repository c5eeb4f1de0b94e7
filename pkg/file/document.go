package file

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/flagkit/pkg/feature"
)

// parse decodes a flag document. Two shapes are accepted:
//
//	{"new-ui": true, "limit": 3}
//	[{"key": "new-ui", "value": true, "description": "..."}]
//
// Object documents come back sorted by key; arrays keep their order.
func parse(data []byte, format Format) ([]feature.Record, error) {
	raw, err := decode(data, format)
	if err != nil {
		return nil, errors.Join(ErrParse, err)
	}

	switch doc := raw.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return fromObject(doc)
	case []any:
		return fromArray(doc)
	default:
		return nil, errors.Join(ErrParse, fmt.Errorf("document must be an object or an array, got %T", raw))
	}
}

func decode(data []byte, format Format) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var out any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, err
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&out); err != nil {
			return nil, err
		}
		if _, err := dec.Token(); !errors.Is(err, io.EOF) {
			return nil, errors.New("unexpected data after top-level value")
		}
	}
	return out, nil
}

func fromObject(doc map[string]any) ([]feature.Record, error) {
	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	records := make([]feature.Record, 0, len(keys))
	for _, k := range keys {
		rec, err := record(k, doc[k], "")
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func fromArray(doc []any) ([]feature.Record, error) {
	records := make([]feature.Record, 0, len(doc))
	for i, item := range doc {
		entry, ok := item.(map[string]any)
		if !ok {
			return nil, errors.Join(ErrInvalidRecord, fmt.Errorf("entry %d is not an object", i))
		}
		key, _ := entry["key"].(string)
		desc, _ := entry["description"].(string)
		rec, err := record(key, entry["value"], desc)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func record(key string, raw any, description string) (feature.Record, error) {
	if key == "" {
		return feature.Record{}, errors.Join(ErrInvalidRecord, errors.New("flag key cannot be empty"))
	}
	v, err := feature.ValueOf(raw)
	if err != nil {
		return feature.Record{}, errors.Join(ErrInvalidRecord, fmt.Errorf("flag %q: %w", key, err))
	}
	return feature.Record{Key: key, Value: v, Description: description}, nil
}
