package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Meta is the normalized pagination metadata. Backend endpoints disagree on
// where meta lives and whether its numbers arrive as strings; this is the
// one canonical shape the rest of the codebase sees.
type Meta struct {
	CurrentPage int `json:"current_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
	LastPage    int `json:"last_page"`
}

// UnmarshalJSON coerces numeric-string fields ("15") to ints.
func (m *Meta) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}

	var err error
	if m.CurrentPage, err = coerceInt(fields["current_page"]); err != nil {
		return fmt.Errorf("meta current_page: %w", err)
	}
	if m.PerPage, err = coerceInt(fields["per_page"]); err != nil {
		return fmt.Errorf("meta per_page: %w", err)
	}
	if m.Total, err = coerceInt(fields["total"]); err != nil {
		return fmt.Errorf("meta total: %w", err)
	}
	if m.LastPage, err = coerceInt(fields["last_page"]); err != nil {
		return fmt.Errorf("meta last_page: %w", err)
	}
	return nil
}

// coerceInt parses a JSON number, numeric string, or null into an int.
func coerceInt(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}
	s := strings.Trim(string(raw), `"`)
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("not numeric: %q", s)
	}
	return int(f), nil
}

// listEnvelope covers the two object-wrapped list shapes.
type listEnvelope struct {
	Data json.RawMessage `json:"data"`
	Meta *Meta           `json:"meta"`
}

// UnwrapList normalizes the three list envelope shapes the backend emits:
//
//	[...]                              bare array
//	{"data": [...], "meta": {...}}     standard envelope
//	{"data": {"data": [...], "meta": {...}}}  double-wrapped envelope
//
// The returned message is always the bare item array.
func UnwrapList(raw json.RawMessage) (json.RawMessage, Meta, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return json.RawMessage("[]"), Meta{}, nil
	}

	if trimmed[0] == '[' {
		return trimmed, Meta{}, nil
	}

	var outer listEnvelope
	if err := json.Unmarshal(trimmed, &outer); err != nil {
		return nil, Meta{}, fmt.Errorf("decode list envelope: %w", err)
	}

	data := bytes.TrimSpace(outer.Data)
	if len(data) > 0 && data[0] == '[' {
		meta := Meta{}
		if outer.Meta != nil {
			meta = *outer.Meta
		}
		return data, meta, nil
	}

	if len(data) > 0 && data[0] == '{' {
		var inner listEnvelope
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, Meta{}, fmt.Errorf("decode nested list envelope: %w", err)
		}
		innerData := bytes.TrimSpace(inner.Data)
		if len(innerData) > 0 && innerData[0] == '[' {
			meta := Meta{}
			if inner.Meta != nil {
				meta = *inner.Meta
			} else if outer.Meta != nil {
				meta = *outer.Meta
			}
			return innerData, meta, nil
		}
	}

	return nil, Meta{}, fmt.Errorf("unrecognized list envelope shape")
}

// UnwrapItem normalizes a detail response: either {"data": {...}} or the
// bare object.
func UnwrapItem(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty item response")
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("unrecognized item envelope shape")
	}

	var probe struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &probe); err != nil {
		return nil, fmt.Errorf("decode item envelope: %w", err)
	}

	data := bytes.TrimSpace(probe.Data)
	if len(data) > 0 && data[0] == '{' {
		return data, nil
	}
	return trimmed, nil
}

// DecodeList unwraps a list envelope and unmarshals its items.
func DecodeList[T any](raw json.RawMessage) ([]T, Meta, error) {
	items, meta, err := UnwrapList(raw)
	if err != nil {
		return nil, Meta{}, err
	}

	var out []T
	if err := json.Unmarshal(items, &out); err != nil {
		return nil, Meta{}, fmt.Errorf("decode list items: %w", err)
	}
	return out, meta, nil
}

// DecodeItem unwraps a detail envelope and unmarshals the record.
func DecodeItem[T any](raw json.RawMessage) (T, error) {
	var zero T

	item, err := UnwrapItem(raw)
	if err != nil {
		return zero, err
	}

	var out T
	if err := json.Unmarshal(item, &out); err != nil {
		return zero, fmt.Errorf("decode item: %w", err)
	}
	return out, nil
}
