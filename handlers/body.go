package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"time"
)

// fields is a decoded JSON object whose values are read as loose strings.
// Presence is tracked so partial updates can tell absent from empty.
type fields map[string]json.RawMessage

func decodeFields(r io.Reader) (fields, error) {
	var f fields
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, err
	}
	if f == nil {
		f = fields{}
	}
	return f, nil
}

// get returns the value of key and whether it was present. A JSON string is
// unquoted, null reads as "", and any other value is returned as its literal
// text.
func (f fields) get(key string) (string, bool) {
	raw, ok := f[key]
	if !ok {
		return "", false
	}
	raw = bytes.TrimSpace(raw)
	if bytes.Equal(raw, []byte("null")) {
		return "", true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, true
	}
	return string(raw), true
}

func (f fields) str(key string) string {
	v, _ := f.get(key)
	return v
}

func (f fields) ptr(key string) *string {
	v, ok := f.get(key)
	if !ok {
		return nil
	}
	return &v
}

// date reads key as a start date. A JSON number is epoch milliseconds and is
// rewritten as an RFC 3339 timestamp; anything else is passed on as text, so
// the string "1709251200000" stays a string.
func (f fields) date(key string) *string {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	if isNumber(raw) {
		var ms float64
		if err := json.Unmarshal(raw, &ms); err == nil {
			s := time.UnixMilli(int64(ms)).UTC().Format(time.RFC3339Nano)
			return &s
		}
	}
	return f.ptr(key)
}

func isNumber(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	c := raw[0]
	return c == '-' || (c >= '0' && c <= '9')
}
