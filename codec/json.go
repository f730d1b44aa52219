package codec

import (
	"encoding/json"
)

// JSON is the standard-library JSON codec.
//
// It is the most portable option: level dictionaries and label values encode
// as plain JSON and decode anywhere. Prefer it when snapshots must be read by
// tooling outside this library.
type JSON struct{}

// Marshal encodes the value to JSON.
func (JSON) Marshal(v any) ([]byte, error) { return json.Marshal(v) }

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }

// Default is the codec used when none is configured.
//
// This only affects newly written snapshots. Existing files are
// self-describing and are opened by resolving the codec name recorded in
// their header.
var Default Codec = GoJSON{}
