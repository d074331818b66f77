package api

import "encoding/json"

// jsonCodec lets Connect handlers and clients exchange plain Go structs
// as application/json, without a protobuf schema. Registering it under
// the name "json" replaces Connect's protobuf-backed JSON codec for
// these procedures.
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

func (jsonCodec) Unmarshal(data []byte, message any) error {
	return json.Unmarshal(data, message)
}
