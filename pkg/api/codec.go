// Package api defines the wire messages of the fairly.v1 services.
//
// Messages are plain Go structs encoded as JSON. Connect handlers and clients
// built by package apiconnect register JSONCodec so the same messages work
// with any Connect JSON client, curl included.
package api

import (
	"encoding/json"
	"fmt"
)

// JSONCodec is a connect.Codec for plain JSON messages.
type JSONCodec struct{}

// Name implements connect.Codec. It replaces Connect's protojson codec.
func (JSONCodec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(msg any) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("marshal %T: %w", msg, err)
	}
	return data, nil
}

// Unmarshal implements connect.Codec. An empty body decodes to the zero message.
func (JSONCodec) Unmarshal(data []byte, msg any) error {
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, msg); err != nil {
		return fmt.Errorf("unmarshal %T: %w", msg, err)
	}
	return nil
}
