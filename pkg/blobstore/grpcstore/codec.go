package grpcstore

import (
	"fmt"

	"google.golang.org/grpc/encoding"
)

// codecName is the content subtype registered with grpc's encoding
// package and requested by the client via grpc.CallContentSubtype.
const codecName = "dfmwire"

// wireMessage is satisfied by every request/response type in wire.go.
type wireMessage interface {
	Marshal() []byte
	Unmarshal([]byte) error
}

// codec is a grpc encoding.Codec over the hand-built protowire messages
// defined in wire.go, standing in for the protoc-generated codec a real
// .proto-based service would use.
type codec struct{}

func (codec) Name() string {
	return codecName
}

func (codec) Marshal(v interface{}) ([]byte, error) {
	message, ok := v.(wireMessage)
	if !ok {
		return nil, fmt.Errorf("grpcstore: cannot marshal value of type %T", v)
	}
	return message.Marshal(), nil
}

func (codec) Unmarshal(data []byte, v interface{}) error {
	message, ok := v.(wireMessage)
	if !ok {
		return fmt.Errorf("grpcstore: cannot unmarshal into value of type %T", v)
	}
	return message.Unmarshal(data)
}

func init() {
	encoding.RegisterCodec(codec{})
}
