// Package grpcstore implements a blobstore.Store backed by a remote service,
// for deployments that want the deriver's write pipeline to target a shared
// blob service rather than local disk. There is no .proto compiler
// available in this repository, so both the request/response messages and
// the gRPC service description below are hand-built directly against
// protowire and grpc.ServiceDesc, the same approach the manifest package
// uses for node encoding.
package grpcstore

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	fieldPutKey    protowire.Number = 1
	fieldPutData   protowire.Number = 2
	fieldGetKey    protowire.Number = 1
	fieldGetData   protowire.Number = 1
	fieldExistsKey protowire.Number = 1
	fieldExistsOK  protowire.Number = 1
)

// putRequest is the wire message for Store.Put.
type putRequest struct {
	Key  string
	Data []byte
}

func (r *putRequest) Marshal() []byte {
	var buf []byte
	buf = protowire.AppendTag(buf, fieldPutKey, protowire.BytesType)
	buf = protowire.AppendBytes(buf, []byte(r.Key))
	buf = protowire.AppendTag(buf, fieldPutData, protowire.BytesType)
	buf = protowire.AppendBytes(buf, r.Data)
	return buf
}

func unmarshalPutRequest(data []byte) (*putRequest, error) {
	r := &putRequest{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("grpcstore: invalid putRequest tag")
		}
		data = data[n:]
		switch num {
		case fieldPutKey:
			value, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("grpcstore: invalid putRequest key")
			}
			r.Key = string(value)
			data = data[n:]
		case fieldPutData:
			value, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("grpcstore: invalid putRequest data")
			}
			r.Data = append([]byte(nil), value...)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("grpcstore: invalid putRequest field")
			}
			data = data[n:]
		}
	}
	return r, nil
}

// putResponse is the (empty) wire message for a successful Put.
type putResponse struct{}

func (r *putResponse) Marshal() []byte { return nil }

func unmarshalPutResponse([]byte) (*putResponse, error) { return &putResponse{}, nil }

// getRequest is the wire message for Store.Get.
type getRequest struct {
	Key string
}

func (r *getRequest) Marshal() []byte {
	var buf []byte
	buf = protowire.AppendTag(buf, fieldGetKey, protowire.BytesType)
	buf = protowire.AppendBytes(buf, []byte(r.Key))
	return buf
}

func unmarshalGetRequest(data []byte) (*getRequest, error) {
	r := &getRequest{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("grpcstore: invalid getRequest tag")
		}
		data = data[n:]
		switch num {
		case fieldGetKey:
			value, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("grpcstore: invalid getRequest key")
			}
			r.Key = string(value)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("grpcstore: invalid getRequest field")
			}
			data = data[n:]
		}
	}
	return r, nil
}

// getResponse is the wire message carrying the requested blob's data.
type getResponse struct {
	Data []byte
}

func (r *getResponse) Marshal() []byte {
	var buf []byte
	buf = protowire.AppendTag(buf, fieldGetData, protowire.BytesType)
	buf = protowire.AppendBytes(buf, r.Data)
	return buf
}

func unmarshalGetResponse(data []byte) (*getResponse, error) {
	r := &getResponse{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("grpcstore: invalid getResponse tag")
		}
		data = data[n:]
		switch num {
		case fieldGetData:
			value, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("grpcstore: invalid getResponse data")
			}
			r.Data = append([]byte(nil), value...)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("grpcstore: invalid getResponse field")
			}
			data = data[n:]
		}
	}
	return r, nil
}

// existsRequest is the wire message for Store.Exists.
type existsRequest struct {
	Key string
}

func (r *existsRequest) Marshal() []byte {
	var buf []byte
	buf = protowire.AppendTag(buf, fieldExistsKey, protowire.BytesType)
	buf = protowire.AppendBytes(buf, []byte(r.Key))
	return buf
}

func unmarshalExistsRequest(data []byte) (*existsRequest, error) {
	r := &existsRequest{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("grpcstore: invalid existsRequest tag")
		}
		data = data[n:]
		switch num {
		case fieldExistsKey:
			value, n := protowire.ConsumeBytes(data)
			if n < 0 {
				return nil, fmt.Errorf("grpcstore: invalid existsRequest key")
			}
			r.Key = string(value)
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("grpcstore: invalid existsRequest field")
			}
			data = data[n:]
		}
	}
	return r, nil
}

// existsResponse is the wire message carrying the existence result.
type existsResponse struct {
	Exists bool
}

func (r *existsResponse) Marshal() []byte {
	var buf []byte
	buf = protowire.AppendTag(buf, fieldExistsOK, protowire.VarintType)
	var v uint64
	if r.Exists {
		v = 1
	}
	buf = protowire.AppendVarint(buf, v)
	return buf
}

// Unmarshal implementations below let each message type satisfy the
// wireMessage interface the codec operates on, so the codec itself never
// needs a type switch over concrete message types.

func (r *putRequest) Unmarshal(data []byte) error {
	decoded, err := unmarshalPutRequest(data)
	if err != nil {
		return err
	}
	*r = *decoded
	return nil
}

func (r *putResponse) Unmarshal(data []byte) error {
	decoded, err := unmarshalPutResponse(data)
	if err != nil {
		return err
	}
	*r = *decoded
	return nil
}

func (r *getRequest) Unmarshal(data []byte) error {
	decoded, err := unmarshalGetRequest(data)
	if err != nil {
		return err
	}
	*r = *decoded
	return nil
}

func (r *getResponse) Unmarshal(data []byte) error {
	decoded, err := unmarshalGetResponse(data)
	if err != nil {
		return err
	}
	*r = *decoded
	return nil
}

func (r *existsRequest) Unmarshal(data []byte) error {
	decoded, err := unmarshalExistsRequest(data)
	if err != nil {
		return err
	}
	*r = *decoded
	return nil
}

func (r *existsResponse) Unmarshal(data []byte) error {
	decoded, err := unmarshalExistsResponse(data)
	if err != nil {
		return err
	}
	*r = *decoded
	return nil
}

func unmarshalExistsResponse(data []byte) (*existsResponse, error) {
	r := &existsResponse{}
	for len(data) > 0 {
		num, typ, n := protowire.ConsumeTag(data)
		if n < 0 {
			return nil, fmt.Errorf("grpcstore: invalid existsResponse tag")
		}
		data = data[n:]
		switch num {
		case fieldExistsOK:
			value, n := protowire.ConsumeVarint(data)
			if n < 0 {
				return nil, fmt.Errorf("grpcstore: invalid existsResponse value")
			}
			r.Exists = value != 0
			data = data[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, data)
			if n < 0 {
				return nil, fmt.Errorf("grpcstore: invalid existsResponse field")
			}
			data = data[n:]
		}
	}
	return r, nil
}
