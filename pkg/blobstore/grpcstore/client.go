package grpcstore

import (
	"context"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
)

// Client implements blobstore.Store over a gRPC connection to a Server,
// using the dfmwire codec instead of a protoc-generated client stub.
type Client struct {
	conn *grpc.ClientConn
}

// NewClient wraps an existing connection. The caller owns the connection's
// lifecycle; Client never closes it.
func NewClient(conn *grpc.ClientConn) *Client {
	return &Client{conn: conn}
}

// Put implements blobstore.Store.Put.
func (c *Client) Put(ctx context.Context, key string, data []byte) error {
	req := &putRequest{Key: key, Data: data}
	resp := &putResponse{}
	if err := c.conn.Invoke(ctx, "/"+serviceName+"/Put", req, resp, grpc.CallContentSubtype(codecName)); err != nil {
		return errors.Wrap(err, "put rpc failed")
	}
	return nil
}

// Get implements blobstore.Store.Get.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	req := &getRequest{Key: key}
	resp := &getResponse{}
	if err := c.conn.Invoke(ctx, "/"+serviceName+"/Get", req, resp, grpc.CallContentSubtype(codecName)); err != nil {
		return nil, errors.Wrap(err, "get rpc failed")
	}
	return resp.Data, nil
}

// Exists implements blobstore.Store.Exists.
func (c *Client) Exists(ctx context.Context, key string) (bool, error) {
	req := &existsRequest{Key: key}
	resp := &existsResponse{}
	if err := c.conn.Invoke(ctx, "/"+serviceName+"/Exists", req, resp, grpc.CallContentSubtype(codecName)); err != nil {
		return false, errors.Wrap(err, "exists rpc failed")
	}
	return resp.Exists, nil
}
