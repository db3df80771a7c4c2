package grpcstore

import (
	"context"

	"google.golang.org/grpc"
)

// serviceName is the fully-qualified name used for routing, matching the
// dotted convention a .proto package/service declaration would produce.
const serviceName = "dfm.blobstore.Store"

// blobServer is the narrow interface service.go dispatches onto; server.go
// provides the concrete implementation wrapping a blobstore.Store.
type blobServer interface {
	Put(ctx context.Context, req *putRequest) (*putResponse, error)
	Get(ctx context.Context, req *getRequest) (*getResponse, error)
	Exists(ctx context.Context, req *existsRequest) (*existsResponse, error)
}

func putHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := &putRequest{}
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(blobServer).Put(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/Put"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(blobServer).Put(ctx, req.(*putRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func getHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := &getRequest{}
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(blobServer).Get(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/Get"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(blobServer).Get(ctx, req.(*getRequest))
	}
	return interceptor(ctx, req, info, handler)
}

func existsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	req := &existsRequest{}
	if err := dec(req); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(blobServer).Exists(ctx, req)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: serviceName + "/Exists"}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(blobServer).Exists(ctx, req.(*existsRequest))
	}
	return interceptor(ctx, req, info, handler)
}

// serviceDesc is the hand-wired stand-in for a protoc-generated
// _ServiceDesc, registered against a *grpc.Server by RegisterServer.
var serviceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*blobServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Put", Handler: putHandler},
		{MethodName: "Get", Handler: getHandler},
		{MethodName: "Exists", Handler: existsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "pkg/blobstore/grpcstore/service.go",
}
