package grpcstore

import (
	"context"

	"google.golang.org/grpc"

	"github.com/dfmderiver/dfm/pkg/blobstore"
	"github.com/dfmderiver/dfm/pkg/logging"
)

// Server adapts a blobstore.Store to the blobServer wire contract.
type Server struct {
	store  blobstore.Store
	logger *logging.Logger
}

// RegisterServer registers a blob service backed by store on grpcServer.
func RegisterServer(grpcServer *grpc.Server, store blobstore.Store, logger *logging.Logger) {
	grpcServer.RegisterService(&serviceDesc, &Server{store: store, logger: logger})
}

// Put implements blobServer.Put.
func (s *Server) Put(ctx context.Context, req *putRequest) (*putResponse, error) {
	if err := s.store.Put(ctx, req.Key, req.Data); err != nil {
		s.logger.Warnf("put failed for %s: %v", req.Key, err)
		return nil, err
	}
	return &putResponse{}, nil
}

// Get implements blobServer.Get.
func (s *Server) Get(ctx context.Context, req *getRequest) (*getResponse, error) {
	data, err := s.store.Get(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	return &getResponse{Data: data}, nil
}

// Exists implements blobServer.Exists.
func (s *Server) Exists(ctx context.Context, req *existsRequest) (*existsResponse, error) {
	exists, err := s.store.Exists(ctx, req.Key)
	if err != nil {
		return nil, err
	}
	return &existsResponse{Exists: exists}, nil
}
