// Package grpcapi adapts the dispatch façade to the KServe v2 gRPC
// inference service. Completion-queue mechanics stay on the wire side; the
// core only sees synchronous enqueue plus callbacks.
package grpcapi

import (
	"context"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"inferd/internal/manager"
	"inferd/pkg/pb"
	"inferd/pkg/types"
)

// Service is the slice of the dispatch façade the gRPC layer needs.
type Service interface {
	ServerMetadata() types.ServerMetadata
	ServerLive() bool
	ServerReady() bool
	ModelReady(name string) bool
	ModelMetadata(name string) (types.ModelMetadata, error)
	ModelList() []string
	ModelLoad(name string, params *types.ParameterMap) error
	ModelUnload(name string) error
	WorkerLoad(name string, params *types.ParameterMap) (string, error)
	WorkerUnload(name string) error
	ModelInferSync(ctx context.Context, model string, req *types.InferenceRequest) (*types.InferenceResponse, error)
	HasHardware(name string, num int) bool
}

// Server implements pb.GRPCInferenceServiceServer over the façade.
type Server struct {
	pb.UnimplementedGRPCInferenceServiceServer
	svc    Service
	logger zerolog.Logger
}

// NewServer wraps the façade.
func NewServer(svc Service, logger zerolog.Logger) *Server {
	return &Server{svc: svc, logger: logger}
}

// NewGRPCServer builds a grpc.Server with the shared codec and the
// inference service registered.
func NewGRPCServer(svc Service, logger zerolog.Logger) *grpc.Server {
	s := grpc.NewServer(
		grpc.ForceServerCodec(pb.Codec{}),
		grpc.ChainUnaryInterceptor(recoveryInterceptor(logger), loggingInterceptor(logger)),
	)
	pb.RegisterGRPCInferenceServiceServer(s, NewServer(svc, logger))
	return s
}

func (s *Server) ServerLive(ctx context.Context, in *pb.ServerLiveRequest) (*pb.ServerLiveResponse, error) {
	return &pb.ServerLiveResponse{Live: s.svc.ServerLive()}, nil
}

func (s *Server) ServerReady(ctx context.Context, in *pb.ServerReadyRequest) (*pb.ServerReadyResponse, error) {
	return &pb.ServerReadyResponse{Ready: s.svc.ServerReady()}, nil
}

func (s *Server) ServerMetadata(ctx context.Context, in *pb.ServerMetadataRequest) (*pb.ServerMetadataResponse, error) {
	meta := s.svc.ServerMetadata()
	return &pb.ServerMetadataResponse{
		Name:       meta.Name,
		Version:    meta.Version,
		Extensions: meta.Extensions,
	}, nil
}

func (s *Server) ModelReady(ctx context.Context, in *pb.ModelReadyRequest) (*pb.ModelReadyResponse, error) {
	return &pb.ModelReadyResponse{Ready: s.svc.ModelReady(in.Name)}, nil
}

func (s *Server) ModelMetadata(ctx context.Context, in *pb.ModelMetadataRequest) (*pb.ModelMetadataResponse, error) {
	meta, err := s.svc.ModelMetadata(in.Name)
	if err != nil {
		return nil, toStatus(err)
	}
	resp := &pb.ModelMetadataResponse{
		Name:     meta.Name,
		Versions: meta.Versions,
		Platform: meta.Platform,
	}
	for _, t := range meta.Inputs {
		resp.Inputs = append(resp.Inputs, tensorMetadata(t))
	}
	for _, t := range meta.Outputs {
		resp.Outputs = append(resp.Outputs, tensorMetadata(t))
	}
	return resp, nil
}

func (s *Server) ModelInfer(ctx context.Context, in *pb.ModelInferRequest) (*pb.ModelInferResponse, error) {
	req, err := RequestFromProto(in)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	resp, err := s.svc.ModelInferSync(ctx, in.ModelName, req)
	if err != nil {
		return nil, toStatus(err)
	}
	if resp.Error != "" {
		return nil, status.Error(codes.InvalidArgument, resp.Error)
	}
	return ResponseToProto(resp)
}

func (s *Server) ModelLoad(ctx context.Context, in *pb.ModelLoadRequest) (*pb.ModelLoadResponse, error) {
	if err := s.svc.ModelLoad(in.Name, ParametersFromProto(in.Parameters)); err != nil {
		return nil, toStatus(err)
	}
	return &pb.ModelLoadResponse{}, nil
}

func (s *Server) ModelUnload(ctx context.Context, in *pb.ModelUnloadRequest) (*pb.ModelUnloadResponse, error) {
	if err := s.svc.ModelUnload(in.Name); err != nil {
		return nil, toStatus(err)
	}
	return &pb.ModelUnloadResponse{}, nil
}

func (s *Server) WorkerLoad(ctx context.Context, in *pb.WorkerLoadRequest) (*pb.WorkerLoadResponse, error) {
	endpoint, err := s.svc.WorkerLoad(in.Name, ParametersFromProto(in.Parameters))
	if err != nil {
		return nil, toStatus(err)
	}
	return &pb.WorkerLoadResponse{Endpoint: endpoint}, nil
}

func (s *Server) WorkerUnload(ctx context.Context, in *pb.WorkerUnloadRequest) (*pb.WorkerUnloadResponse, error) {
	if err := s.svc.WorkerUnload(in.Name); err != nil {
		return nil, toStatus(err)
	}
	return &pb.WorkerUnloadResponse{}, nil
}

func (s *Server) ModelList(ctx context.Context, in *pb.ModelListRequest) (*pb.ModelListResponse, error) {
	return &pb.ModelListResponse{Models: s.svc.ModelList()}, nil
}

func (s *Server) HasHardware(ctx context.Context, in *pb.HasHardwareRequest) (*pb.HasHardwareResponse, error) {
	return &pb.HasHardwareResponse{Found: s.svc.HasHardware(in.Name, int(in.Num))}, nil
}

// toStatus maps façade errors to gRPC codes.
func toStatus(err error) error {
	switch {
	case manager.IsNotFound(err):
		return status.Error(codes.NotFound, err.Error())
	case manager.IsInvalidArgument(err):
		return status.Error(codes.InvalidArgument, err.Error())
	case manager.IsUnavailable(err):
		return status.Error(codes.Unavailable, err.Error())
	case err == context.Canceled:
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Error(codes.Unknown, err.Error())
	}
}

func tensorMetadata(t types.Tensor) *pb.TensorMetadata {
	return &pb.TensorMetadata{Name: t.Name, Datatype: t.Datatype.String(), Shape: t.Shape}
}
