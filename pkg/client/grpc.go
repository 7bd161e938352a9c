package client

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"

	"inferd/internal/grpcapi"
	"inferd/pkg/pb"
	"inferd/pkg/types"
)

// GRPCClient talks to a remote server over the KServe v2 gRPC service.
type GRPCClient struct {
	conn *grpc.ClientConn
	stub pb.GRPCInferenceServiceClient
}

// NewGRPCClient dials the server at the given address with the shared
// message codec.
func NewGRPCClient(address string) (*GRPCClient, error) {
	opts := append(pb.DialOptions(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	conn, err := grpc.NewClient(address, opts...)
	if err != nil {
		return nil, ErrConnection(err)
	}
	return &GRPCClient{conn: conn, stub: pb.NewGRPCInferenceServiceClient(conn)}, nil
}

// Close tears down the underlying connection.
func (c *GRPCClient) Close() error { return c.conn.Close() }

func (c *GRPCClient) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// mapRPCError converts a gRPC failure into the client error taxonomy:
// transport failures are retryable connection errors, everything else is a
// bad status.
func mapRPCError(err error) error {
	st, ok := status.FromError(err)
	if !ok {
		return ErrConnection(err)
	}
	if st.Code() == codes.Unavailable {
		return ErrConnection(err)
	}
	return ErrBadStatus(int(st.Code()), st.Message())
}

func (c *GRPCClient) ServerMetadata() (types.ServerMetadata, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	resp, err := c.stub.ServerMetadata(ctx, &pb.ServerMetadataRequest{})
	if err != nil {
		return types.ServerMetadata{}, mapRPCError(err)
	}
	return types.ServerMetadata{Name: resp.Name, Version: resp.Version, Extensions: resp.Extensions}, nil
}

func (c *GRPCClient) ServerLive() (bool, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	resp, err := c.stub.ServerLive(ctx, &pb.ServerLiveRequest{})
	if err != nil {
		return false, mapRPCError(err)
	}
	return resp.Live, nil
}

func (c *GRPCClient) ServerReady() (bool, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	resp, err := c.stub.ServerReady(ctx, &pb.ServerReadyRequest{})
	if err != nil {
		return false, mapRPCError(err)
	}
	return resp.Ready, nil
}

func (c *GRPCClient) ModelReady(model string) (bool, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	resp, err := c.stub.ModelReady(ctx, &pb.ModelReadyRequest{Name: model})
	if err != nil {
		return false, mapRPCError(err)
	}
	return resp.Ready, nil
}

func (c *GRPCClient) ModelMetadata(model string) (types.ModelMetadata, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	resp, err := c.stub.ModelMetadata(ctx, &pb.ModelMetadataRequest{Name: model})
	if err != nil {
		return types.ModelMetadata{}, mapRPCError(err)
	}
	meta := types.ModelMetadata{Name: resp.Name, Versions: resp.Versions, Platform: resp.Platform}
	for _, t := range resp.Inputs {
		dt, err := types.ParseDataType(t.Datatype)
		if err != nil {
			return meta, err
		}
		meta.Inputs = append(meta.Inputs, types.Tensor{Name: t.Name, Shape: t.Shape, Datatype: dt})
	}
	for _, t := range resp.Outputs {
		dt, err := types.ParseDataType(t.Datatype)
		if err != nil {
			return meta, err
		}
		meta.Outputs = append(meta.Outputs, types.Tensor{Name: t.Name, Shape: t.Shape, Datatype: dt})
	}
	return meta, nil
}

func (c *GRPCClient) ModelLoad(model string, parameters *types.ParameterMap) error {
	ctx, cancel := c.ctx()
	defer cancel()
	_, err := c.stub.ModelLoad(ctx, &pb.ModelLoadRequest{
		Name:       model,
		Parameters: grpcapi.ParametersToProto(parameters),
	})
	if err != nil {
		return mapRPCError(err)
	}
	return nil
}

func (c *GRPCClient) ModelUnload(model string) error {
	ctx, cancel := c.ctx()
	defer cancel()
	if _, err := c.stub.ModelUnload(ctx, &pb.ModelUnloadRequest{Name: model}); err != nil {
		return mapRPCError(err)
	}
	return nil
}

func (c *GRPCClient) ModelInfer(model string, request *types.InferenceRequest) (*types.InferenceResponse, error) {
	wire, err := grpcapi.RequestToProto(model, request)
	if err != nil {
		return nil, err
	}
	ctx, cancel := c.ctx()
	defer cancel()
	resp, err := c.stub.ModelInfer(ctx, wire)
	if err != nil {
		return nil, mapRPCError(err)
	}
	return grpcapi.ResponseFromProto(resp)
}

// ModelInferAsync issues the request on its own goroutine; failures
// resolve the future as error responses.
func (c *GRPCClient) ModelInferAsync(model string, request *types.InferenceRequest) *ResponseFuture {
	future := newFuture()
	go func() {
		resp, err := c.ModelInfer(model, request)
		if err != nil {
			future.resolve(&types.InferenceResponse{ID: request.ID, Model: model, Error: err.Error()})
			return
		}
		future.resolve(resp)
	}()
	return future
}

func (c *GRPCClient) ModelList() ([]string, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	resp, err := c.stub.ModelList(ctx, &pb.ModelListRequest{})
	if err != nil {
		return nil, mapRPCError(err)
	}
	return resp.Models, nil
}

func (c *GRPCClient) WorkerLoad(worker string, parameters *types.ParameterMap) (string, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	resp, err := c.stub.WorkerLoad(ctx, &pb.WorkerLoadRequest{
		Name:       worker,
		Parameters: grpcapi.ParametersToProto(parameters),
	})
	if err != nil {
		return "", mapRPCError(err)
	}
	return resp.Endpoint, nil
}

func (c *GRPCClient) WorkerUnload(worker string) error {
	ctx, cancel := c.ctx()
	defer cancel()
	if _, err := c.stub.WorkerUnload(ctx, &pb.WorkerUnloadRequest{Name: worker}); err != nil {
		return mapRPCError(err)
	}
	return nil
}

func (c *GRPCClient) HasHardware(name string, num int) (bool, error) {
	ctx, cancel := c.ctx()
	defer cancel()
	resp, err := c.stub.HasHardware(ctx, &pb.HasHardwareRequest{Name: name, Num: int32(num)})
	if err != nil {
		return false, mapRPCError(err)
	}
	return resp.Found, nil
}
