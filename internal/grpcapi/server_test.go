package grpcapi

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"inferd/internal/manager"
	"inferd/pkg/pb"
	"inferd/pkg/types"
)

func dialBuf(t *testing.T, mgr *manager.Manager) pb.GRPCInferenceServiceClient {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	server := NewGRPCServer(mgr, zerolog.Nop())
	go func() { _ = server.Serve(lis) }()
	t.Cleanup(server.Stop)

	opts := append(pb.DialOptions(),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithContextDialer(func(ctx context.Context, addr string) (net.Conn, error) {
			return lis.Dial()
		}),
	)
	conn, err := grpc.NewClient("passthrough:///bufnet", opts...)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return pb.NewGRPCInferenceServiceClient(conn)
}

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestServerLiveAndMetadata(t *testing.T) {
	mgr := manager.New(manager.Config{Version: "test", Logger: zerolog.Nop()})
	defer mgr.Shutdown()
	stub := dialBuf(t, mgr)

	live, err := stub.ServerLive(testCtx(t), &pb.ServerLiveRequest{})
	if err != nil {
		t.Fatalf("serverLive: %v", err)
	}
	if !live.Live {
		t.Fatal("server should be live")
	}
	meta, err := stub.ServerMetadata(testCtx(t), &pb.ServerMetadataRequest{})
	if err != nil {
		t.Fatalf("serverMetadata: %v", err)
	}
	if meta.Name != "inferd" || meta.Version != "test" {
		t.Fatalf("meta=%+v", meta)
	}
}

func TestWorkerLoadInferUnload(t *testing.T) {
	mgr := manager.New(manager.Config{Version: "test", Logger: zerolog.Nop()})
	defer mgr.Shutdown()
	stub := dialBuf(t, mgr)

	loadResp, err := stub.WorkerLoad(testCtx(t), &pb.WorkerLoadRequest{Name: "echo"})
	if err != nil {
		t.Fatalf("workerLoad: %v", err)
	}
	if loadResp.Endpoint != "echo" {
		t.Fatalf("endpoint=%s", loadResp.Endpoint)
	}

	ready, err := stub.ModelReady(testCtx(t), &pb.ModelReadyRequest{Name: "echo"})
	if err != nil || !ready.Ready {
		t.Fatalf("modelReady=%v err=%v", ready, err)
	}

	infer, err := stub.ModelInfer(testCtx(t), &pb.ModelInferRequest{
		ModelName: "echo",
		Id:        "r1",
		Inputs: []*pb.ModelInferRequestInferInputTensor{{
			Name:     "input",
			Datatype: "UINT32",
			Shape:    []int64{1},
			Contents: &pb.InferTensorContents{UintContents: []uint32{7}},
		}},
	})
	if err != nil {
		t.Fatalf("modelInfer: %v", err)
	}
	if len(infer.Outputs) != 1 || infer.Outputs[0].Contents.UintContents[0] != 8 {
		t.Fatalf("outputs=%+v", infer.Outputs)
	}

	if _, err := stub.WorkerUnload(testCtx(t), &pb.WorkerUnloadRequest{Name: "echo"}); err != nil {
		t.Fatalf("workerUnload: %v", err)
	}
	list, err := stub.ModelList(testCtx(t), &pb.ModelListRequest{})
	if err != nil || len(list.Models) != 0 {
		t.Fatalf("list=%v err=%v", list, err)
	}
}

func TestInferUnknownModelStatus(t *testing.T) {
	mgr := manager.New(manager.Config{Version: "test", Logger: zerolog.Nop()})
	defer mgr.Shutdown()
	stub := dialBuf(t, mgr)

	_, err := stub.ModelInfer(testCtx(t), &pb.ModelInferRequest{
		ModelName: "does_not_exist",
		Inputs: []*pb.ModelInferRequestInferInputTensor{{
			Name:     "input",
			Datatype: "UINT32",
			Shape:    []int64{1},
			Contents: &pb.InferTensorContents{UintContents: []uint32{1}},
		}},
	})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("code=%v", status.Code(err))
	}
}

func TestStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		code codes.Code
	}{
		{manager.ErrNotFound("m"), codes.NotFound},
		{manager.ErrInvalidArgument("bad"), codes.InvalidArgument},
		{manager.ErrUnavailable("m"), codes.Unavailable},
		{manager.ErrRuntime("boom"), codes.Unknown},
		{context.Canceled, codes.Canceled},
	}
	for _, c := range cases {
		if got := status.Code(toStatus(c.err)); got != c.code {
			t.Errorf("%v: code=%v want %v", c.err, got, c.code)
		}
	}
}

func TestRequestConversionRoundTrip(t *testing.T) {
	original := &types.InferenceRequest{
		ID: "r1",
		Inputs: []types.InferenceRequestInput{{
			Name:     "input",
			Shape:    []int64{2},
			Datatype: types.Uint32,
			Data:     []byte{1, 0, 0, 0, 2, 0, 0, 0},
		}},
		Outputs: []types.InferenceRequestOutput{{Name: "output"}},
	}
	wire, err := RequestToProto("echo", original)
	if err != nil {
		t.Fatalf("toProto: %v", err)
	}
	if wire.Inputs[0].Contents.UintContents[1] != 2 {
		t.Fatalf("contents=%+v", wire.Inputs[0].Contents)
	}
	back, err := RequestFromProto(wire)
	if err != nil {
		t.Fatalf("fromProto: %v", err)
	}
	if back.ID != "r1" || len(back.Inputs) != 1 || len(back.Inputs[0].Data) != 8 {
		t.Fatalf("back=%+v", back)
	}
	if back.Inputs[0].Data[4] != 2 {
		t.Fatalf("data=%v", back.Inputs[0].Data)
	}
}

func TestParametersConversion(t *testing.T) {
	params := types.NewParameterMap()
	params.Put("batch_size", 4)
	params.Put("worker", "echo")
	params.Put("share", true)
	params.Put("scale", 1.5)

	wire := ParametersToProto(params)
	back := ParametersFromProto(wire)
	if back.GetInt("batch_size") != 4 || back.GetString("worker") != "echo" ||
		!back.GetBool("share") || back.GetFloat("scale") != 1.5 {
		t.Fatalf("roundtrip lost parameters")
	}
}
