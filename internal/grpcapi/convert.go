package grpcapi

import (
	"fmt"

	"inferd/pkg/pb"
	"inferd/pkg/types"
)

func ParametersFromProto(params map[string]*pb.InferParameter) *types.ParameterMap {
	if len(params) == 0 {
		return nil
	}
	out := types.NewParameterMap()
	for key, value := range params {
		if value == nil {
			continue
		}
		switch {
		case value.BoolParam != nil:
			out.Put(key, *value.BoolParam)
		case value.Int64Param != nil:
			out.Put(key, int(*value.Int64Param))
		case value.DoubleParam != nil:
			out.Put(key, *value.DoubleParam)
		case value.StringParam != nil:
			out.Put(key, *value.StringParam)
		}
	}
	return out
}

func RequestFromProto(in *pb.ModelInferRequest) (*types.InferenceRequest, error) {
	req := &types.InferenceRequest{ID: in.Id, Parameters: ParametersFromProto(in.Parameters)}
	for _, tensor := range in.Inputs {
		dt, err := types.ParseDataType(tensor.Datatype)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", tensor.Name, err)
		}
		values, err := contentsValues(dt, tensor.Contents)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", tensor.Name, err)
		}
		data, err := types.EncodeTensorData(dt, values)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", tensor.Name, err)
		}
		req.Inputs = append(req.Inputs, types.InferenceRequestInput{
			Name:       tensor.Name,
			Shape:      tensor.Shape,
			Datatype:   dt,
			Parameters: ParametersFromProto(tensor.Parameters),
			Data:       data,
		})
	}
	for _, out := range in.Outputs {
		req.Outputs = append(req.Outputs, types.InferenceRequestOutput{
			Name:       out.Name,
			Parameters: ParametersFromProto(out.Parameters),
		})
	}
	return req, nil
}

// contentsValues flattens the repeated field matching the datatype.
func contentsValues(dt types.DataType, c *pb.InferTensorContents) ([]any, error) {
	if c == nil {
		return nil, fmt.Errorf("missing tensor contents")
	}
	switch dt {
	case types.Bool:
		return anySlice(c.BoolContents), nil
	case types.Int8, types.Int16, types.Int32:
		return anySlice(c.IntContents), nil
	case types.Int64:
		return anySlice(c.Int64Contents), nil
	case types.Uint8, types.Uint16, types.Uint32:
		return anySlice(c.UintContents), nil
	case types.Uint64:
		return anySlice(c.Uint64Contents), nil
	case types.Fp16, types.Fp32:
		return anySlice(c.Fp32Contents), nil
	case types.Fp64:
		return anySlice(c.Fp64Contents), nil
	case types.String:
		out := make([]any, len(c.BytesContents))
		for i, b := range c.BytesContents {
			out[i] = string(b)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("no contents field for datatype %s", dt)
	}
}

func anySlice[T any](in []T) []any {
	out := make([]any, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}

func ResponseToProto(resp *types.InferenceResponse) (*pb.ModelInferResponse, error) {
	out := &pb.ModelInferResponse{ModelName: resp.Model, Id: resp.ID}
	for _, o := range resp.Outputs {
		t := types.Tensor{Shape: o.Shape, Datatype: o.Datatype}
		values, err := types.DecodeTensorData(o.Datatype, o.Data, t.Elements())
		if err != nil {
			return nil, fmt.Errorf("output %s: %w", o.Name, err)
		}
		contents, err := contentsFromValues(o.Datatype, values)
		if err != nil {
			return nil, fmt.Errorf("output %s: %w", o.Name, err)
		}
		out.Outputs = append(out.Outputs, &pb.ModelInferResponseInferOutputTensor{
			Name:     o.Name,
			Datatype: o.Datatype.String(),
			Shape:    o.Shape,
			Contents: contents,
		})
	}
	return out, nil
}

// RequestToProto converts a core request to its wire form, for the gRPC
// client.
func RequestToProto(model string, request *types.InferenceRequest) (*pb.ModelInferRequest, error) {
	out := &pb.ModelInferRequest{
		ModelName:  model,
		Id:         request.ID,
		Parameters: ParametersToProto(request.Parameters),
	}
	for _, in := range request.Inputs {
		values, err := types.DecodeTensorData(in.Datatype, in.Data, in.Elements())
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", in.Name, err)
		}
		contents, err := contentsFromValues(in.Datatype, values)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", in.Name, err)
		}
		out.Inputs = append(out.Inputs, &pb.ModelInferRequestInferInputTensor{
			Name:       in.Name,
			Datatype:   in.Datatype.String(),
			Shape:      in.Shape,
			Parameters: ParametersToProto(in.Parameters),
			Contents:   contents,
		})
	}
	for _, o := range request.Outputs {
		out.Outputs = append(out.Outputs, &pb.ModelInferRequestInferRequestedOutputTensor{
			Name:       o.Name,
			Parameters: ParametersToProto(o.Parameters),
		})
	}
	return out, nil
}

// ResponseFromProto converts a wire response back to the core form, for
// the gRPC client.
func ResponseFromProto(in *pb.ModelInferResponse) (*types.InferenceResponse, error) {
	resp := &types.InferenceResponse{ID: in.Id, Model: in.ModelName}
	for _, tensor := range in.Outputs {
		dt, err := types.ParseDataType(tensor.Datatype)
		if err != nil {
			return nil, fmt.Errorf("output %s: %w", tensor.Name, err)
		}
		values, err := contentsValues(dt, tensor.Contents)
		if err != nil {
			return nil, fmt.Errorf("output %s: %w", tensor.Name, err)
		}
		data, err := types.EncodeTensorData(dt, values)
		if err != nil {
			return nil, fmt.Errorf("output %s: %w", tensor.Name, err)
		}
		resp.AddOutput(types.InferenceResponseOutput{
			Name:     tensor.Name,
			Shape:    tensor.Shape,
			Datatype: dt,
			Data:     data,
		})
	}
	return resp, nil
}

// ParametersToProto converts a parameter map to its wire form.
func ParametersToProto(params *types.ParameterMap) map[string]*pb.InferParameter {
	if params.Len() == 0 {
		return nil
	}
	out := make(map[string]*pb.InferParameter, params.Len())
	for _, key := range params.Keys() {
		v, _ := params.Get(key)
		p := &pb.InferParameter{}
		switch value := v.(type) {
		case bool:
			p.BoolParam = &value
		case int:
			n := int64(value)
			p.Int64Param = &n
		case float64:
			p.DoubleParam = &value
		case string:
			p.StringParam = &value
		default:
			continue
		}
		out[key] = p
	}
	return out
}

func contentsFromValues(dt types.DataType, values []any) (*pb.InferTensorContents, error) {
	c := &pb.InferTensorContents{}
	for _, v := range values {
		switch dt {
		case types.Bool:
			c.BoolContents = append(c.BoolContents, v.(bool))
		case types.Int8:
			c.IntContents = append(c.IntContents, int32(v.(int8)))
		case types.Int16:
			c.IntContents = append(c.IntContents, int32(v.(int16)))
		case types.Int32:
			c.IntContents = append(c.IntContents, v.(int32))
		case types.Int64:
			c.Int64Contents = append(c.Int64Contents, v.(int64))
		case types.Uint8:
			c.UintContents = append(c.UintContents, uint32(v.(uint8)))
		case types.Uint16:
			c.UintContents = append(c.UintContents, uint32(v.(uint16)))
		case types.Uint32:
			c.UintContents = append(c.UintContents, v.(uint32))
		case types.Uint64:
			c.Uint64Contents = append(c.Uint64Contents, v.(uint64))
		case types.Fp16, types.Fp32:
			c.Fp32Contents = append(c.Fp32Contents, v.(float32))
		case types.Fp64:
			c.Fp64Contents = append(c.Fp64Contents, v.(float64))
		case types.String:
			c.BytesContents = append(c.BytesContents, []byte(v.(string)))
		default:
			return nil, fmt.Errorf("no contents field for datatype %s", dt)
		}
	}
	return c, nil
}
