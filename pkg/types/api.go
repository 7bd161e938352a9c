package types

import "fmt"

// RESTRequestInput is one input tensor in a KServe v2 JSON infer body.
type RESTRequestInput struct {
	// Tensor name.
	// example: input0
	Name string `json:"name"`
	// Tensor shape.
	// example: [1]
	Shape []int64 `json:"shape"`
	// Datatype name.
	// example: UINT32
	Datatype string `json:"datatype"`
	// Optional per-tensor parameters.
	Parameters *ParameterMap `json:"parameters,omitempty"`
	// Flat tensor data in row-major order.
	// example: [7]
	Data []any `json:"data"`
}

// RESTRequestOutput names a requested output tensor in a JSON infer body.
type RESTRequestOutput struct {
	Name       string        `json:"name"`
	Parameters *ParameterMap `json:"parameters,omitempty"`
}

// RESTInferRequest is the body of POST /v2/models/{m}/infer.
type RESTInferRequest struct {
	// Optional request identifier, echoed in the response.
	// example: req-0
	ID         string              `json:"id,omitempty"`
	Parameters *ParameterMap       `json:"parameters,omitempty"`
	Inputs     []RESTRequestInput  `json:"inputs"`
	Outputs    []RESTRequestOutput `json:"outputs,omitempty"`
}

// RESTResponseOutput is one output tensor in a JSON infer response.
type RESTResponseOutput struct {
	Name       string        `json:"name"`
	Shape      []int64       `json:"shape"`
	Datatype   string        `json:"datatype"`
	Parameters *ParameterMap `json:"parameters,omitempty"`
	Data       []any         `json:"data"`
}

// RESTInferResponse is the body returned from POST /v2/models/{m}/infer.
type RESTInferResponse struct {
	ModelName    string               `json:"model_name"`
	ModelVersion string               `json:"model_version,omitempty"`
	ID           string               `json:"id,omitempty"`
	Parameters   *ParameterMap        `json:"parameters,omitempty"`
	Outputs      []RESTResponseOutput `json:"outputs"`
}

// RESTModelList is the body returned from GET /v2/models.
type RESTModelList struct {
	Models []string `json:"models"`
}

// RESTReady is the body returned from the readiness endpoints.
type RESTReady struct {
	Ready bool `json:"ready"`
}

// RESTLoadRequest is the optional body of the repository load endpoints:
// load-time parameters forwarded to the worker.
type RESTLoadRequest struct {
	Parameters *ParameterMap `json:"parameters,omitempty"`
}

// RESTWorkerLoadResponse is returned from POST /v2/workers/{w}/load.
type RESTWorkerLoadResponse struct {
	// Endpoint name the worker was registered under.
	// example: echo
	Endpoint string `json:"endpoint"`
}

// RESTHardwareRequest is the body of POST /v2/hardware.
type RESTHardwareRequest struct {
	// Hardware device name.
	// example: cpu
	Name string `json:"name"`
	// Minimum number of devices that should exist.
	// example: 1
	Num int `json:"num"`
}

// RESTHardwareResponse is returned from POST /v2/hardware.
type RESTHardwareResponse struct {
	Found bool `json:"found"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: model not found: does_not_exist
	Error string `json:"error"`
	// HTTP status code.
	// example: 404
	Code int `json:"code"`
}

// ToInferenceRequest converts a JSON infer body to the core request unit,
// packing each input's data per its datatype.
func (r *RESTInferRequest) ToInferenceRequest() (*InferenceRequest, error) {
	req := &InferenceRequest{ID: r.ID, Parameters: r.Parameters}
	for _, in := range r.Inputs {
		dt, err := ParseDataType(in.Datatype)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", in.Name, err)
		}
		data, err := EncodeTensorData(dt, in.Data)
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", in.Name, err)
		}
		req.Inputs = append(req.Inputs, InferenceRequestInput{
			Name:       in.Name,
			Shape:      in.Shape,
			Datatype:   dt,
			Parameters: in.Parameters,
			Data:       data,
		})
	}
	for _, out := range r.Outputs {
		req.Outputs = append(req.Outputs, InferenceRequestOutput{Name: out.Name, Parameters: out.Parameters})
	}
	return req, nil
}

// FromInferenceResponse converts a core response to its JSON body,
// unpacking each output's bytes per its datatype.
func FromInferenceResponse(resp *InferenceResponse) (*RESTInferResponse, error) {
	rest := &RESTInferResponse{ModelName: resp.Model, ID: resp.ID}
	for _, out := range resp.Outputs {
		t := Tensor{Shape: out.Shape, Datatype: out.Datatype}
		data, err := DecodeTensorData(out.Datatype, out.Data, t.Elements())
		if err != nil {
			return nil, fmt.Errorf("output %s: %w", out.Name, err)
		}
		rest.Outputs = append(rest.Outputs, RESTResponseOutput{
			Name:       out.Name,
			Shape:      out.Shape,
			Datatype:   out.Datatype.String(),
			Parameters: out.Parameters,
			Data:       data,
		})
	}
	return rest, nil
}
