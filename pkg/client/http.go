package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"inferd/pkg/types"
)

// HTTPClient talks to a remote server over the KServe v2 REST protocol.
type HTTPClient struct {
	base string
	hc   *http.Client
}

// NewHTTPClient returns a client for the server at the given base address,
// e.g. "http://localhost:8998".
func NewHTTPClient(address string) *HTTPClient {
	return &HTTPClient{
		base: strings.TrimRight(address, "/"),
		hc:   &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *HTTPClient) get(path string, out any) (int, error) {
	resp, err := c.hc.Get(c.base + path)
	if err != nil {
		return 0, ErrConnection(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, ErrConnection(err)
	}
	if out != nil && resp.StatusCode == http.StatusOK {
		if err := json.Unmarshal(body, out); err != nil {
			return resp.StatusCode, ErrBadStatus(resp.StatusCode, "malformed response: "+err.Error())
		}
	}
	return resp.StatusCode, nil
}

func (c *HTTPClient) post(path string, in, out any) (int, error) {
	payload := []byte("{}")
	if in != nil {
		var err error
		payload, err = json.Marshal(in)
		if err != nil {
			return 0, err
		}
	}
	resp, err := c.hc.Post(c.base+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return 0, ErrConnection(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, ErrConnection(err)
	}
	if resp.StatusCode != http.StatusOK {
		var errResp types.ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			return resp.StatusCode, ErrBadStatus(resp.StatusCode, errResp.Error)
		}
		return resp.StatusCode, ErrBadStatus(resp.StatusCode, fmt.Sprintf("server returned %d", resp.StatusCode))
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return resp.StatusCode, ErrBadStatus(resp.StatusCode, "malformed response: "+err.Error())
		}
	}
	return resp.StatusCode, nil
}

func (c *HTTPClient) ServerMetadata() (types.ServerMetadata, error) {
	var meta types.ServerMetadata
	code, err := c.get("/v2", &meta)
	if err != nil {
		return meta, err
	}
	if code != http.StatusOK {
		return meta, ErrBadStatus(code, fmt.Sprintf("server returned %d", code))
	}
	return meta, nil
}

func (c *HTTPClient) ServerLive() (bool, error) {
	code, err := c.get("/v2/health/live", nil)
	if err != nil {
		return false, err
	}
	return code == http.StatusOK, nil
}

func (c *HTTPClient) ServerReady() (bool, error) {
	code, err := c.get("/v2/health/ready", nil)
	if err != nil {
		return false, err
	}
	return code == http.StatusOK, nil
}

func (c *HTTPClient) ModelReady(model string) (bool, error) {
	code, err := c.get("/v2/models/"+model+"/ready", nil)
	if err != nil {
		return false, err
	}
	return code == http.StatusOK, nil
}

func (c *HTTPClient) ModelMetadata(model string) (types.ModelMetadata, error) {
	var meta types.ModelMetadata
	code, err := c.get("/v2/models/"+model, &meta)
	if err != nil {
		return meta, err
	}
	if code != http.StatusOK {
		return meta, ErrBadStatus(code, fmt.Sprintf("server returned %d", code))
	}
	return meta, nil
}

func (c *HTTPClient) ModelLoad(model string, parameters *types.ParameterMap) error {
	_, err := c.post("/v2/repository/models/"+model+"/load", types.RESTLoadRequest{Parameters: parameters}, nil)
	return err
}

func (c *HTTPClient) ModelUnload(model string) error {
	_, err := c.post("/v2/repository/models/"+model+"/unload", nil, nil)
	return err
}

func (c *HTTPClient) ModelInfer(model string, request *types.InferenceRequest) (*types.InferenceResponse, error) {
	body, err := restFromRequest(request)
	if err != nil {
		return nil, err
	}
	var restResp types.RESTInferResponse
	if _, err := c.post("/v2/models/"+model+"/infer", body, &restResp); err != nil {
		return nil, err
	}
	return responseFromRest(&restResp)
}

// ModelInferAsync issues the request on its own goroutine; transport and
// server failures resolve the future as error responses.
func (c *HTTPClient) ModelInferAsync(model string, request *types.InferenceRequest) *ResponseFuture {
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

func (c *HTTPClient) ModelList() ([]string, error) {
	var list types.RESTModelList
	code, err := c.get("/v2/models", &list)
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK {
		return nil, ErrBadStatus(code, fmt.Sprintf("server returned %d", code))
	}
	return list.Models, nil
}

func (c *HTTPClient) WorkerLoad(worker string, parameters *types.ParameterMap) (string, error) {
	var resp types.RESTWorkerLoadResponse
	if _, err := c.post("/v2/workers/"+worker+"/load", types.RESTLoadRequest{Parameters: parameters}, &resp); err != nil {
		return "", err
	}
	return resp.Endpoint, nil
}

func (c *HTTPClient) WorkerUnload(worker string) error {
	_, err := c.post("/v2/workers/"+worker+"/unload", nil, nil)
	return err
}

func (c *HTTPClient) HasHardware(name string, num int) (bool, error) {
	var resp types.RESTHardwareResponse
	if _, err := c.post("/v2/hardware", types.RESTHardwareRequest{Name: name, Num: num}, &resp); err != nil {
		return false, err
	}
	return resp.Found, nil
}

// restFromRequest converts a core request to its JSON wire body.
func restFromRequest(request *types.InferenceRequest) (*types.RESTInferRequest, error) {
	body := &types.RESTInferRequest{ID: request.ID, Parameters: request.Parameters}
	for _, in := range request.Inputs {
		values, err := types.DecodeTensorData(in.Datatype, in.Data, in.Elements())
		if err != nil {
			return nil, fmt.Errorf("input %s: %w", in.Name, err)
		}
		body.Inputs = append(body.Inputs, types.RESTRequestInput{
			Name:       in.Name,
			Shape:      in.Shape,
			Datatype:   in.Datatype.String(),
			Parameters: in.Parameters,
			Data:       values,
		})
	}
	for _, out := range request.Outputs {
		body.Outputs = append(body.Outputs, types.RESTRequestOutput{Name: out.Name, Parameters: out.Parameters})
	}
	return body, nil
}

// responseFromRest converts a JSON wire body back to a core response.
func responseFromRest(restResp *types.RESTInferResponse) (*types.InferenceResponse, error) {
	resp := &types.InferenceResponse{ID: restResp.ID, Model: restResp.ModelName}
	for _, out := range restResp.Outputs {
		dt, err := types.ParseDataType(out.Datatype)
		if err != nil {
			return nil, fmt.Errorf("output %s: %w", out.Name, err)
		}
		data, err := types.EncodeTensorData(dt, out.Data)
		if err != nil {
			return nil, fmt.Errorf("output %s: %w", out.Name, err)
		}
		resp.AddOutput(types.InferenceResponseOutput{
			Name:       out.Name,
			Shape:      out.Shape,
			Datatype:   dt,
			Parameters: out.Parameters,
			Data:       data,
		})
	}
	return resp, nil
}
