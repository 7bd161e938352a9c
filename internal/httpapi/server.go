package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inferd/pkg/types"
)

// Service defines the slice of the dispatch façade the HTTP layer needs.
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

// NewMux builds the KServe v2 REST surface over the given service.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
		}))
	}
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/v2", func(r chi.Router) {
		r.Get("/", handleServerMetadata(svc))
		r.Get("/health/live", handleServerLive(svc))
		r.Get("/health/ready", handleServerReady(svc))
		r.Get("/models", handleModelList(svc))
		r.Route("/models/{model}", func(r chi.Router) {
			r.Get("/", handleModelMetadata(svc))
			r.Get("/ready", handleModelReady(svc))
			r.Post("/infer", handleModelInfer(svc))
		})
		r.Post("/repository/models/{model}/load", handleModelLoad(svc))
		r.Post("/repository/models/{model}/unload", handleModelUnload(svc))
		r.Post("/workers/{worker}/load", handleWorkerLoad(svc))
		r.Post("/workers/{worker}/unload", handleWorkerUnload(svc))
		r.Post("/hardware", handleHasHardware(svc))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	MountSwagger(r)
	return r
}

// handleServerMetadata godoc
// @Summary Server metadata
// @Produce json
// @Success 200 {object} types.ServerMetadata
// @Router /v2 [get]
func handleServerMetadata(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.ServerMetadata())
	}
}

func handleServerLive(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !svc.ServerLive() {
			writeJSONError(w, http.StatusServiceUnavailable, "server is not live")
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func handleServerReady(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !svc.ServerReady() {
			writeJSONError(w, http.StatusServiceUnavailable, "server is not ready")
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func handleModelList(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, types.RESTModelList{Models: svc.ModelList()})
	}
}

func handleModelMetadata(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		meta, err := svc.ModelMetadata(chi.URLParam(r, "model"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, meta)
	}
}

func handleModelReady(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !svc.ModelReady(chi.URLParam(r, "model")) {
			writeJSONError(w, http.StatusBadRequest, "model is not ready")
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// handleModelInfer godoc
// @Summary Run inference against a model
// @Accept json
// @Produce json
// @Param model path string true "Model name"
// @Param request body types.RESTInferRequest true "Inference request"
// @Success 200 {object} types.RESTInferResponse
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /v2/models/{model}/infer [post]
func handleModelInfer(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ct := r.Header.Get("Content-Type")
		if ct != "" && !strings.HasPrefix(strings.ToLower(ct), "application/json") {
			writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var body types.RESTInferRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		req, err := body.ToInferenceRequest()
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err.Error())
			return
		}
		resp, err := svc.ModelInferSync(r.Context(), chi.URLParam(r, "model"), req)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if resp.Error != "" {
			writeJSONError(w, http.StatusBadRequest, resp.Error)
			return
		}
		rest, err := types.FromInferenceResponse(resp)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, rest)
	}
}

func decodeLoadParams(r *http.Request) *types.ParameterMap {
	if r.Body == nil {
		return nil
	}
	var body types.RESTLoadRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return nil
	}
	return body.Parameters
}

func handleModelLoad(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.ModelLoad(chi.URLParam(r, "model"), decodeLoadParams(r)); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func handleModelUnload(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.ModelUnload(chi.URLParam(r, "model")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func handleWorkerLoad(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		endpoint, err := svc.WorkerLoad(chi.URLParam(r, "worker"), decodeLoadParams(r))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, types.RESTWorkerLoadResponse{Endpoint: endpoint})
	}
}

func handleWorkerUnload(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.WorkerUnload(chi.URLParam(r, "worker")); err != nil {
			writeServiceError(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

func handleHasHardware(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body types.RESTHardwareRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		writeJSON(w, http.StatusOK, types.RESTHardwareResponse{Found: svc.HasHardware(body.Name, body.Num)})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zlogError(err, "failed to encode response")
	}
}
