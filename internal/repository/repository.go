// Package repository maps a model repository directory onto loadable
// worker parameters: one directory per model with a config.pbtxt selecting
// the kernel family, plus a filesystem watcher mirroring directory changes
// into endpoint load/unload.
package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"inferd/pkg/types"
)

// fileNotFoundError reports a missing config file.
type fileNotFoundError struct{ path string }

func (e fileNotFoundError) Error() string {
	return "config file " + e.path + " could not be opened"
}

// IsFileNotFound reports whether err indicates a missing repository file.
func IsFileNotFound(err error) bool {
	_, ok := err.(fileNotFoundError)
	return ok
}

// fileReadError reports an unparsable config file.
type fileReadError struct {
	path string
	err  error
}

func (e fileReadError) Error() string {
	return "config file " + e.path + " could not be parsed: " + e.err.Error()
}

// IsFileReadError reports whether err indicates an unparsable repository
// file.
func IsFileReadError(err error) bool {
	_, ok := err.(fileReadError)
	return ok
}

// invalidPlatformError reports a config naming a platform outside the
// supported set.
type invalidPlatformError struct{ platform string }

func (e invalidPlatformError) Error() string { return "unknown platform: " + e.platform }

// IsInvalidPlatform reports whether err indicates an unsupported platform
// string.
func IsInvalidPlatform(err error) bool {
	_, ok := err.(invalidPlatformError)
	return ok
}

// TensorConfig is one declared tensor in a model config.
type TensorConfig struct {
	Name     string
	Datatype string
	Shape    []int64
}

// ModelConfig is the parsed form of config.pbtxt.
type ModelConfig struct {
	Name       string
	Platform   string
	Inputs     []TensorConfig
	Outputs    []TensorConfig
	Parameters map[string]any
}

const configFile = "config.pbtxt"

// ParseConfig reads and parses a model's config.pbtxt.
func ParseConfig(path string) (*ModelConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fileNotFoundError{path: path}
	}
	msg, err := parsePbtxt(string(raw))
	if err != nil {
		return nil, fileReadError{path: path, err: err}
	}

	cfg := &ModelConfig{
		Name:       msg.str("name"),
		Platform:   msg.str("platform"),
		Parameters: make(map[string]any),
	}
	for _, in := range msg.messages("inputs") {
		cfg.Inputs = append(cfg.Inputs, TensorConfig{
			Name:     in.str("name"),
			Datatype: in.str("datatype"),
			Shape:    in.ints("shape"),
		})
	}
	for _, out := range msg.messages("outputs") {
		cfg.Outputs = append(cfg.Outputs, TensorConfig{
			Name:     out.str("name"),
			Datatype: out.str("datatype"),
			Shape:    out.ints("shape"),
		})
	}
	for _, param := range msg.messages("parameters") {
		key := param.str("key")
		if key == "" {
			continue
		}
		for _, value := range param.messages("value") {
			if v, ok := value.scalar("bool_param"); ok {
				cfg.Parameters[key] = v
			} else if v, ok := value.scalar("int64_param"); ok {
				if n, isInt := v.(int64); isInt {
					cfg.Parameters[key] = int(n)
				}
			} else if v, ok := value.scalar("double_param"); ok {
				cfg.Parameters[key] = v
			} else if v, ok := value.scalar("string_param"); ok {
				cfg.Parameters[key] = v
			}
		}
	}
	return cfg, nil
}

// ParseModel resolves a model directory into the load-time parameters for
// its worker: the platform selects the kernel family and the artifact
// extension, and the config's parameters map is forwarded.
func ParseModel(repository, model string) (*types.ParameterMap, error) {
	modelPath := filepath.Join(repository, model)
	configPath := filepath.Join(modelPath, configFile)

	// some exporters create model/model/config.pbtxt; search one level
	// down before giving up
	if _, err := os.Stat(configPath); err != nil {
		nested := filepath.Join(modelPath, model, configFile)
		if _, nestedErr := os.Stat(nested); nestedErr == nil {
			modelPath = filepath.Join(modelPath, model)
			configPath = nested
		}
	}

	cfg, err := ParseConfig(configPath)
	if err != nil {
		return nil, err
	}

	modelBase := filepath.Join(modelPath, "1", "saved_model")
	params := types.NewParameterMap()

	switch cfg.Platform {
	case "tensorflow_graphdef":
		for _, in := range cfg.Inputs {
			params.Put("input_node", in.Name)
			if len(in.Shape) > 0 {
				params.Put("input_size", int(in.Shape[0]))
				params.Put("image_channels", int(in.Shape[len(in.Shape)-1]))
			}
		}
		for _, out := range cfg.Outputs {
			params.Put("output_node", out.Name)
			if len(out.Shape) > 0 {
				params.Put("output_classes", int(out.Shape[0]))
			}
		}
		params.Put("worker", "tfzendnn")
		params.Put("model", modelBase+".pb")
	case "pytorch_torchscript":
		params.Put("worker", "ptzendnn")
		params.Put("model", modelBase+".pt")
	case "onnx_onnxv1":
		params.Put("worker", "migraphx")
		params.Put("model", modelBase+".onnx")
	case "migraphx_mxr":
		params.Put("worker", "migraphx")
		params.Put("model", modelBase+".mxr")
	case "vitis_xmodel":
		params.Put("worker", "xmodel")
		params.Put("model", modelBase+".xmodel")
	default:
		return nil, invalidPlatformError{platform: cfg.Platform}
	}

	// config parameters override the platform defaults, so a demo worker
	// can be selected explicitly
	for k, v := range cfg.Parameters {
		params.Put(k, v)
	}
	return params, nil
}

// ListModels returns the model directory names present in the repository.
func ListModels(repository string) ([]string, error) {
	entries, err := os.ReadDir(repository)
	if err != nil {
		return nil, fmt.Errorf("read repository: %w", err)
	}
	var models []string
	for _, e := range entries {
		if e.IsDir() {
			models = append(models, e.Name())
		}
	}
	return models, nil
}
