package types

import "encoding/json"

// ParameterMap holds request- and load-time parameters: a string key mapped
// to one of bool, int, float64 or string. Keys are unique; insertion order
// is irrelevant.
type ParameterMap struct {
	m map[string]any
}

// NewParameterMap returns an empty parameter map.
func NewParameterMap() *ParameterMap {
	return &ParameterMap{m: make(map[string]any)}
}

// Put stores a value under key, replacing any previous value. Values outside
// the supported variants are ignored.
func (p *ParameterMap) Put(key string, value any) {
	if p.m == nil {
		p.m = make(map[string]any)
	}
	switch v := value.(type) {
	case bool, int, float64, string:
		p.m[key] = v
	case int32:
		p.m[key] = int(v)
	case int64:
		p.m[key] = int(v)
	}
}

// Has reports whether key is present.
func (p *ParameterMap) Has(key string) bool {
	if p == nil {
		return false
	}
	_, ok := p.m[key]
	return ok
}

// GetBool returns the bool stored under key, or false.
func (p *ParameterMap) GetBool(key string) bool {
	if p == nil {
		return false
	}
	v, _ := p.m[key].(bool)
	return v
}

// GetInt returns the int stored under key, or 0.
func (p *ParameterMap) GetInt(key string) int {
	if p == nil {
		return 0
	}
	v, _ := p.m[key].(int)
	return v
}

// GetFloat returns the float64 stored under key, or 0.
func (p *ParameterMap) GetFloat(key string) float64 {
	if p == nil {
		return 0
	}
	v, _ := p.m[key].(float64)
	return v
}

// GetString returns the string stored under key, or "".
func (p *ParameterMap) GetString(key string) string {
	if p == nil {
		return ""
	}
	v, _ := p.m[key].(string)
	return v
}

// Get returns the raw value stored under key.
func (p *ParameterMap) Get(key string) (any, bool) {
	if p == nil {
		return nil, false
	}
	v, ok := p.m[key]
	return v, ok
}

// Merge copies every parameter from other into p, overriding existing
// keys.
func (p *ParameterMap) Merge(other *ParameterMap) {
	if other == nil {
		return
	}
	for k, v := range other.m {
		p.Put(k, v)
	}
}

// Len returns the number of stored parameters.
func (p *ParameterMap) Len() int {
	if p == nil {
		return 0
	}
	return len(p.m)
}

// Keys returns the stored keys in unspecified order.
func (p *ParameterMap) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, 0, len(p.m))
	for k := range p.m {
		keys = append(keys, k)
	}
	return keys
}

// MarshalJSON serializes the map as a flat JSON object.
func (p *ParameterMap) MarshalJSON() ([]byte, error) {
	if p == nil || p.m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p.m)
}

// UnmarshalJSON fills the map from a flat JSON object. JSON numbers become
// int when integral, float64 otherwise.
func (p *ParameterMap) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.m = make(map[string]any, len(raw))
	for k, v := range raw {
		if f, ok := v.(float64); ok && f == float64(int(f)) {
			p.m[k] = int(f)
			continue
		}
		p.Put(k, v)
	}
	return nil
}
