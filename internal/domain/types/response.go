package types

// Payload is a parsed JSON response body, returned as-is by the transport.
type Payload map[string]any

// Response is the typed view of the backend's common envelope
// {success, message, data}.
type Response struct {
	Success bool
	Message string
	Data    any
}

// Response extracts the common envelope. Missing or mistyped fields read as
// their zero values; classification is left to the caller.
func (p Payload) Response() Response {
	var r Response
	if v, ok := p["success"].(bool); ok {
		r.Success = v
	}
	if v, ok := p["message"].(string); ok {
		r.Message = v
	}
	r.Data = p["data"]
	return r
}

// DataString returns data[key] when data is an object and the value is a
// non-empty string.
func (r Response) DataString(key string) (string, bool) {
	m, ok := r.Data.(map[string]any)
	if !ok {
		return "", false
	}
	s, ok := m[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// MediaReference is the server-assigned reference for an uploaded file. It
// wraps the raw data value of the upload response.
type MediaReference struct {
	Raw any
}

// IsZero reports whether the upload produced no usable reference: a missing
// data field or a JSON falsy value (null, "", false, 0).
func (m MediaReference) IsZero() bool {
	switch v := m.Raw.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case float64:
		return v == 0
	case interface{ Float64() (float64, error) }:
		f, err := v.Float64()
		return err == nil && f == 0
	default:
		return false
	}
}

// FileURL reads the fileUrl field of the reference. It returns "" when the
// reference is not an object or carries no fileUrl.
func (m MediaReference) FileURL() string {
	obj, ok := m.Raw.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := obj["fileUrl"].(string)
	return s
}
