package testing

import (
	"bytes"

	"github.com/tarantool/go-tarantool/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// MockResponse is a response holding the msgpack encoding of a body.
type MockResponse struct {
	header tarantool.Header
	data   []byte
}

// NewMockResponse encodes body as the data of a response.
// The body is what Future.Get returns, usually a []any.
func NewMockResponse(t T, body any) *MockResponse {
	t.Helper()

	data, err := msgpack.Marshal(body)
	if err != nil {
		t.Fatalf("failed to encode response body: %s", err)
	}

	return &MockResponse{header: tarantool.Header{}, data: data} //nolint:exhaustruct
}

// Header returns the response header.
func (r *MockResponse) Header() tarantool.Header {
	return r.header
}

// Decode decodes the body as a list of values.
func (r *MockResponse) Decode() ([]any, error) {
	var result []any

	if err := msgpack.NewDecoder(bytes.NewReader(r.data)).Decode(&result); err != nil {
		return nil, err //nolint:wrapcheck
	}

	return result, nil
}

// DecodeTyped decodes the body into res.
func (r *MockResponse) DecodeTyped(res any) error {
	return msgpack.NewDecoder(bytes.NewReader(r.data)).Decode(res) //nolint:wrapcheck
}
