package testing

import (
	"context"
	"io"

	"github.com/tarantool/go-iproto"
	"github.com/tarantool/go-tarantool/v2"
	"github.com/vmihailenco/msgpack/v5"
)

// MockRequest is the request futures of MockDoer are created with.
// It decodes responses into MockResponse.
type MockRequest struct{}

// NewMockRequest creates a new mock request.
func NewMockRequest() *MockRequest {
	return &MockRequest{}
}

// Type returns the request type.
func (r *MockRequest) Type() iproto.Type {
	return iproto.Type(0)
}

// Async reports that the request expects a response.
func (r *MockRequest) Async() bool {
	return false
}

// Body writes nothing.
func (r *MockRequest) Body(_ tarantool.SchemaResolver, _ *msgpack.Encoder) error {
	return nil
}

// Ctx returns the background context.
func (r *MockRequest) Ctx() context.Context {
	return context.Background()
}

// Response reads the whole body into a MockResponse.
func (r *MockRequest) Response(header tarantool.Header, body io.Reader) (tarantool.Response, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return &MockResponse{header: header, data: data}, nil
}
