package contact

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/leadbridge/backend/internal/domain/crm"
)

// MockSession is a mock implementation of crm.Session
type MockSession struct {
	mock.Mock
	uid int
}

func (m *MockSession) ExecuteKw(ctx context.Context, model, method string, args []any, kw map[string]any) (any, error) {
	ret := m.Called(ctx, model, method, args, kw)
	return ret.Get(0), ret.Error(1)
}

func (m *MockSession) UID() int {
	return m.uid
}

func (m *MockSession) Close() error {
	return m.Called().Error(0)
}

// MockConnector is a mock implementation of crm.Connector
type MockConnector struct {
	mock.Mock
}

func (m *MockConnector) Connect(ctx context.Context, creds crm.Credentials) (crm.Session, int, string) {
	ret := m.Called(ctx, creds)
	var sess crm.Session
	if ret.Get(0) != nil {
		sess = ret.Get(0).(crm.Session)
	}
	return sess, ret.Int(1), ret.String(2)
}

// nopImages is an ImageFetcher that never returns image data
type nopImages struct{}

func (nopImages) FetchBase64(ctx context.Context, url string) string { return "" }

// stubImages returns a fixed base64 string for any non-empty url
type stubImages struct {
	data string
}

func (s stubImages) FetchBase64(ctx context.Context, url string) string {
	if url == "" {
		return ""
	}
	return s.data
}
