package odoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kolo/xmlrpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leadbridge/backend/internal/domain/crm"
)

// fakeOdoo serves canned XML-RPC responses for the common and object
// endpoints so the adapter can be exercised end to end over HTTP.
type fakeOdoo struct {
	authResponse   string
	objectResponse string
}

func (f *fakeOdoo) handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		switch r.URL.Path {
		case commonEndpoint:
			fmt.Fprint(w, f.authResponse)
		case objectEndpoint:
			fmt.Fprint(w, f.objectResponse)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func intResponse(v int) string {
	return fmt.Sprintf(`<?xml version="1.0"?><methodResponse><params><param><value><int>%d</int></value></param></params></methodResponse>`, v)
}

func boolResponse(v int) string {
	return fmt.Sprintf(`<?xml version="1.0"?><methodResponse><params><param><value><boolean>%d</boolean></value></param></params></methodResponse>`, v)
}

func faultResponse(code int, msg string) string {
	return fmt.Sprintf(`<?xml version="1.0"?><methodResponse><fault><value><struct>`+
		`<member><name>faultCode</name><value><int>%d</int></value></member>`+
		`<member><name>faultString</name><value><string>%s</string></value></member>`+
		`</struct></value></fault></methodResponse>`, code, msg)
}

func testCredentials(serverURL string) crm.Credentials {
	return crm.Credentials{
		ServerURL: serverURL,
		Database:  "prod",
		Username:  "bot@example.com",
		APIToken:  "secret",
	}
}

func TestConnect_Success(t *testing.T) {
	fake := &fakeOdoo{authResponse: intResponse(7)}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := NewClient(zap.NewNop())
	sess, uid, msg := client.Connect(context.Background(), testCredentials(srv.URL))

	require.NotNil(t, sess)
	assert.Equal(t, 7, uid)
	assert.Equal(t, "Connected successfully", msg)
	assert.Equal(t, 7, sess.UID())
	assert.NoError(t, sess.Close())
}

func TestConnect_TrailingSlashNormalized(t *testing.T) {
	fake := &fakeOdoo{authResponse: intResponse(3)}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := NewClient(zap.NewNop())
	sess, uid, msg := client.Connect(context.Background(), testCredentials(srv.URL+"/"))

	require.NotNil(t, sess)
	assert.Equal(t, 3, uid)
	assert.Equal(t, "Connected successfully", msg)
	assert.NoError(t, sess.Close())
}

func TestConnect_AuthenticationRejected(t *testing.T) {
	fake := &fakeOdoo{authResponse: boolResponse(0)}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := NewClient(zap.NewNop())
	sess, uid, msg := client.Connect(context.Background(), testCredentials(srv.URL))

	assert.Nil(t, sess)
	assert.Zero(t, uid)
	assert.Equal(t, "Authentication failed", msg)
}

func TestConnect_ServerUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := NewClient(zap.NewNop())
	sess, uid, msg := client.Connect(context.Background(), testCredentials(url))

	assert.Nil(t, sess)
	assert.Zero(t, uid)
	assert.Contains(t, msg, "Server connection failed: ")
}

func TestConnect_FaultDuringAuthenticate(t *testing.T) {
	fake := &fakeOdoo{authResponse: faultResponse(1, "database does not exist")}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := NewClient(zap.NewNop())
	sess, uid, msg := client.Connect(context.Background(), testCredentials(srv.URL))

	assert.Nil(t, sess)
	assert.Zero(t, uid)
	assert.Contains(t, msg, "Server connection failed: ")
}

func TestExecuteKw_Result(t *testing.T) {
	fake := &fakeOdoo{
		authResponse:   intResponse(2),
		objectResponse: intResponse(41),
	}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := NewClient(zap.NewNop())
	sess, _, _ := client.Connect(context.Background(), testCredentials(srv.URL))
	require.NotNil(t, sess)
	defer sess.Close()

	result, err := sess.ExecuteKw(context.Background(), crm.ModelPartner, crm.MethodCreate,
		[]any{map[string]any{"name": "Acme"}}, nil)
	require.NoError(t, err)

	id, err := crm.RecordID(result)
	require.NoError(t, err)
	assert.Equal(t, int64(41), id)
}

func TestExecuteKw_FaultMapped(t *testing.T) {
	fake := &fakeOdoo{
		authResponse:   intResponse(2),
		objectResponse: faultResponse(2, "Access Denied"),
	}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := NewClient(zap.NewNop())
	sess, _, _ := client.Connect(context.Background(), testCredentials(srv.URL))
	require.NotNil(t, sess)
	defer sess.Close()

	_, err := sess.ExecuteKw(context.Background(), crm.ModelPartner, crm.MethodSearch,
		[]any{[]any{}}, map[string]any{"limit": 1})
	require.Error(t, err)

	var fault *crm.FaultError
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, 2, fault.Code)
	assert.Equal(t, "Access Denied", fault.Message)
}

func TestExecuteKw_TransportErrorMapped(t *testing.T) {
	fake := &fakeOdoo{authResponse: intResponse(2)}
	srv := httptest.NewServer(fake.handler())

	client := NewClient(zap.NewNop())
	sess, _, _ := client.Connect(context.Background(), testCredentials(srv.URL))
	require.NotNil(t, sess)
	srv.Close()

	_, err := sess.ExecuteKw(context.Background(), crm.ModelPartner, crm.MethodSearch,
		[]any{[]any{}}, nil)
	require.Error(t, err)

	var transport *crm.TransportError
	assert.ErrorAs(t, err, &transport)
}

func TestExecuteKw_ContextCancelled(t *testing.T) {
	fake := &fakeOdoo{authResponse: intResponse(2)}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	client := NewClient(zap.NewNop())
	sess, _, _ := client.Connect(context.Background(), testCredentials(srv.URL))
	require.NotNil(t, sess)
	defer sess.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := sess.ExecuteKw(ctx, crm.ModelPartner, crm.MethodSearch, []any{[]any{}}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAuthenticatedUID(t *testing.T) {
	assert.Equal(t, 5, authenticatedUID(int64(5)))
	assert.Equal(t, 5, authenticatedUID(5))
	assert.Equal(t, 5, authenticatedUID(int32(5)))
	assert.Equal(t, 5, authenticatedUID(float64(5)))
	assert.Zero(t, authenticatedUID(false))
	assert.Zero(t, authenticatedUID(nil))
	assert.Zero(t, authenticatedUID("5"))
}

func TestMapRPCError(t *testing.T) {
	fault := xmlrpc.FaultError{Code: 9, String: "boom"}
	mapped := mapRPCError(fault)
	var fe *crm.FaultError
	require.ErrorAs(t, mapped, &fe)
	assert.Equal(t, 9, fe.Code)
	assert.Equal(t, "boom", fe.Message)

	plain := errors.New("connection reset")
	mapped = mapRPCError(plain)
	var te *crm.TransportError
	require.ErrorAs(t, mapped, &te)
	assert.ErrorIs(t, mapped, plain)
}
