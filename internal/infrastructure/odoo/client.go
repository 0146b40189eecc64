package odoo

import (
	"context"
	"fmt"
	"strings"

	"github.com/kolo/xmlrpc"
	"go.uber.org/zap"

	"github.com/leadbridge/backend/internal/domain/crm"
)

// Endpoint suffixes of Odoo's external XML-RPC API.
const (
	commonEndpoint = "/xmlrpc/2/common"
	objectEndpoint = "/xmlrpc/2/object"
)

// Connection status messages returned to the extension.
const (
	msgConnected  = "Connected successfully"
	msgAuthFailed = "Authentication failed"
)

// Client opens authenticated XML-RPC sessions against an Odoo server.
// Each Connect call builds a fresh session; nothing is shared or pooled.
type Client struct {
	logger *zap.Logger
}

// NewClient creates a new Odoo RPC client adapter
func NewClient(logger *zap.Logger) *Client {
	return &Client{logger: logger.Named("odoo")}
}

// Connect authenticates against the Odoo common endpoint. It never
// returns an error value: rejected credentials yield a zero uid with
// "Authentication failed", transport problems yield a zero uid with
// "Server connection failed: <details>".
func (c *Client) Connect(ctx context.Context, creds crm.Credentials) (crm.Session, int, string) {
	base := strings.TrimRight(creds.ServerURL, "/")

	common, err := xmlrpc.NewClient(base+commonEndpoint, nil)
	if err != nil {
		c.logger.Error("Odoo connection error", zap.Error(err))
		return nil, 0, fmt.Sprintf("Server connection failed: %v", err)
	}
	defer func() { _ = common.Close() }()

	var raw any
	err = common.Call("authenticate", []any{
		creds.Database, creds.Username, creds.APIToken, map[string]any{},
	}, &raw)
	if err != nil {
		c.logger.Error("Odoo connection error", zap.Error(err))
		return nil, 0, fmt.Sprintf("Server connection failed: %v", err)
	}

	// Odoo returns XML-RPC boolean false instead of a uid when the
	// credentials are rejected.
	uid := authenticatedUID(raw)
	if uid == 0 {
		return nil, 0, msgAuthFailed
	}

	objects, err := xmlrpc.NewClient(base+objectEndpoint, nil)
	if err != nil {
		c.logger.Error("Odoo connection error", zap.Error(err))
		return nil, 0, fmt.Sprintf("Server connection failed: %v", err)
	}

	return &session{objects: objects, creds: creds, uid: uid}, uid, msgConnected
}

// authenticatedUID extracts the user id from an authenticate result.
func authenticatedUID(raw any) int {
	switch v := raw.(type) {
	case int64:
		return int(v)
	case int:
		return v
	case int32:
		return int(v)
	case float64:
		return int(v)
	default:
		// bool false, nil, or anything else: not authenticated
		return 0
	}
}

var _ crm.Connector = (*Client)(nil)
