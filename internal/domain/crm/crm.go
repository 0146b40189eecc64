package crm

import "context"

// Odoo remote-object models and methods used by the bridge.
const (
	ModelPartner         = "res.partner"
	ModelPartnerCategory = "res.partner.category"

	MethodSearch = "search"
	MethodCreate = "create"
	MethodWrite  = "write"
)

// Credentials identify one Odoo database connection. They arrive on every
// request from the extension and are never persisted.
type Credentials struct {
	ServerURL string
	Database  string
	Username  string
	APIToken  string
}

// Executor runs remote-object calls against the CRM.
type Executor interface {
	// ExecuteKw invokes Odoo's execute_kw with positional args and keyword
	// args for the given model method. The returned value mirrors the
	// XML-RPC result: []any for search, int64 for create, bool for write.
	ExecuteKw(ctx context.Context, model, method string, args []any, kw map[string]any) (any, error)
}

// Session is an authenticated connection to the CRM. One session per
// incoming request; sessions are not shared or pooled.
type Session interface {
	Executor

	// UID returns the user id assigned by authenticate.
	UID() int

	// Close releases the underlying transport.
	Close() error
}

// Connector opens authenticated sessions against the CRM.
//
// Connect never returns an error value. On success it returns the session,
// a non-zero uid and "Connected successfully". On rejected credentials it
// returns (nil, 0, "Authentication failed"); on transport failure it
// returns (nil, 0, "Server connection failed: <details>"). Callers must
// check the uid before using the session.
type Connector interface {
	Connect(ctx context.Context, creds Credentials) (Session, int, string)
}
