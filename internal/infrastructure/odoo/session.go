package odoo

import (
	"context"
	"errors"

	"github.com/kolo/xmlrpc"

	"github.com/leadbridge/backend/internal/domain/crm"
)

// session is an authenticated connection to one Odoo database.
type session struct {
	objects *xmlrpc.Client
	creds   crm.Credentials
	uid     int
}

// UID returns the user id assigned by authenticate
func (s *session) UID() int {
	return s.uid
}

// Close releases the underlying XML-RPC transport
func (s *session) Close() error {
	return s.objects.Close()
}

// ExecuteKw invokes execute_kw on the object endpoint. Remote faults are
// returned as *crm.FaultError carrying Odoo's fault string; anything else
// is wrapped in *crm.TransportError.
func (s *session) ExecuteKw(ctx context.Context, model, method string, args []any, kw map[string]any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := []any{s.creds.Database, s.uid, s.creds.APIToken, model, method, args}
	if kw != nil {
		params = append(params, kw)
	}

	var result any
	if err := s.objects.Call("execute_kw", params, &result); err != nil {
		return nil, mapRPCError(err)
	}
	return result, nil
}

// mapRPCError converts XML-RPC errors into the domain error taxonomy.
func mapRPCError(err error) error {
	var fault xmlrpc.FaultError
	if errors.As(err, &fault) {
		return &crm.FaultError{Code: fault.Code, Message: fault.String}
	}
	var faultPtr *xmlrpc.FaultError
	if errors.As(err, &faultPtr) {
		return &crm.FaultError{Code: faultPtr.Code, Message: faultPtr.String}
	}
	return &crm.TransportError{Err: err}
}

var _ crm.Session = (*session)(nil)
