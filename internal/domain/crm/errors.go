package crm

import "fmt"

// FaultError is a structured remote-side error returned by the CRM,
// distinct from transport failures. Its message carries Odoo's native
// fault string and is surfaced to the caller verbatim.
type FaultError struct {
	Code    int
	Message string
}

// Error implements the error interface
func (e *FaultError) Error() string {
	return e.Message
}

// TransportError indicates the CRM could not be reached or the XML-RPC
// exchange failed below the application protocol.
type TransportError struct {
	Err error
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return fmt.Sprintf("server connection failed: %v", e.Err)
}

// Unwrap returns the underlying transport error
func (e *TransportError) Unwrap() error {
	return e.Err
}

// AuthError indicates the CRM rejected the supplied credentials. Message
// is the connector's status message, suitable for a 401 response body.
type AuthError struct {
	Message string
}

// Error implements the error interface
func (e *AuthError) Error() string {
	return e.Message
}
