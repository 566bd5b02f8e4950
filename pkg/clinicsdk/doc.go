// Package clinicsdk provides a Go client for the clinicd HTTP API,
// plus the request/response types the service itself serves. Handlers
// and SDK share these types so the wire format has one definition.
package clinicsdk
