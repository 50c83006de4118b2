package types

import (
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of a single gateway lookup.
type Status string

const (
	StatusFound     Status = "found"
	StatusNotFound  Status = "not_found"
	StatusReadError Status = "read_error"
)

// Result is what a lookup produced. GatewayID is only meaningful when
// Status is StatusFound, Err only when Status is StatusReadError.
type Result struct {
	Status    Status
	GatewayID string
	Err       error
}

// Found builds a successful Result.
func Found(gatewayID string) Result {
	return Result{Status: StatusFound, GatewayID: gatewayID}
}

// NotFound builds an empty Result.
func NotFound() Result {
	return Result{Status: StatusNotFound}
}

// ReadError builds a Result carrying the failure that stopped the scan.
func ReadError(err error) Result {
	return Result{Status: StatusReadError, Err: err}
}

// Gateway returns the gateway identifier and whether one was found.
// Read errors and misses both report false.
func (r Result) Gateway() (string, bool) {
	if r.Status != StatusFound {
		return "", false
	}
	return r.GatewayID, true
}

// LookupEntry records one lookup served over HTTP.
type LookupEntry struct {
	ID          uuid.UUID `json:"id"`
	PhoneNumber string    `json:"phone_number"`
	GatewayID   string    `json:"gateway_id,omitempty"`
	Status      Status    `json:"status"`
	Error       string    `json:"error,omitempty"`
	RequestID   string    `json:"request_id,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
