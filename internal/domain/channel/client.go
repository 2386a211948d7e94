// Package channel defines the port for external marketplace clients.
// Concrete adapters live in the infrastructure layer; the collection
// orchestrator depends only on this package.
package channel

import (
	"context"
	"errors"
	"time"

	"github.com/PLZ-test/wms/internal/domain/masterdata"
	"github.com/PLZ-test/wms/internal/domain/order"
)

// Transport errors a channel client may surface. The orchestrator treats any
// of them as that channel's whole contribution failing; other channels in the
// same pass are unaffected.
var (
	ErrChannelNotRegistered   = errors.New("channel: no client registered for channel type")
	ErrChannelAuthFailed      = errors.New("channel: authentication failed")
	ErrChannelRequestFailed   = errors.New("channel: request failed")
	ErrChannelInvalidResponse = errors.New("channel: invalid response")
)

// Credentials carries the authentication material for one marketplace call.
// Extra holds channel-specific fields (vendor IDs and the like) passed through
// opaquely from the stored credential.
type Credentials struct {
	AccessKey string
	SecretKey string
	Extra     map[string]string
}

// CredentialsFrom builds call credentials from a stored channel credential
func CredentialsFrom(c *masterdata.ChannelCredential) Credentials {
	return Credentials{
		AccessKey: c.AccessKey,
		SecretKey: c.SecretKey,
		Extra:     c.ExtraInfoMap(),
	}
}

// Window is the time range a fetch covers
type Window struct {
	Start time.Time
	End   time.Time
}

// Validate checks that the window is well-formed
func (w Window) Validate() error {
	if w.Start.IsZero() || w.End.IsZero() {
		return errors.New("channel: window start and end are required")
	}
	if w.Start.After(w.End) {
		return errors.New("channel: window start must be before end")
	}
	return nil
}

// Client fetches raw orders from one external marketplace. Implementations
// are interchangeable siblings: the orchestrator never depends on a concrete
// marketplace.
type Client interface {
	// Code returns the channel type this client handles
	Code() masterdata.ChannelType

	// FetchOrders returns the raw orders placed within the window. This is
	// the only point in a collection pass expected to block on external I/O;
	// callers must not hold a database transaction across it.
	FetchOrders(ctx context.Context, window Window, creds Credentials) ([]order.RawOrder, error)
}

// Registry provides access to the configured channel clients, keyed by
// channel type
type Registry interface {
	// Get returns the client for the given channel type, or
	// ErrChannelNotRegistered
	Get(code masterdata.ChannelType) (Client, error)

	// List returns all registered clients
	List() []Client
}
