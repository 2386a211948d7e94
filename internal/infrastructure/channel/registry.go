// Package channelclient provides the channel client registry and the
// marketplace adapters. The bundled adapters are simulators that stand in for
// the real marketplace APIs; they honor the same port, so swapping in a real
// adapter is a registry change.
package channelclient

import (
	"sort"

	"github.com/PLZ-test/wms/internal/domain/channel"
	"github.com/PLZ-test/wms/internal/domain/masterdata"
)

// Registry is an in-memory channel.Registry keyed by channel type
type Registry struct {
	clients map[masterdata.ChannelType]channel.Client
}

// NewRegistry builds a registry from the given clients. A later client with
// the same channel type replaces an earlier one.
func NewRegistry(clients ...channel.Client) *Registry {
	r := &Registry{clients: make(map[masterdata.ChannelType]channel.Client, len(clients))}
	for _, c := range clients {
		r.clients[c.Code()] = c
	}
	return r
}

// Get returns the client for the given channel type
func (r *Registry) Get(code masterdata.ChannelType) (channel.Client, error) {
	c, ok := r.clients[code]
	if !ok {
		return nil, channel.ErrChannelNotRegistered
	}
	return c, nil
}

// List returns all registered clients ordered by channel type
func (r *Registry) List() []channel.Client {
	out := make([]channel.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code() < out[j].Code() })
	return out
}

// DefaultRegistry returns a registry with simulators for the marketplaces
// collection currently supports
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewCoupangClient(),
		NewNaverClient(),
		NewElevenSTClient(),
		NewGmarketClient(),
	)
}
