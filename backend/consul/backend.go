// Package consul serves static content out of the HashiCorp Consul KV store.
//
// Architecture:
// - Each file is one KV entry holding a JSON envelope of snapshot + content
// - Directories are virtual and exist only as key prefixes
// - Prefix is configurable so several stores can share one Consul cluster
//
// Limitations:
// - Consul KV has a 512KB limit per value
// - Best suited for configuration files and small assets
package consul

import (
	"context"
	"path"
	"strings"

	"github.com/hashicorp/consul/api"
	"github.com/mwantia/staticfs"
)

type Backend struct {
	client *api.Client
	kv     *api.KV

	config *Config
}

// Config contains configuration options for the Consul backend.
type Config struct {
	// Address of the Consul server (default: "127.0.0.1:8500")
	Address string

	// Token for Consul ACL authentication (optional)
	Token string

	// Datacenter to use (optional)
	Datacenter string

	// Prefix for all keys in Consul KV (default: "staticfs")
	Prefix string
}

// New creates a Consul-backed static content backend.
func New(config *Config) (*Backend, error) {
	if config == nil {
		config = &Config{}
	}

	if config.Address == "" {
		config.Address = "127.0.0.1:8500"
	}

	if config.Prefix == "" {
		config.Prefix = "staticfs"
	}

	clientConfig := api.DefaultConfig()
	clientConfig.Address = config.Address
	if config.Token != "" {
		clientConfig.Token = config.Token
	}
	if config.Datacenter != "" {
		clientConfig.Datacenter = config.Datacenter
	}

	client, err := api.NewClient(clientConfig)
	if err != nil {
		return nil, err
	}

	return &Backend{
		client: client,
		kv:     client.KV(),
		config: config,
	}, nil
}

// Name returns the identifier name defined for this backend.
func (*Backend) Name() string {
	return "consul"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (cb *Backend) Open(ctx context.Context) error {
	// Nothing to initialize - Consul handles connections
	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (cb *Backend) Close(ctx context.Context) error {
	return nil
}

// Capabilities returns the set of capabilities supported by this backend.
func (cb *Backend) Capabilities() *staticfs.Capabilities {
	return &staticfs.Capabilities{
		Capabilities: []staticfs.Capability{
			staticfs.CapabilityModTime,
			staticfs.CapabilityContentType,
			staticfs.CapabilityPopulate,
			staticfs.CapabilityVirtualDir,
		},
		MaxObjectSize: 512 << 10,
	}
}

// buildKey prefixes a normalized key for Consul KV. Consul keys must not
// start with a slash.
func (cb *Backend) buildKey(key string) string {
	return strings.TrimPrefix(path.Join(cb.config.Prefix, key), "/")
}
