package protocol

import (
	"fmt"
	"time"

	"github.com/hashicorp/hcl/v2/hclsimple"
)

// OfflineMode selects how a queueing transport behaves while disconnected.
type OfflineMode string

const (
	// OfflineModeManual leaves queue control to the caller.
	OfflineModeManual OfflineMode = "manual"

	// OfflineModeAuto lets the transport queue and replay on its own.
	OfflineModeAuto OfflineMode = "auto"
)

// Options configures a transport. Host, Port and SSL drive the HTTP
// binding; the queue and reconnection tuning only applies to transports
// that maintain a persistent connection.
type Options struct {
	Host string
	Port int
	SSL  bool

	AutoQueue       bool
	AutoReconnect   bool
	AutoReplay      bool
	AutoResubscribe bool
	OfflineMode     OfflineMode

	QueueMaxSize      int
	QueueTTL          time.Duration
	ReconnectionDelay time.Duration
	ReplayInterval    time.Duration
}

// DefaultOptions returns the stock tuning, pointed at localhost:7512.
func DefaultOptions() *Options {
	return &Options{
		Host:              "localhost",
		Port:              7512,
		SSL:               false,
		AutoQueue:         false,
		AutoReconnect:     true,
		AutoReplay:        false,
		AutoResubscribe:   true,
		OfflineMode:       OfflineModeManual,
		QueueMaxSize:      500,
		QueueTTL:          120 * time.Second,
		ReconnectionDelay: time.Second,
		ReplayInterval:    10 * time.Millisecond,
	}
}

// NewOptions returns default options pointed at the given host and port.
func NewOptions(host string, port int) *Options {
	o := DefaultOptions()
	o.Host = host
	o.Port = port
	return o
}

// optionsFile is the HCL schema for on-disk SDK configuration. Durations
// are expressed in milliseconds.
type optionsFile struct {
	Host *string `hcl:"host,optional"`
	Port *int    `hcl:"port,optional"`
	SSL  *bool   `hcl:"ssl,optional"`

	AutoQueue       *bool   `hcl:"auto_queue,optional"`
	AutoReconnect   *bool   `hcl:"auto_reconnect,optional"`
	AutoReplay      *bool   `hcl:"auto_replay,optional"`
	AutoResubscribe *bool   `hcl:"auto_resubscribe,optional"`
	OfflineMode     *string `hcl:"offline_mode,optional"`

	QueueMaxSize        *int   `hcl:"queue_max_size,optional"`
	QueueTTLMs          *int64 `hcl:"queue_ttl_ms,optional"`
	ReconnectionDelayMs *int64 `hcl:"reconnection_delay_ms,optional"`
	ReplayIntervalMs    *int64 `hcl:"replay_interval_ms,optional"`
}

// OptionsFromFile loads options from an HCL file. Missing attributes keep
// their defaults; a file that cannot be parsed is an error.
func OptionsFromFile(path string) (*Options, error) {
	var file optionsFile
	if err := hclsimple.DecodeFile(path, nil, &file); err != nil {
		return nil, fmt.Errorf("failed to load options from %s: %w", path, err)
	}

	o := DefaultOptions()
	if file.Host != nil {
		o.Host = *file.Host
	}
	if file.Port != nil {
		o.Port = *file.Port
	}
	if file.SSL != nil {
		o.SSL = *file.SSL
	}
	if file.AutoQueue != nil {
		o.AutoQueue = *file.AutoQueue
	}
	if file.AutoReconnect != nil {
		o.AutoReconnect = *file.AutoReconnect
	}
	if file.AutoReplay != nil {
		o.AutoReplay = *file.AutoReplay
	}
	if file.AutoResubscribe != nil {
		o.AutoResubscribe = *file.AutoResubscribe
	}
	if file.OfflineMode != nil {
		switch OfflineMode(*file.OfflineMode) {
		case OfflineModeManual, OfflineModeAuto:
			o.OfflineMode = OfflineMode(*file.OfflineMode)
		default:
			return nil, fmt.Errorf("invalid offline_mode %q", *file.OfflineMode)
		}
	}
	if file.QueueMaxSize != nil {
		o.QueueMaxSize = *file.QueueMaxSize
	}
	if file.QueueTTLMs != nil {
		o.QueueTTL = time.Duration(*file.QueueTTLMs) * time.Millisecond
	}
	if file.ReconnectionDelayMs != nil {
		o.ReconnectionDelay = time.Duration(*file.ReconnectionDelayMs) * time.Millisecond
	}
	if file.ReplayIntervalMs != nil {
		o.ReplayInterval = time.Duration(*file.ReplayIntervalMs) * time.Millisecond
	}

	return o, nil
}

// QueryOptions carries per-call options passed alongside a Request.
type QueryOptions struct {
	// Queuable marks the call as eligible for offline queuing on
	// transports that support it.
	Queuable bool

	// Token is the session credential attached to the call. The client
	// facade fills it from its stored JWT when the caller leaves it empty.
	Token string
}

// NewQueryOptions returns the default per-call options.
func NewQueryOptions() QueryOptions {
	return QueryOptions{Queuable: true}
}
