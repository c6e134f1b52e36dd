package cache

import "strings"

// Keyer derives cache keys.
type Keyer interface {
	// FrameKey keys a rendered frame.
	FrameKey(datasetHash string, opts FrameKeyOpts) string
	// ExportKey keys a node-link export.
	ExportKey(datasetHash string, opts ExportKeyOpts) string
}

// FrameKeyOpts lists everything besides the dataset that shapes a frame.
type FrameKeyOpts struct {
	Format     string  `json:"format"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Brush      bool    `json:"brush"`
	Tooltips   bool    `json:"tooltips"`
	Zoom       bool    `json:"zoom"`
	Tolerance  float64 `json:"tolerance"`
	Styles     string  `json:"styles"`
	ScriptHash string  `json:"script_hash,omitempty"`
}

// ExportKeyOpts lists everything besides the dataset that shapes an export.
type ExportKeyOpts struct {
	Format string `json:"format"`
	Styles string `json:"styles"`
}

// DefaultKeyer hashes the options into the key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) FrameKey(datasetHash string, opts FrameKeyOpts) string {
	return hashKey("frame", datasetHash, opts)
}

func (DefaultKeyer) ExportKey(datasetHash string, opts ExportKeyOpts) string {
	return hashKey("export", datasetHash, opts)
}

// ScopedKeyer prefixes every key of an inner keyer, separating namespaces
// such as releases whose output differs for the same input.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer uses
// [DefaultKeyer].
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) FrameKey(datasetHash string, opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(datasetHash, opts)
}

func (k *ScopedKeyer) ExportKey(datasetHash string, opts ExportKeyOpts) string {
	return k.prefix + k.inner.ExportKey(datasetHash, opts)
}

// KeyType returns the kind prefix of a key ("frame", "export"), ignoring
// any scope prefix. It labels cache hook events.
func KeyType(key string) string {
	for _, kind := range []string{"frame", "export"} {
		if strings.Contains(key, kind+":") {
			return kind
		}
	}
	return "other"
}
