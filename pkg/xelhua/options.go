package xelhua

import (
	"github.com/rs/zerolog"
)

const defaultStyleCacheSize = 256

type config struct {
	logger         zerolog.Logger
	charset        string
	styleCacheSize int
}

func newConfig(opts []Option) config {
	cfg := config{
		logger:         zerolog.Nop(),
		charset:        "utf-8",
		styleCacheSize: defaultStyleCacheSize,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures a Document at creation or load time.
type Option func(*config)

// WithLogger routes the document's debug events to l.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithCharset names the text encoding of legacy documents. It has no effect
// on modern documents, which are always UTF-8. The name is validated at open.
func WithCharset(name string) Option {
	return func(c *config) {
		c.charset = name
	}
}

// WithStyleCacheSize bounds the number of remembered style-to-engine
// mappings. Values below 1 are raised to 1.
func WithStyleCacheSize(n int) Option {
	return func(c *config) {
		c.styleCacheSize = n
	}
}
