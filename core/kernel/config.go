package kernel

// Config holds kernel configuration with environment variable support.
type Config struct {
	StrictContentNegotiation bool `env:"KERNEL_STRICT_CONTENT_NEGOTIATION" envDefault:"false"`
}

// NewFromConfig creates a kernel from configuration. Options override config values.
func NewFromConfig(cfg Config, opts ...Option) *Kernel {
	all := make([]Option, 0, len(opts)+1)
	all = append(all, WithStrictContentNegotiation(cfg.StrictContentNegotiation))
	return New(append(all, opts...)...)
}
