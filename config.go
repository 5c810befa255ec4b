package schema

// Config controls field naming and coproduct discrimination during a
// derivation pass. It is an immutable value: build it once with NewConfig
// and pass it to Derive. A zero Config behaves like NewConfig() — identity
// naming, no discriminator.
type Config struct {
	naming        NamingPolicy
	discriminator string
}

// ConfigOption configures a Config.
type ConfigOption func(*Config)

// NewConfig builds a derivation configuration.
func NewConfig(opts ...ConfigOption) Config {
	cfg := Config{naming: Identity}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// WithNaming sets the field-naming policy applied to every encoded field and
// variant label during derivation.
func WithNaming(policy NamingPolicy) ConfigOption {
	return func(c *Config) {
		c.naming = policy
	}
}

// WithDiscriminator sets the discriminator field name attached to derived
// Coproduct schemas.
func WithDiscriminator(field string) ConfigOption {
	return func(c *Config) {
		c.discriminator = field
	}
}

// EncodedName applies the naming policy to a declared name.
func (c Config) EncodedName(name string) string {
	if c.naming == nil {
		return name
	}
	return c.naming(name)
}

// Discriminator returns the configured discriminator field name, or empty.
func (c Config) Discriminator() string { return c.discriminator }
