package modkit

// Option adjusts how a module is built
type Option func(*Built)

// WithName sets the module name used in logs and the registry
func WithName(name string) Option {
	return func(b *Built) { b.Name = name }
}

// WithPrefix mounts a module under a path prefix; empty mounts it in place
func WithPrefix(prefix string) Option {
	return func(b *Built) { b.Prefix = prefix }
}

// WithPorts injects ports owned by another module; the concrete type belongs to the consumer
func WithPorts[T any](p T) Option {
	return func(b *Built) { b.Ports = p }
}
