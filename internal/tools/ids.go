// In file: internal/tools/ids.go
package tools

import (
	"context"
	"fmt"
	"math/rand"
)

// IntRange returns an integer in [lo, hi].
type IntRange func(lo, hi int) int

func randomInRange(lo, hi int) int {
	return lo + rand.Intn(hi-lo+1)
}

type domainOptions struct {
	intRange IntRange
}

// DomainOption customizes a domain registry.
type DomainOption func(*domainOptions)

// WithIntRange replaces the random source behind order and transaction ids.
func WithIntRange(f IntRange) DomainOption {
	return func(o *domainOptions) {
		if f != nil {
			o.intRange = f
		}
	}
}

func buildOptions(opts []DomainOption) domainOptions {
	o := domainOptions{intRange: randomInRange}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// newID formats a prefixed random id. Uniqueness is probabilistic only.
func (o domainOptions) newID(prefix string, lo, hi int) string {
	return fmt.Sprintf("%s-%d", prefix, o.intRange(lo, hi))
}

// notImplemented is the handler every tool gets when its domain runs in real mode.
func notImplemented(provider string) Handler {
	return func(_ context.Context, _ Args) (any, error) {
		return nil, Errorf(NotImplemented, "Real %s API not yet implemented", provider)
	}
}
