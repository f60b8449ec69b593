// In file: internal/tools/executor.go
package tools

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/dileep-u-k/assistant-gateway/internal/logger"
	"github.com/dileep-u-k/assistant-gateway/internal/metrics"
)

// Invoker dispatches tool calls to the registry of the named domain. Every path
// through Invoke returns a Result; handler errors and panics never escape it.
type Invoker struct {
	registries map[string]*Registry
	aliases    map[string]string
	logger     *zap.Logger
}

// NewInvoker builds an invoker over the given registries. Domain names must be unique.
func NewInvoker(log *zap.Logger, registries ...*Registry) (*Invoker, error) {
	inv := &Invoker{
		registries: make(map[string]*Registry, len(registries)),
		aliases:    make(map[string]string),
		logger:     logger.OrNop(log),
	}
	for _, r := range registries {
		if _, dup := inv.registries[r.Domain()]; dup {
			return nil, fmt.Errorf("domain %q registered twice", r.Domain())
		}
		inv.registries[r.Domain()] = r
	}
	return inv, nil
}

// Alias makes name resolve to an existing domain.
func (inv *Invoker) Alias(name, domain string) error {
	if _, ok := inv.registries[domain]; !ok {
		return fmt.Errorf("alias %q points at unknown domain %q", name, domain)
	}
	if _, clash := inv.registries[name]; clash {
		return fmt.Errorf("alias %q shadows a domain", name)
	}
	inv.aliases[name] = domain
	return nil
}

func (inv *Invoker) resolve(domain string) (*Registry, bool) {
	if target, ok := inv.aliases[domain]; ok {
		domain = target
	}
	r, ok := inv.registries[domain]
	return r, ok
}

// Domains returns the canonical domain names, sorted.
func (inv *Invoker) Domains() []string {
	names := make([]string, 0, len(inv.registries))
	for name := range inv.registries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Catalog returns every domain's descriptors, keyed by canonical domain name.
func (inv *Invoker) Catalog() map[string][]ToolDescriptor {
	out := make(map[string][]ToolDescriptor, len(inv.registries))
	for name, r := range inv.registries {
		out[name] = r.Descriptors()
	}
	return out
}

// Invoke runs tool in domain with args.
func (inv *Invoker) Invoke(ctx context.Context, domain, tool string, args Args) Result {
	reg, ok := inv.resolve(domain)
	if !ok {
		metrics.ToolInvocationsTotal.WithLabelValues("unknown", tool, string(UnknownDomain)).Inc()
		return errResult(UnknownDomain, fmt.Sprintf("Unknown domain: %s", domain), "")
	}

	log := logger.FromContext(ctx, inv.logger).With(
		zap.String("domain", reg.Domain()),
		zap.String("tool", tool),
	)

	e, ok := reg.lookup(tool)
	if !ok {
		log.Warn("unknown tool requested")
		metrics.ToolInvocationsTotal.WithLabelValues(reg.Domain(), "unknown", string(UnknownTool)).Inc()
		return errResult(UnknownTool, fmt.Sprintf("Unknown tool: %s", tool), reg.Mode())
	}

	start := time.Now()
	res := inv.call(ctx, reg, e, args)
	elapsed := time.Since(start)

	outcome := "ok"
	if !res.OK() {
		outcome = string(res.Kind)
	}
	metrics.ToolInvocationsTotal.WithLabelValues(reg.Domain(), tool, outcome).Inc()
	metrics.ToolInvocationDuration.WithLabelValues(reg.Domain(), tool).Observe(elapsed.Seconds())

	switch {
	case res.OK():
		log.Debug("tool call succeeded", zap.Duration("elapsed", elapsed))
	case res.Kind == HandlerFailure:
		log.Warn("tool handler failed", zap.String("error", res.Message), zap.Duration("elapsed", elapsed))
	default:
		log.Debug("tool call rejected",
			zap.String("kind", string(res.Kind)),
			zap.String("error", res.Message),
			zap.Duration("elapsed", elapsed))
	}
	return res
}

func (inv *Invoker) call(ctx context.Context, reg *Registry, e entry, args Args) (res Result) {
	defer func() {
		if rec := recover(); rec != nil {
			inv.logger.Error("tool handler panicked",
				zap.String("domain", reg.Domain()),
				zap.String("tool", e.desc.Name),
				zap.Any("panic", rec))
			res = errResult(HandlerFailure, fmt.Sprint(rec), reg.Mode())
		}
	}()

	if err := ctx.Err(); err != nil {
		return errResult(HandlerFailure, err.Error(), reg.Mode())
	}

	payload, err := e.handler(ctx, withDefaults(e.desc, args))
	if err != nil {
		var te *ToolError
		if errors.As(err, &te) {
			return errResult(te.Kind, te.Message, reg.Mode())
		}
		return errResult(HandlerFailure, err.Error(), reg.Mode())
	}
	return okResult(payload, reg.Mode())
}

// withDefaults returns a copy of args with declared defaults filled in for
// missing parameters. The caller's map is never modified.
func withDefaults(desc ToolDescriptor, args Args) Args {
	out := make(Args, len(args)+len(desc.Params))
	for k, v := range args {
		out[k] = v
	}
	for _, p := range desc.Params {
		if p.Default == nil {
			continue
		}
		if v, present := out[p.Name]; !present || v == nil {
			out[p.Name] = p.Default
		}
	}
	return out
}
