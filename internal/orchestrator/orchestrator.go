// In file: internal/orchestrator/orchestrator.go

// Package orchestrator turns an utterance into a reply: it classifies the text,
// runs the tool calls the intent needs, and renders the outcome as a templated
// message, delivered whole or as a stream of single-character chunks.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dileep-u-k/assistant-gateway/internal/logger"
	"github.com/dileep-u-k/assistant-gateway/internal/metrics"
	"github.com/dileep-u-k/assistant-gateway/internal/nlu"
	"github.com/dileep-u-k/assistant-gateway/internal/tools"
)

// HelpMessage is the reply to anything the orchestrator has no plan for.
const HelpMessage = "I didn't understand that. Try saying 'Order pizza', 'Buy a Kindle', or 'Check my balance'."

const (
	defaultToolTimeout    = 5 * time.Second
	defaultStreamInterval = 20 * time.Millisecond
)

// Invoker is the tool boundary the orchestrator dispatches through.
type Invoker interface {
	Invoke(ctx context.Context, domain, tool string, args tools.Args) tools.Result
}

type Orchestrator struct {
	classifier     *nlu.Classifier
	invoker        Invoker
	toolTimeout    time.Duration
	streamInterval time.Duration
	logger         *zap.Logger
}

type Option func(*Orchestrator)

// WithToolTimeout bounds each individual tool call.
func WithToolTimeout(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.toolTimeout = d
		}
	}
}

// WithStreamInterval sets the pause between streamed chunks. Zero disables pacing.
func WithStreamInterval(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d >= 0 {
			o.streamInterval = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger.OrNop(l)
	}
}

func New(classifier *nlu.Classifier, invoker Invoker, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		classifier:     classifier,
		invoker:        invoker,
		toolTimeout:    defaultToolTimeout,
		streamInterval: defaultStreamInterval,
		logger:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Respond classifies text and returns the composed reply. Every failure along
// the way is rendered into the reply; Respond itself never fails.
func (o *Orchestrator) Respond(ctx context.Context, text string) string {
	intent := o.classifier.Classify(text)
	metrics.IntentsTotal.WithLabelValues(string(intent.Tag)).Inc()
	logger.FromContext(ctx, o.logger).Debug("classified utterance",
		zap.String("intent", string(intent.Tag)),
		zap.Any("slots", intent.Slots()))
	return o.Compose(ctx, intent)
}

// Compose runs the dispatch plan for intent and renders the reply. Tool calls
// run strictly one after another.
func (o *Orchestrator) Compose(ctx context.Context, intent nlu.Intent) string {
	switch intent.Tag {
	case nlu.OrderFood:
		return o.orderFood(ctx, intent)
	case nlu.OrderProduct:
		return o.orderProduct(ctx, intent)
	case nlu.CheckBalance:
		return o.checkBalance(ctx, intent)
	case nlu.ProcessPayment:
		logger.FromContext(ctx, o.logger).Debug("intent recognized, no dispatch wired",
			zap.String("intent", string(intent.Tag)),
			zap.Float64("amount", intent.Amount()))
		return HelpMessage
	default:
		return HelpMessage
	}
}

func (o *Orchestrator) invoke(ctx context.Context, domain, tool string, args tools.Args) tools.Result {
	ctx, cancel := context.WithTimeout(ctx, o.toolTimeout)
	defer cancel()
	return o.invoker.Invoke(ctx, domain, tool, args)
}

func (o *Orchestrator) orderFood(ctx context.Context, intent nlu.Intent) string {
	item := intent.Item()
	search := o.invoke(ctx, tools.DomainFood, "search_food", tools.Args{"query": item})
	found, ok := search.Payload.(tools.FoodSearch)
	if !search.OK() || !ok || len(found.Results) == 0 {
		return fmt.Sprintf("Sorry, I couldn't find %s.", item)
	}

	res := o.invoke(ctx, tools.DomainFood, "place_order", tools.Args{
		"item_id":  found.Results[0].ID,
		"quantity": intent.Quantity(),
	})
	if !res.OK() {
		return fmt.Sprintf("Sorry, I couldn't place the order. %s", res.Message)
	}
	order, ok := res.Payload.(tools.FoodOrder)
	if !ok {
		return fmt.Sprintf("Sorry, I couldn't place the order. unexpected payload %T", res.Payload)
	}
	return fmt.Sprintf("I have placed an order for %s from %s. Order ID: %s. Estimated delivery: %s.",
		order.Item, order.Restaurant, order.OrderID, order.EstimatedDelivery)
}

func (o *Orchestrator) orderProduct(ctx context.Context, intent nlu.Intent) string {
	item := intent.Item()
	search := o.invoke(ctx, tools.DomainProduct, "search_product", tools.Args{"query": item})
	found, ok := search.Payload.(tools.ProductSearch)
	if !search.OK() || !ok || len(found.Results) == 0 {
		return fmt.Sprintf("Sorry, I couldn't find %s.", item)
	}

	res := o.invoke(ctx, tools.DomainProduct, "place_order", tools.Args{
		"item_id":  found.Results[0].ID,
		"quantity": intent.Quantity(),
	})
	if !res.OK() {
		return fmt.Sprintf("Sorry, I couldn't place the order. %s", res.Message)
	}
	order, ok := res.Payload.(tools.ProductOrder)
	if !ok {
		return fmt.Sprintf("Sorry, I couldn't place the order. unexpected payload %T", res.Payload)
	}
	return fmt.Sprintf("I have placed an order for %s. Order ID: %s. Estimated delivery: %s.",
		order.Product, order.OrderID, order.EstimatedDelivery)
}

func (o *Orchestrator) checkBalance(ctx context.Context, intent nlu.Intent) string {
	res := o.invoke(ctx, tools.DomainBanking, "get_balance", tools.Args{"account_id": intent.AccountID()})
	if !res.OK() {
		return fmt.Sprintf("Sorry, I couldn't retrieve your balance. %s", res.Message)
	}
	bal, ok := res.Payload.(tools.Balance)
	if !ok {
		return fmt.Sprintf("Sorry, I couldn't retrieve your balance. unexpected payload %T", res.Payload)
	}
	a := bal.Account
	return fmt.Sprintf("Your %s account balance is $%.2f %s.", a.AccountType, a.Balance, a.Currency)
}
