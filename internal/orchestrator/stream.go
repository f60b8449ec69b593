// In file: internal/orchestrator/stream.go
package orchestrator

import (
	"context"
	"time"

	"github.com/dileep-u-k/assistant-gateway/internal/logger"
	"github.com/dileep-u-k/assistant-gateway/internal/metrics"
)

type ChunkType string

const (
	ChunkToken ChunkType = "token"
	ChunkDone  ChunkType = "done"
)

// Chunk is one element of a streamed reply. Token chunks carry exactly one
// character; the done chunk carries nothing.
type Chunk struct {
	Type    ChunkType `json:"type"`
	Content string    `json:"content,omitempty"`
}

// RespondStream computes the reply exactly as Respond does, before returning,
// and then replays it one character per chunk followed by a single done chunk.
//
// The channel is unbuffered, so the producer advances only as fast as the
// consumer reads. Cancelling ctx stops the producer; the channel is closed in
// every case, and done is sent exactly once unless ctx ends first.
func (o *Orchestrator) RespondStream(ctx context.Context, text string) <-chan Chunk {
	message := o.Respond(ctx, text)
	out := make(chan Chunk)
	go o.emit(ctx, message, out)
	return out
}

func (o *Orchestrator) emit(ctx context.Context, message string, out chan<- Chunk) {
	defer close(out)
	metrics.ActiveStreams.Inc()
	defer metrics.ActiveStreams.Dec()

	var pace *time.Ticker
	if o.streamInterval > 0 {
		pace = time.NewTicker(o.streamInterval)
		defer pace.Stop()
	}

	first := true
	for _, r := range message {
		if !first && pace != nil {
			select {
			case <-pace.C:
			case <-ctx.Done():
				o.abandoned(ctx)
				return
			}
		}
		first = false

		select {
		case out <- Chunk{Type: ChunkToken, Content: string(r)}:
			metrics.StreamChunksTotal.Inc()
		case <-ctx.Done():
			o.abandoned(ctx)
			return
		}
	}

	select {
	case out <- Chunk{Type: ChunkDone}:
	case <-ctx.Done():
		o.abandoned(ctx)
	}
}

func (o *Orchestrator) abandoned(ctx context.Context) {
	metrics.StreamsCancelledTotal.Inc()
	logger.FromContext(ctx, o.logger).Debug("stream abandoned by consumer")
}
