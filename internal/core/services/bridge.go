package services

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/custodia-labs/refdesk/internal/core/domain"
	"github.com/custodia-labs/refdesk/internal/core/ports/driven"
	"github.com/custodia-labs/refdesk/internal/logger"
)

// BridgeConfig tunes the stream bridge.
type BridgeConfig struct {
	// Model overrides the LLM service's model when set.
	Model string

	// MaxTokens caps the answer. Non-positive uses domain.DefaultMaxTokens.
	MaxTokens int

	// Timeout bounds the whole LLM request. Zero disables the bound.
	Timeout time.Duration
}

// StreamBridge relays an LLM's incremental output as stream events.
//
// Every run moves Idle -> Streaming -> Completed or Failed and emits zero
// or more text events followed by exactly one terminal event.
type StreamBridge struct {
	llm driven.LLMService
	cfg BridgeConfig
}

// NewStreamBridge creates a bridge over llm.
func NewStreamBridge(llm driven.LLMService, cfg BridgeConfig) *StreamBridge {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = domain.DefaultMaxTokens
	}
	return &StreamBridge{llm: llm, cfg: cfg}
}

// Available reports whether an LLM is configured.
func (b *StreamBridge) Available() bool {
	return b.llm != nil
}

// Stream returns a lazy event sequence for prompt. Nothing is sent to the
// LLM until the sequence is iterated. The sequence is single use. Stopping
// iteration early cancels the LLM request.
func (b *StreamBridge) Stream(ctx context.Context, prompt domain.Prompt) iter.Seq[domain.StreamEvent] {
	used := false
	return func(yield func(domain.StreamEvent) bool) {
		if used {
			yield(domain.ErrorEvent(fmt.Errorf("%w: stream already consumed", domain.ErrInvalidInput)))
			return
		}
		used = true
		b.run(ctx, prompt, yield)
	}
}

func (b *StreamBridge) run(ctx context.Context, prompt domain.Prompt, yield func(domain.StreamEvent) bool) {
	state := domain.StreamIdle
	transition := func(next domain.StreamState) {
		logger.Debug("Stream %s -> %s", state, next)
		state = next
	}

	if b.llm == nil {
		transition(domain.StreamFailed)
		yield(domain.ErrorEvent(domain.ErrLLMUnavailable))
		return
	}

	ctx, cancel := b.withTimeout(ctx)
	defer cancel()

	req := driven.ChatRequest{
		Model:     b.cfg.Model,
		System:    prompt.System,
		Messages:  driven.MessagesFromTurns(prompt.Messages),
		MaxTokens: b.cfg.MaxTokens,
	}

	transition(domain.StreamStreaming)
	fragments := 0
	for fragment, err := range b.llm.StreamChat(ctx, req) {
		switch {
		case err != nil:
			transition(domain.StreamFailed)
			logger.Warn("LLM stream failed after %d fragments: %v", fragments, err)
			yield(domain.ErrorEvent(err))
			return
		default:
			fragments++
			if !yield(domain.TextEvent(fragment)) {
				logger.Debug("Consumer stopped after %d fragments, cancelling", fragments)
				return
			}
		}
	}

	// A provider that stops without an error only ends normally when the
	// context is still live.
	if err := ctx.Err(); err != nil {
		transition(domain.StreamFailed)
		yield(domain.ErrorEvent(fmt.Errorf("llm request: %w", err)))
		return
	}

	transition(domain.StreamCompleted)
	logger.Debug("Stream completed with %d fragments", fragments)
	yield(domain.DoneEvent())
}

func (b *StreamBridge) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if b.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, b.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}
