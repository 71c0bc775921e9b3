package event

import (
	"context"
	"sync"
	"time"

	"github.com/kassalytics/tracker/internal/logger"
)

// retryEntry tracks an event awaiting another publish attempt
type retryEntry struct {
	event    Event
	attempts int
	nextTry  time.Time
	lastErr  error
}

// ResilientPublisher wraps an Event Bus with a background retry queue and a
// dead-letter file. Callers are never blocked on a failing subscriber: a
// failed publish is queued and PublishWithRetry returns immediately.
type ResilientPublisher struct {
	bus        Bus
	retryQueue chan retryEntry
	maxRetries int
	retryDelay time.Duration
	deadLetter *DeadLetterWriter
	shutdown   chan struct{}
	wg         sync.WaitGroup
}

// NewResilientPublisher creates a ResilientPublisher and starts its retry worker
func NewResilientPublisher(bus Bus, maxRetries int, retryDelay time.Duration, deadLetterPath string) (*ResilientPublisher, error) {
	dl, err := NewDeadLetterWriter(deadLetterPath)
	if err != nil {
		return nil, err
	}

	rp := &ResilientPublisher{
		bus:        bus,
		retryQueue: make(chan retryEntry, RetryQueueBufferSize),
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		deadLetter: dl,
		shutdown:   make(chan struct{}),
	}

	rp.wg.Add(1)
	go rp.retryWorker()

	return rp, nil
}

// PublishWithRetry attempts to publish an event. On failure the event is
// queued for background retry; the caller always continues.
func (p *ResilientPublisher) PublishWithRetry(ctx context.Context, event Event) {
	err := p.bus.Publish(ctx, event)
	if err == nil {
		return
	}

	logger.Warn(LogMsgEventPublishFailed,
		"event_type", event.Type,
		"error", err)

	p.enqueue(retryEntry{
		event:    event,
		attempts: 1,
		nextTry:  time.Now().Add(CalculateRetryDelay(p.retryDelay, 1)),
		lastErr:  err,
	})
}

// Publish satisfies the Bus interface. The returned error is always nil;
// failures are handled by the retry worker.
func (p *ResilientPublisher) Publish(ctx context.Context, event Event) error {
	p.PublishWithRetry(ctx, event)
	return nil
}

// Subscribe delegates to the inner bus
func (p *ResilientPublisher) Subscribe(eventType Type, handler Handler) {
	p.bus.Subscribe(eventType, handler)
}

func (p *ResilientPublisher) enqueue(entry retryEntry) {
	select {
	case p.retryQueue <- entry:
	default:
		logger.Error(LogMsgRetryQueueFull, "event_type", entry.event.Type)
		if err := p.deadLetter.Write(entry.event, entry.attempts, entry.lastErr); err != nil {
			logger.Error(LogMsgDeadLetterWriteFailed, "error", err)
		}
	}
}

// retryWorker drains the retry queue, re-attempting each event with
// exponential backoff until it succeeds or exhausts its attempts.
func (p *ResilientPublisher) retryWorker() {
	defer p.wg.Done()

	ctx := context.Background()

	for {
		select {
		case <-p.shutdown:
			p.drainQueue(ctx)
			return
		case entry := <-p.retryQueue:
			if wait := time.Until(entry.nextTry); wait > 0 {
				select {
				case <-time.After(wait):
				case <-p.shutdown:
					p.retryEntryFinal(ctx, entry)
					p.drainQueue(ctx)
					return
				}
			}

			err := p.bus.Publish(ctx, entry.event)
			if err == nil {
				logger.Info(LogMsgEventRetrySucceeded,
					"event_type", entry.event.Type,
					"attempt", entry.attempts)
				continue
			}

			entry.lastErr = err
			if entry.attempts >= p.maxRetries {
				logger.Warn(LogMsgEventRetryExhausted,
					"event_type", entry.event.Type,
					"attempts", entry.attempts)
				if dlErr := p.deadLetter.Write(entry.event, entry.attempts, err); dlErr != nil {
					logger.Error(LogMsgDeadLetterWriteFailed, "error", dlErr)
				}
				continue
			}

			entry.attempts++
			entry.nextTry = time.Now().Add(CalculateRetryDelay(p.retryDelay, entry.attempts))
			logger.Warn(LogMsgEventRetryFailed,
				"event_type", entry.event.Type,
				"attempt", entry.attempts,
				"error", err)
			p.enqueue(entry)
		}
	}
}

// retryEntryFinal gives an in-flight entry one last attempt during shutdown
func (p *ResilientPublisher) retryEntryFinal(ctx context.Context, entry retryEntry) {
	if err := p.bus.Publish(ctx, entry.event); err != nil {
		if dlErr := p.deadLetter.Write(entry.event, entry.attempts, err); dlErr != nil {
			logger.Error(LogMsgDeadLetterWriteFailedS, "error", dlErr)
		}
	}
}

// drainQueue makes one final attempt for every queued event, dead-lettering
// whatever still fails
func (p *ResilientPublisher) drainQueue(ctx context.Context) {
	drained := 0
	for {
		select {
		case entry := <-p.retryQueue:
			p.retryEntryFinal(ctx, entry)
			drained++
		default:
			if drained > 0 {
				logger.Info(LogMsgQueueDrainedShutdown, "count", drained)
			}
			return
		}
	}
}

// Shutdown stops the retry worker, draining pending events. Returns the
// context error if the drain does not finish in time.
func (p *ResilientPublisher) Shutdown(ctx context.Context) error {
	close(p.shutdown)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return p.deadLetter.Close()
	case <-ctx.Done():
		logger.Error(LogMsgShutdownTimeout)
		return ctx.Err()
	}
}
