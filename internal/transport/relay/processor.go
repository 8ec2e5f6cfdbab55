// Package relay delivers outbox events to the broker.
package relay

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/fsdevblog/learnmarket/internal/domain"
	"github.com/fsdevblog/learnmarket/internal/service"
	"github.com/sirupsen/logrus"
)

const (
	defaultServiceTimeout         = 3 * time.Second
	defaultPublishTimeout         = 5 * time.Second
	defaultIdleInterval           = time.Second
	defaultMaxIdleInterval        = 30 * time.Second
	defaultLimitPerIteration uint = 100
	defaultWorkers           uint = 4
)

// Processor moves pending outbox events to the broker. Delivery is at-least-once: an event published
// right before a failed Complete is published again once its lease expires.
type Processor struct {
	publisher         Publisher
	svs               Servicer
	observer          Observer
	l                 *logrus.Entry
	limitPerIteration uint
	workers           uint
	idleInterval      time.Duration
	maxIdleInterval   time.Duration
}

func New(svs Servicer, publisher Publisher, l *logrus.Logger) *Processor {
	loggerEntry := l.WithFields(logrus.Fields{
		"component": "relay",
		"module":    "processor",
	})

	return &Processor{
		svs:               svs,
		publisher:         publisher,
		l:                 loggerEntry,
		limitPerIteration: defaultLimitPerIteration,
		workers:           defaultWorkers,
		idleInterval:      defaultIdleInterval,
		maxIdleInterval:   defaultMaxIdleInterval,
	}
}

// SetLimitPerIteration sets how many events one iteration takes.
func (p *Processor) SetLimitPerIteration(limit uint) *Processor {
	if limit > 0 {
		p.limitPerIteration = limit
	}
	return p
}

// SetWorkers sets the number of concurrent publishers.
func (p *Processor) SetWorkers(workers uint) *Processor {
	if workers > 0 {
		p.workers = workers
	}
	return p
}

// SetIdleInterval sets the base pause and its upper bound used when there is nothing to deliver.
func (p *Processor) SetIdleInterval(base, limit time.Duration) *Processor {
	if base > 0 && limit >= base {
		p.idleInterval = base
		p.maxIdleInterval = limit
	}
	return p
}

func (p *Processor) SetObserver(o Observer) *Processor {
	p.observer = o
	return p
}

// Run delivers events until ctx is cancelled.
//
// Every iteration:
//  1. takes up to limitPerIteration pending events from the service layer;
//  2. fans them out to the workers which publish each event to the queue named after its type;
//  3. reports the results back so delivered events are marked as sent and failed ones get an attempt.
//
// Empty or failed iterations are followed by an exponentially growing pause with jitter.
func (p *Processor) Run(ctx context.Context) {
	p.l.WithFields(logrus.Fields{
		"limitPerIteration": p.limitPerIteration,
		"workers":           p.workers,
	}).Info("Starting")

	var streak int
	for {
		select {
		case <-ctx.Done():
			p.l.Info("Got stop signal, exiting...")
			return
		default:
		}

		err := p.process(ctx)
		if err == nil {
			streak = 0
			continue
		}
		if !errors.Is(err, ErrNoEvents) {
			p.l.WithError(err).Error("process error")
		}
		streak++

		select {
		case <-ctx.Done():
			p.l.Info("Got stop signal, exiting...")
			return
		case <-time.After(backoff(p.idleInterval, p.maxIdleInterval, streak)):
		}
	}
}

// process runs one iteration. Returns ErrNoEvents when the outbox is empty.
func (p *Processor) process(ctx context.Context) error {
	events, eventsErr := p.produce(ctx)
	if eventsErr != nil {
		return fmt.Errorf("process: %w", eventsErr)
	}

	results := p.runWorkers(ctx, events)
	if len(results) == 0 {
		return nil
	}

	// Complete must land even if the run is being cancelled, otherwise delivered events repeat.
	reqCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), defaultServiceTimeout)
	defer cancel()

	if err := p.svs.Complete(reqCtx, results); err != nil {
		return fmt.Errorf("process: %s", err.Error())
	}
	return nil
}

// runWorkers publishes events with a fan-out/fan-in worker pool and waits for all of them.
func (p *Processor) runWorkers(ctx context.Context, events []domain.OutboxEvent) []service.DeliveryResult {
	var taskCh = make(chan *domain.OutboxEvent, len(events))
	for i := range events {
		taskCh <- &events[i]
	}
	close(taskCh)

	wg := new(sync.WaitGroup)
	var resultCh = make(chan service.DeliveryResult, len(events))

	for i := range p.workers {
		wg.Add(1)
		go p.worker(ctx, wg, i+1, taskCh, resultCh)
	}
	wg.Wait()
	close(resultCh)

	var results = make([]service.DeliveryResult, 0, len(events))
	for result := range resultCh {
		results = append(results, result)
	}
	return results
}

func (p *Processor) worker(
	ctx context.Context,
	wg *sync.WaitGroup,
	workerID uint,
	taskCh <-chan *domain.OutboxEvent,
	resultCh chan<- service.DeliveryResult,
) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-taskCh:
			if !ok {
				return
			}
			resultCh <- p.deliver(ctx, workerID, task)
		}
	}
}

func (p *Processor) deliver(ctx context.Context, workerID uint, event *domain.OutboxEvent) service.DeliveryResult {
	pubCtx, cancel := context.WithTimeout(ctx, defaultPublishTimeout)
	err := p.publisher.Publish(pubCtx, string(event.EventType), event.Payload)
	cancel()

	if p.observer != nil {
		p.observer.ObserveDelivery(string(event.EventType), err)
	}

	l := p.l.WithFields(logrus.Fields{
		"worker":  workerID,
		"eventID": event.ID,
		"type":    event.EventType,
		"attempt": event.Attempts + 1,
	})
	if err != nil {
		l.WithError(err).Error("publish event")
	} else {
		l.Debug("Delivered")
	}
	return service.DeliveryResult{EventID: event.ID, Error: err}
}

func (p *Processor) produce(ctx context.Context) ([]domain.OutboxEvent, error) {
	produceCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
	defer cancel()

	events, err := p.svs.PendingEvents(produceCtx, p.limitPerIteration)
	if err != nil {
		return nil, fmt.Errorf("produce: %w", err)
	}
	if len(events) == 0 {
		return nil, ErrNoEvents
	}
	return events, nil
}
