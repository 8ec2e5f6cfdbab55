// Package broker publishes messages to RabbitMQ queues.
package broker

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const contentTypeJSON = "application/json"

var ErrClosed = errors.New("publisher closed")

// Channel is the part of *amqp.Channel the publisher needs.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Dialer opens a channel and returns a func closing everything it opened.
type Dialer func() (Channel, func() error, error)

// Publisher keeps one connection and channel open and re-dials after a failed publish.
// Every queue is declared durable once per channel and messages are persistent.
type Publisher struct {
	mu       sync.Mutex
	dial     Dialer
	ch       Channel
	closeFn  func() error
	declared map[string]struct{}
	closed   bool
	l        *logrus.Entry
}

func New(url string, l *logrus.Logger) *Publisher {
	return NewWithDialer(AMQPDialer(url), l)
}

func NewWithDialer(dial Dialer, l *logrus.Logger) *Publisher {
	return &Publisher{
		dial:     dial,
		declared: make(map[string]struct{}),
		l: l.WithFields(logrus.Fields{
			"component": "broker",
			"module":    "publisher",
		}),
	}
}

// AMQPDialer dials RabbitMQ at url.
func AMQPDialer(url string) Dialer {
	return func() (Channel, func() error, error) {
		conn, dialErr := amqp.Dial(url)
		if dialErr != nil {
			return nil, nil, errors.Wrap(dialErr, "dial rabbitmq")
		}
		ch, chErr := conn.Channel()
		if chErr != nil {
			_ = conn.Close()
			return nil, nil, errors.Wrap(chErr, "open channel")
		}
		return ch, conn.Close, nil
	}
}

// Publish sends body to the queue through the default exchange.
func (p *Publisher) Publish(ctx context.Context, queue string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}

	ch, chErr := p.channel()
	if chErr != nil {
		return chErr
	}

	if _, ok := p.declared[queue]; !ok {
		if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
			p.reset()
			return errors.Wrapf(err, "declare queue %s", queue)
		}
		p.declared[queue] = struct{}{}
	}

	if err := ch.PublishWithContext(ctx, "", queue, false, false, amqp.Publishing{
		ContentType:  contentTypeJSON,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}); err != nil {
		p.reset()
		return errors.Wrapf(err, "publish to %s", queue)
	}
	return nil
}

// Close closes the connection. Publish fails with ErrClosed afterwards.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	if p.ch == nil {
		return nil
	}
	return p.closeConn()
}

func (p *Publisher) channel() (Channel, error) {
	if p.ch != nil {
		return p.ch, nil
	}
	ch, closeFn, err := p.dial()
	if err != nil {
		return nil, err
	}
	p.ch = ch
	p.closeFn = closeFn
	p.declared = make(map[string]struct{})
	return ch, nil
}

// reset drops a channel that failed, the next Publish dials again.
func (p *Publisher) reset() {
	if err := p.closeConn(); err != nil {
		p.l.WithError(err).Warn("close broken connection")
	}
}

func (p *Publisher) closeConn() error {
	chErr := p.ch.Close()
	var connErr error
	if p.closeFn != nil {
		connErr = p.closeFn()
	}
	p.ch = nil
	p.closeFn = nil
	if chErr != nil {
		return errors.Wrap(chErr, "close channel")
	}
	if connErr != nil {
		return errors.Wrap(connErr, "close connection")
	}
	return nil
}
