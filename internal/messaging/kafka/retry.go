package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burgershop/internal/domain"
)

// ErrCircuitOpen возвращается, пока брокер считается недоступным.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// RetryConfig конфигурация повторных попыток публикации.
type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
}

// DefaultRetryConfig возвращает конфигурацию по умолчанию.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      time.Second,
		BackoffFactor: 2.0,
	}
}

// RetryingPublisher оборачивает EventPublisher повторами с экспоненциальной задержкой
// и circuit breaker'ом: после серии неудач события отбрасываются сразу, не задерживая кассу.
type RetryingPublisher struct {
	next    domain.EventPublisher
	config  RetryConfig
	breaker *CircuitBreaker
	logger  *log.Entry
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewRetryingPublisher создаёт паблишер с retry логикой. breaker может быть nil.
func NewRetryingPublisher(next domain.EventPublisher, config RetryConfig, breaker *CircuitBreaker, logger *log.Entry) *RetryingPublisher {
	if logger == nil {
		logger = log.WithField("component", "kafka-retry")
	}
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	if config.BackoffFactor < 1 {
		config.BackoffFactor = 1
	}
	return &RetryingPublisher{
		next:    next,
		config:  config,
		breaker: breaker,
		logger:  logger,
		sleep:   sleepContext,
	}
}

// Publish отправляет событие, повторяя временные ошибки.
func (p *RetryingPublisher) Publish(ctx context.Context, event domain.OrderEvent) error {
	if p.breaker != nil && !p.breaker.Allow() {
		return fmt.Errorf("%w: %w", domain.ErrEventPublish, ErrCircuitOpen)
	}

	var lastErr error
	delay := p.config.InitialDelay

	for attempt := 1; attempt <= p.config.MaxAttempts; attempt++ {
		err := p.next.Publish(ctx, event)
		if err == nil {
			p.breaker.recordSuccess()
			if attempt > 1 {
				p.logger.WithFields(log.Fields{
					"event":    event.Type,
					"order_id": event.OrderID,
					"attempt":  attempt,
				}).Info("event published after retry")
			}
			return nil
		}

		lastErr = err
		if !shouldRetry(err) {
			p.breaker.release()
			return err
		}

		if attempt < p.config.MaxAttempts {
			p.logger.WithFields(log.Fields{
				"event":    event.Type,
				"order_id": event.OrderID,
				"attempt":  attempt,
				"delay":    delay,
			}).WithError(err).Warn("publish failed, retrying")

			if err := p.sleep(ctx, delay); err != nil {
				p.breaker.release()
				return err
			}

			delay = time.Duration(float64(delay) * p.config.BackoffFactor)
			if p.config.MaxDelay > 0 && delay > p.config.MaxDelay {
				delay = p.config.MaxDelay
			}
		}
	}

	p.breaker.recordFailure()
	return lastErr
}

// shouldRetry не повторяет отмену вызывающей стороны.
func shouldRetry(err error) bool {
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// CircuitState состояние circuit breaker.
type CircuitState int

const (
	CircuitClosed CircuitState = iota
	CircuitOpen
	CircuitHalfOpen
)

// CircuitBreaker простая реализация circuit breaker паттерна.
type CircuitBreaker struct {
	mu           sync.Mutex
	maxFailures  int
	resetTimeout time.Duration
	now          func() time.Time

	failures    int
	lastFailure time.Time
	state       CircuitState
	logger      *log.Entry

	// в состоянии half-open пробная попытка уже выдана
	probing bool
}

// NewCircuitBreaker создаёт breaker, открывающийся после maxFailures неудач подряд.
func NewCircuitBreaker(maxFailures int, resetTimeout time.Duration, logger *log.Entry) *CircuitBreaker {
	if logger == nil {
		logger = log.WithField("component", "circuit-breaker")
	}
	if maxFailures < 1 {
		maxFailures = 1
	}
	return &CircuitBreaker{
		maxFailures:  maxFailures,
		resetTimeout: resetTimeout,
		now:          time.Now,
		state:        CircuitClosed,
		logger:       logger,
	}
}

// State возвращает текущее состояние.
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Allow сообщает, можно ли выполнять операцию. По истечении resetTimeout
// открытый breaker пропускает одну пробную попытку (half-open); остальные
// вызовы получают отказ, пока проба не завершится.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case CircuitClosed:
		return true
	case CircuitHalfOpen:
		if cb.probing {
			return false
		}
		cb.probing = true
		return true
	}

	if cb.now().Sub(cb.lastFailure) > cb.resetTimeout {
		cb.state = CircuitHalfOpen
		cb.probing = true
		cb.logger.Info("circuit breaker half-open")
		return true
	}
	return false
}

// release возвращает пробную попытку, завершившуюся без вердикта (например, отменой контекста).
func (cb *CircuitBreaker) release() {
	if cb == nil {
		return
	}
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.probing = false
}

func (cb *CircuitBreaker) recordSuccess() {
	if cb == nil {
		return
	}
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == CircuitHalfOpen {
		cb.logger.Info("circuit breaker closed")
	}
	cb.state = CircuitClosed
	cb.failures = 0
	cb.probing = false
}

func (cb *CircuitBreaker) recordFailure() {
	if cb == nil {
		return
	}
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.failures++
	cb.lastFailure = cb.now()
	cb.probing = false
	if cb.state == CircuitHalfOpen || cb.failures >= cb.maxFailures {
		if cb.state != CircuitOpen {
			cb.logger.WithField("failures", cb.failures).Warn("circuit breaker opened")
		}
		cb.state = CircuitOpen
	}
}

var _ domain.EventPublisher = (*RetryingPublisher)(nil)
