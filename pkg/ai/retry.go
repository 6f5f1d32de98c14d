package ai

import (
	"context"
	"time"

	"github.com/hugohenrick/pedidozap/pkg/logger"
)

// RetryCompleter envolve um Completer com uma política de tentativas fixas.
// Cada tentativa tem um timeout próprio; entre tentativas há um atraso fixo.
// Se a chamada como um todo ultrapassar SlowAfter, o callback OnSlow é
// disparado uma única vez (usado para avisar "ainda processando" no chat).
type RetryCompleter struct {
	inner          Completer
	attempts       int
	delay          time.Duration
	attemptTimeout time.Duration
	slowAfter      time.Duration
	onSlow         func()
	logger         logger.Logger
}

// RetryConfig contém os parâmetros da política de retry
type RetryConfig struct {
	Attempts       int
	Delay          time.Duration
	AttemptTimeout time.Duration
	SlowAfter      time.Duration
	OnSlow         func()
}

// DefaultRetryConfig retorna a política padrão: 3 tentativas, 2s de atraso,
// 10s de timeout por tentativa, aviso de lentidão após 8s.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		Attempts:       3,
		Delay:          2 * time.Second,
		AttemptTimeout: 10 * time.Second,
		SlowAfter:      8 * time.Second,
	}
}

// NewRetryCompleter cria um novo RetryCompleter
func NewRetryCompleter(inner Completer, cfg RetryConfig, log logger.Logger) *RetryCompleter {
	if cfg.Attempts <= 0 {
		cfg.Attempts = 1
	}
	return &RetryCompleter{
		inner:          inner,
		attempts:       cfg.Attempts,
		delay:          cfg.Delay,
		attemptTimeout: cfg.AttemptTimeout,
		slowAfter:      cfg.SlowAfter,
		onSlow:         cfg.OnSlow,
		logger:         log,
	}
}

// Complete executa o Completer interno sob a política de retry.
// Um único timer controla o aviso de lentidão para a chamada inteira.
func (r *RetryCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	var slowTimer *time.Timer
	if r.onSlow != nil && r.slowAfter > 0 {
		slowTimer = time.AfterFunc(r.slowAfter, r.onSlow)
		defer slowTimer.Stop()
	}

	var lastErr error
	for attempt := 1; attempt <= r.attempts; attempt++ {
		attemptCtx := ctx
		var cancel context.CancelFunc
		if r.attemptTimeout > 0 {
			attemptCtx, cancel = context.WithTimeout(ctx, r.attemptTimeout)
		}

		reply, err := r.inner.Complete(attemptCtx, prompt)
		if cancel != nil {
			cancel()
		}
		if err == nil {
			return reply, nil
		}

		lastErr = err
		r.logger.Warn("AI completion attempt failed", "attempt", attempt, "error", err)

		if attempt < r.attempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(r.delay):
			}
		}
	}

	return "", lastErr
}
