// Package retry fournit une politique de relance testable, indépendante de
// l'appel qu'elle pilote: nombre maximal de tentatives, fonction d'attente et
// prédicat de relance.
package retry

import (
	"context"
	"time"
)

// Policy politique de relance.
type Policy struct {
	// MaxAttempts nombre total de tentatives (première incluse). <= 0 vaut 1.
	MaxAttempts int
	// Backoff renvoie l'attente avant la relance suivante; attempt commence à 1.
	// Nil = pas d'attente.
	Backoff func(attempt int) time.Duration
	// Retryable décide si une erreur mérite une relance. Nil = toujours.
	Retryable func(err error) bool
}

// ExponentialBackoff attente en base*2^tentative: pour base=1s, 2s puis 4s puis 8s.
func ExponentialBackoff(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return base * time.Duration(1<<attempt)
	}
}

// Do exécute op jusqu'à réussite, épuisement des tentatives, erreur non
// relançable ou annulation du contexte. Le contexte est transmis à chaque
// tentative et interrompt aussi l'attente entre deux tentatives.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if p.Retryable != nil && !p.Retryable(lastErr) {
			return lastErr
		}
		if attempt == attempts {
			break
		}

		if p.Backoff != nil {
			t := time.NewTimer(p.Backoff(attempt))
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}
	}
	return lastErr
}
