package translate

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/time/rate"
)

// rateLimited throttles calls to the wrapped Translator.
type rateLimited struct {
	next    Translator
	limiter *rate.Limiter
}

// newRateLimited wraps t with a limiter allowing rps calls per second.
// It returns t unchanged when rps is not positive.
func newRateLimited(t Translator, rps float64) Translator {
	if rps <= 0 {
		return t
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &rateLimited{
		next:    t,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (r *rateLimited) Name() string {
	return r.next.Name()
}

func (r *rateLimited) Translate(ctx context.Context, req Request) (*Translation, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("translation throttled: %w", err)
	}
	return r.next.Translate(ctx, req)
}

func (r *rateLimited) Close() error {
	if c, ok := r.next.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
