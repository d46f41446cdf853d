package llm

import (
	"context"
	"time"
)

// Image is an encoded image payload handed to a vision-capable model.
type Image struct {
	MIME string
	Data []byte
}

// Result is the outcome of a single model call. A call either fails with an
// error, comes back Rejected by the model's safety classification, or is
// accepted with Text holding the model output. Text must not be read when
// Rejected is set.
type Result struct {
	Text     string
	Rejected bool
	Reason   string
}

type TextClient interface {
	Generate(ctx context.Context, prompt string) (Result, error)
}

type VisionClient interface {
	Describe(ctx context.Context, prompt string, img Image) (Result, error)
}

// Client bundles both call paths of a provider.
type Client interface {
	TextClient
	VisionClient
}

func callContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
