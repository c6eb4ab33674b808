package ports

import "context"

// Embedder turns text into fixed-length dense vectors. Implementations load
// the underlying model lazily and retry the load on every call while it is
// unavailable; when the load keeps failing they return
// domain.ErrModelUnavailable.
type Embedder interface {
	// Embed generates an embedding for a single text.
	Embed(ctx context.Context, text string) ([]float64, error)

	// EmbedBatch generates embeddings for multiple texts, order-preserving.
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}
