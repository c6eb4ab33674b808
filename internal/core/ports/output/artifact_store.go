package ports

// ArtifactStore persists one opaque trained-model blob per classifier
// family. Save must be atomic: a concurrent Load sees either the prior blob
// or the new one, never a partial write.
type ArtifactStore interface {
	Save(family string, blob []byte) error

	// Load returns domain.ErrModelNotTrained when no blob exists for the
	// family. That is the normal pre-first-training state.
	Load(family string) ([]byte, error)
}
