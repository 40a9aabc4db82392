package dedupe

// Option applies a configuration option to the in-memory Deduper.
type Option func(*digestSet)

// WithMaxSize bounds the number of remembered digests. When full, the oldest
// digest is forgotten first. A size of 0 or less keeps every digest.
func WithMaxSize(maxSize int) Option {
	return func(d *digestSet) {
		d.maxSize = maxSize
	}
}
