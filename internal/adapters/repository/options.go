package repository

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithObserver registers a callback invoked after every change with the
// number of games and how many of them are dummies.
func WithObserver(fn func(games, dummies int)) Option {
	return func(s *MemoryStore) {
		if fn != nil {
			s.observer = fn
		}
	}
}
