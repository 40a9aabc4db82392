package match

import "github.com/okian/replaymerge/internal/domain/recording"

// OperationStats is the result of folding an operation log.
type OperationStats struct {
	// Duration is the simulation time: header world time plus every sync increment.
	Duration int64
	// Resignations lists resigning player ids in stream order.
	Resignations []int
}

// Apply folds one operation into s. Only Sync and Resign actions count.
func (s *OperationStats) Apply(op recording.Operation) {
	switch o := op.(type) {
	case recording.Sync:
		s.Duration += o.TimeIncrement
	case recording.Action:
		if r, ok := o.Data.(recording.Resign); ok {
			s.Resignations = append(s.Resignations, r.PlayerID)
		}
	case recording.OtherOperation:
	}
}

// ParseOperations folds the whole operation log of rec, left to right.
func ParseOperations(rec *recording.Parsed) OperationStats {
	stats := OperationStats{
		Duration:     rec.Header.WorldTime,
		Resignations: []int{},
	}
	for _, op := range rec.Operations {
		stats.Apply(op)
	}
	return stats
}
