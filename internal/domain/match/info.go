package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/replaymerge/internal/domain/recording"
)

const (
	scriptStringIndex  = 1 // rms string carrying the script path
	scriptSegmentIndex = 2 // colon-separated field holding the script file name
	scriptExtension    = ".rms"
)

// Names resolves the external map and civilization tables.
type Names interface {
	CivNamer
	MapName(id int) (string, bool)
}

// RecordingInfo is everything derived from one parsed recording.
type RecordingInfo struct {
	Date         time.Time
	MapName      string
	Duration     int64
	Resignations []int
	Teams        []Team
}

// ExtractRecordingInfo derives date, map, duration, resignations and teams.
// It fails with ErrMalformedHeader only when the map is neither in the table
// nor recoverable from the raw map-script strings.
func ExtractRecordingInfo(rec *recording.Parsed, names Names) (RecordingInfo, error) {
	mapName, err := ResolveMapName(rec.Header.Settings, names)
	if err != nil {
		return RecordingInfo{}, err
	}
	stats := ParseOperations(rec)
	return RecordingInfo{
		Date:         unixDate(rec.Header.Timestamp),
		MapName:      mapName,
		Duration:     stats.Duration,
		Resignations: stats.Resignations,
		Teams:        BuildTeams(rec.Header.Settings.Players, stats.Resignations, names),
	}, nil
}

// ResolveMapName looks the map id up and falls back to the script file
// name: the third colon-separated field of the second rms string, with the
// .rms extension removed.
func ResolveMapName(settings recording.GameSettings, names Names) (string, error) {
	if name, ok := names.MapName(settings.ResolvedMapID); ok {
		return name, nil
	}
	if len(settings.RMSStrings) <= scriptStringIndex {
		return "", fmt.Errorf("%w: map %d unknown and %d rms strings present",
			ErrMalformedHeader, settings.ResolvedMapID, len(settings.RMSStrings))
	}
	segments := strings.Split(settings.RMSStrings[scriptStringIndex], ":")
	if len(segments) <= scriptSegmentIndex {
		return "", fmt.Errorf("%w: map %d unknown and script string %q has no file segment",
			ErrMalformedHeader, settings.ResolvedMapID, settings.RMSStrings[scriptStringIndex])
	}
	return strings.TrimSuffix(segments[scriptSegmentIndex], scriptExtension), nil
}

// unixDate converts a header timestamp; zero means unknown.
func unixDate(ts int64) time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.Unix(ts, 0).UTC()
}
