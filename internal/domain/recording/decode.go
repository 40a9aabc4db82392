package recording

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Operation and action kinds understood by the decoder.
const (
	kindSync   = "Sync"
	kindAction = "Action"
	kindResign = "Resign"
)

type wireRecording struct {
	Success    *bool             `json:"success"`
	Header     wireHeader        `json:"zheader"`
	Operations []json.RawMessage `json:"operations"`
}

type wireHeader struct {
	Timestamp number `json:"timestamp"`
	Settings  struct {
		ResolvedMapID number       `json:"resolved_map_id"`
		RMSStrings    []string     `json:"rms_strings"`
		Players       []wirePlayer `json:"players"`
	} `json:"game_settings"`
	Replay struct {
		WorldTime number `json:"world_time"`
	} `json:"replay"`
}

type wirePlayer struct {
	Number         number     `json:"player_number"`
	Name           string     `json:"name"`
	ProfileID      flexString `json:"profile_id"`
	CivID          number     `json:"civ_id"`
	ColorID        number     `json:"color_id"`
	ResolvedTeamID number     `json:"resolved_team_id"`
}

type wireSync struct {
	Next          number `json:"next"`
	TimeIncrement number `json:"time_increment"`
}

type wireAction struct {
	Length     number          `json:"length"`
	ActionData json.RawMessage `json:"action_data"`
}

type wireResign struct {
	PlayerID number `json:"player_id"`
}

// Decode reads one recording from the parser's JSON output.
//
// A document with "success": false decodes to a Dummy that keeps only the
// header timestamp. When "success" is absent the document counts as parsed
// if it carries an operation log.
func Decode(data []byte) (Recording, error) {
	var w wireRecording
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	success := w.Operations != nil
	if w.Success != nil {
		success = *w.Success
	}
	if !success {
		return &Dummy{TS: int64(w.Header.Timestamp)}, nil
	}

	p := &Parsed{
		Header: Header{
			Timestamp: int64(w.Header.Timestamp),
			WorldTime: int64(w.Header.Replay.WorldTime),
			Settings: GameSettings{
				ResolvedMapID: int(w.Header.Settings.ResolvedMapID),
				RMSStrings:    w.Header.Settings.RMSStrings,
				Players:       make([]PlayerSettings, 0, len(w.Header.Settings.Players)),
			},
		},
		Operations: make([]Operation, 0, len(w.Operations)),
	}
	for _, wp := range w.Header.Settings.Players {
		p.Header.Settings.Players = append(p.Header.Settings.Players, PlayerSettings{
			Number:         int(wp.Number),
			Name:           wp.Name,
			ProfileID:      string(wp.ProfileID),
			CivID:          int(wp.CivID),
			ColorID:        int(wp.ColorID),
			ResolvedTeamID: int(wp.ResolvedTeamID),
		})
	}

	for i, raw := range w.Operations {
		op, err := decodeOperation(raw)
		if err != nil {
			return nil, fmt.Errorf("operation %d: %w", i, err)
		}
		p.Operations = append(p.Operations, op)
	}
	return p, nil
}

// decodeOperation reads one externally tagged operation: either
// {"Kind": {...}} or a bare "Kind" string.
func decodeOperation(raw json.RawMessage) (Operation, error) {
	kind, body, err := splitTagged(raw)
	if err != nil {
		return nil, err
	}
	switch kind {
	case kindSync:
		var s wireSync
		if err := json.Unmarshal(body, &s); err != nil {
			return nil, fmt.Errorf("%w: sync: %w", ErrDecode, err)
		}
		return Sync{Next: int64(s.Next), TimeIncrement: int64(s.TimeIncrement)}, nil
	case kindAction:
		var a wireAction
		if err := json.Unmarshal(body, &a); err != nil {
			return nil, fmt.Errorf("%w: action: %w", ErrDecode, err)
		}
		data, err := decodeActionData(a.ActionData)
		if err != nil {
			return nil, err
		}
		return Action{Length: int(a.Length), Data: data}, nil
	default:
		return OtherOperation{Kind: kind}, nil
	}
}

func decodeActionData(raw json.RawMessage) (ActionData, error) {
	if len(bytes.TrimSpace(raw)) == 0 || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return OtherAction{}, nil
	}
	kind, body, err := splitTagged(raw)
	if err != nil {
		return nil, err
	}
	if kind != kindResign {
		return OtherAction{Kind: kind}, nil
	}
	var r wireResign
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("%w: resign: %w", ErrDecode, err)
	}
	return Resign{PlayerID: int(r.PlayerID)}, nil
}

// splitTagged returns the single key of a tagged object and its value.
func splitTagged(raw json.RawMessage) (string, json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var kind string
		if err := json.Unmarshal(trimmed, &kind); err != nil {
			return "", nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		return kind, nil, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return "", nil, fmt.Errorf("%w: %s", ErrUnknownOperation, truncate(trimmed))
	}
	if len(obj) != 1 {
		return "", nil, fmt.Errorf("%w: expected one tag, got %d", ErrUnknownOperation, len(obj))
	}
	for kind, body := range obj {
		return kind, body, nil
	}
	return "", nil, ErrUnknownOperation
}

func truncate(b []byte) string {
	const maxLen = 32
	if len(b) > maxLen {
		return string(b[:maxLen]) + "..."
	}
	return string(b)
}

// number accepts JSON integers and floats; floats are truncated.
type number int64

func (n *number) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if s == "null" {
		*n = 0
		return nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		*n = number(v)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid number %q", s)
	}
	*n = number(int64(f))
	return nil
}

// flexString accepts a JSON string or number; profile ids come as either.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	trimmed := bytes.TrimSpace(b)
	switch {
	case bytes.Equal(trimmed, []byte("null")):
		*f = ""
		return nil
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(trimmed, &n); err != nil {
			return err
		}
		*f = flexString(n.String())
		return nil
	}
}
