// Package recording contains the parsed replay model produced by the external
// replay parser. A Recording is either a Parsed replay (the parser succeeded)
// or a Dummy (the parser failed but a rough date is still known).
package recording

// Recording is the sealed union of Parsed and Dummy.
type Recording interface {
	// Timestamp returns the header start time in seconds since the epoch.
	// Failed parses without a usable header report 0.
	Timestamp() int64
	isRecording()
}

// Parsed is a successfully parsed replay.
type Parsed struct {
	Header     Header
	Operations []Operation
}

// Timestamp implements Recording.
func (p *Parsed) Timestamp() int64 { return p.Header.Timestamp }

func (*Parsed) isRecording() {}

// Dummy stands for a replay the parser could not read.
type Dummy struct {
	TS int64 // header timestamp, 0 when unknown
}

// Timestamp implements Recording.
func (d *Dummy) Timestamp() int64 { return d.TS }

func (*Dummy) isRecording() {}

// Header is the zheader block of a parsed replay.
type Header struct {
	Timestamp int64 // seconds since the epoch
	WorldTime int64 // simulation time already elapsed when recording started
	Settings  GameSettings
}

// GameSettings holds the lobby settings recorded in the header.
type GameSettings struct {
	ResolvedMapID int
	RMSStrings    []string // raw map-script strings
	Players       []PlayerSettings
}

// PlayerSettings is one player slot as recorded in the header.
type PlayerSettings struct {
	Number         int    // in-game player number
	Name           string // self-reported display name
	ProfileID      string // stable per real participant
	CivID          int
	ColorID        int // 0-based
	ResolvedTeamID int // 1 means no team
}

// NoTeam is the resolved team id the header uses for players without a team.
const NoTeam = 1

// Operation is the sealed union of operation log entries.
type Operation interface{ isOperation() }

// Sync advances the simulation clock.
type Sync struct {
	Next          int64
	TimeIncrement int64
}

// Action wraps a player command.
type Action struct {
	Length int
	Data   ActionData
}

// OtherOperation is any operation kind this package does not interpret.
type OtherOperation struct {
	Kind string
}

func (Sync) isOperation()           {}
func (Action) isOperation()         {}
func (OtherOperation) isOperation() {}

// ActionData is the sealed union of action payloads.
type ActionData interface{ isActionData() }

// Resign is the payload of a resignation.
type Resign struct {
	PlayerID int
}

// OtherAction is any action payload other than Resign.
type OtherAction struct {
	Kind string
}

func (Resign) isActionData()      {}
func (OtherAction) isActionData() {}
