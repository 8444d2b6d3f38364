package punch

// Stage is the derived position in the daily punch cycle. It is never
// stored: it is recomputed from the day's events on every read.
type Stage string

const (
	StageNotStarted Stage = "notStarted"
	StageClockedIn  Stage = "clockedIn"
	StageOnBreak    Stage = "onBreak"
	StageBreakEnded Stage = "breakEnded"
	StageClockedOut Stage = "clockedOut"
)

// DeriveStage reconstructs the current stage from one day's events.
// Presence wins over ordering so that manual backfills (which may
// arrive out of order) still land on a sensible stage.
func DeriveStage(dayEvents []PunchEvent) Stage {
	var hasIn, hasBreak, hasEndBreak, hasOut bool
	for _, e := range dayEvents {
		switch e.Kind {
		case KindIn:
			hasIn = true
		case KindBreak:
			hasBreak = true
		case KindEndBreak:
			hasEndBreak = true
		case KindOut:
			hasOut = true
		}
	}

	switch {
	case hasOut:
		return StageClockedOut
	case hasEndBreak:
		return StageBreakEnded
	case hasBreak:
		return StageOnBreak
	case hasIn:
		return StageClockedIn
	default:
		return StageNotStarted
	}
}

// CanTransition reports whether a punch of the given kind is legal from
// the current stage. The cycle is fixed: in → break → endBreak → out,
// with out also allowed straight from clockedIn.
func CanTransition(stage Stage, kind string) bool {
	switch kind {
	case KindIn:
		return stage == StageNotStarted
	case KindBreak:
		return stage == StageClockedIn
	case KindEndBreak:
		return stage == StageOnBreak
	case KindOut:
		return stage == StageClockedIn || stage == StageBreakEnded
	default:
		return false
	}
}
