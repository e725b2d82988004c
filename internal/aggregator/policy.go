package aggregator

import "gamesearch/internal/steam"

// Criticality says whether a source's failure invalidates its candidate.
type Criticality int

const (
	// Optional sources only omit their field when they fail
	Optional Criticality = iota
	// Mandatory sources drop the whole candidate when they fail
	Mandatory
)

// String implements fmt.Stringer
func (c Criticality) String() string {
	if c == Mandatory {
		return "mandatory"
	}
	return "optional"
}

// criticality is the static classification of every source the aggregator runs.
// apphover and protondb fill value fields of Record and must stay Mandatory.
var criticality = map[string]Criticality{
	steam.SourceAppHover: Mandatory,
	steam.SourceProtonDB: Mandatory,
	steam.SourceDLC:      Optional,
	steam.SourceDeck:     Optional,
}

// CriticalityOf returns the classification of source.
// Sources missing from the table are treated as Mandatory.
func CriticalityOf(source string) Criticality {
	c, ok := criticality[source]
	if !ok {
		return Mandatory
	}
	return c
}
