package aggregator

import "gamesearch/internal/steam"

// Record is the merged result of every source query for one candidate.
// Mandatory sources are plain values; optional sources are nil when absent.
// A Record is only built once every mandatory source succeeded.
type Record struct {
	Candidate steam.Candidate

	Details steam.AppHover
	Proton  steam.ProtonSummary

	DLC  *steam.DLCList
	Deck *steam.DeckStatus
}
