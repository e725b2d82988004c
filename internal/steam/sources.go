package steam

import (
	"fmt"

	"gamesearch/internal/fetcher"
)

// Source names, as used in logs, metrics and the criticality table.
const (
	SourceAppHover = "apphover"
	SourceProtonDB = "protondb"
	SourceDLC      = "dlc"
	SourceDeck     = "deck"
)

// AppHoverSource exposes AppHover as a fetcher.Source.
func (c *Client) AppHoverSource() fetcher.Source[AppHover] {
	return fetcher.NewFunc(SourceAppHover, c.AppHover)
}

// ProtonDBSource exposes ProtonDB as a fetcher.Source.
func (c *Client) ProtonDBSource() fetcher.Source[ProtonSummary] {
	return fetcher.NewFunc(SourceProtonDB, c.ProtonDB)
}

// DLCSource exposes DLCs as a fetcher.Source.
func (c *Client) DLCSource() fetcher.Source[DLCList] {
	return fetcher.NewFunc(SourceDLC, c.DLCs)
}

// DeckSource exposes DeckCompatibility as a fetcher.Source.
func (c *Client) DeckSource() fetcher.Source[DeckStatus] {
	return fetcher.NewFunc(SourceDeck, c.DeckCompatibility)
}

// HeaderImageURL is the CDN location of the app's header image.
func HeaderImageURL(id uint64) string {
	return fmt.Sprintf("https://cdn.akamai.steamstatic.com/steam/apps/%d/header.jpg", id)
}

// StoreURL is the app's store page.
func StoreURL(id uint64) string {
	return fmt.Sprintf("https://store.steampowered.com/app/%d/", id)
}

// SteamDBURL is the app's SteamDB page.
func SteamDBURL(id uint64) string {
	return fmt.Sprintf("https://steamdb.info/app/%d/", id)
}

// ProtonDBURL is the app's ProtonDB page.
func ProtonDBURL(id uint64) string {
	return fmt.Sprintf("https://protondb.com/app/%d/", id)
}
