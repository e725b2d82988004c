package steam

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"gamesearch/internal/fetcher"
	"gamesearch/internal/ratelimit"
)

// DeckStatus is the Steam Deck compatibility category of an app.
type DeckStatus int

const (
	DeckUnknown DeckStatus = iota
	DeckUnsupported
	DeckPlayable
	DeckVerified
)

// String renders the category the way it is shown to users.
func (s DeckStatus) String() string {
	switch s {
	case DeckUnsupported:
		return "🚫 Não suportado"
	case DeckPlayable:
		return "ℹ️ Jogável"
	case DeckVerified:
		return "✅ Verificado"
	default:
		return "Desconhecido"
	}
}

// DeckCompatibility fetches the Steam Deck compatibility report for the app.
// Reports the store does not have, and categories we do not know, are Unavailable.
func (c *Client) DeckCompatibility(ctx context.Context, id uint64) fetcher.Result[DeckStatus] {
	params := c.localeParams()
	params["nAppID"] = strconv.FormatUint(id, 10)

	body, err := c.getRaw(ctx, ratelimit.APIStore, c.storeURL+"/saleaction/ajaxgetdeckappcompatibilityreport", params)
	if err != nil {
		return fetcher.Failed[DeckStatus](err)
	}

	if !gjson.Valid(body) {
		return fetcher.Failed[DeckStatus](fetcher.NewValidationError(
			fmt.Sprintf("malformed Deck compatibility report for app %d", id), nil))
	}

	report := gjson.Parse(body)
	if report.Get("success").Int() != 1 {
		return fetcher.Unavailable[DeckStatus]()
	}

	category := report.Get("results.resolved_category")
	if !category.Exists() {
		return fetcher.Failed[DeckStatus](fetcher.NewValidationError(
			fmt.Sprintf("Deck compatibility category missing for app %d", id), nil))
	}

	status := DeckStatus(category.Int())
	switch status {
	case DeckUnsupported, DeckPlayable, DeckVerified:
		return fetcher.Success(status)
	default:
		c.log.Warn("unknown Deck compatibility category",
			zap.Uint64("app_id", id),
			zap.Int64("category", category.Int()))
		return fetcher.Unavailable[DeckStatus]()
	}
}
