package steam

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"gamesearch/internal/fetcher"
	"gamesearch/internal/ratelimit"
)

// ProtonSummary is ProtonDB's aggregate of user compatibility reports.
type ProtonSummary struct {
	Total        int    `json:"total"`
	Tier         string `json:"tier"`
	TrendingTier string `json:"trendingTier"`
}

// ProtonDB fetches the ProtonDB report summary for the app.
// ProtonDB answers 404 for apps nobody has reported on yet.
func (c *Client) ProtonDB(ctx context.Context, id uint64) fetcher.Result[ProtonSummary] {
	url := fmt.Sprintf("%s/api/v1/reports/summaries/%d.json", c.protonURL, id)

	var result ProtonSummary
	if err := c.getJSON(ctx, ratelimit.APIProtonDB, url, nil, &result); err != nil {
		var fe *fetcher.FetchError
		if errors.As(err, &fe) && fe.StatusCode == http.StatusNotFound {
			return fetcher.Unavailable[ProtonSummary]()
		}
		return fetcher.Failed[ProtonSummary](err)
	}

	if result.TrendingTier == "" {
		return fetcher.Failed[ProtonSummary](fetcher.NewValidationError(
			fmt.Sprintf("trending tier missing for app %d", id), nil))
	}

	return fetcher.Success(result)
}
