package steam

import (
	"context"
	"fmt"

	"gamesearch/internal/fetcher"
	"gamesearch/internal/ratelimit"
)

// AppHover is the summary the store shows when hovering over an app.
type AppHover struct {
	ReleaseDate   string        `json:"strReleaseDate"`
	Description   string        `json:"strDescription"`
	ReviewSummary ReviewSummary `json:"ReviewSummary"`
}

// ReviewSummary is the aggregated user review score.
type ReviewSummary struct {
	Summary string `json:"strReviewSummary"`
	Count   int    `json:"cReviews"`
}

// AppHover fetches the hover summary for the app.
func (c *Client) AppHover(ctx context.Context, id uint64) fetcher.Result[AppHover] {
	url := fmt.Sprintf("%s/apphoverpublic/%d/", c.storeURL, id)
	params := c.localeParams()
	params["json"] = "1"

	var result AppHover
	if err := c.getJSON(ctx, ratelimit.APIStore, url, params, &result); err != nil {
		return fetcher.Failed[AppHover](err)
	}

	if result.Description == "" && result.ReleaseDate == "" {
		return fetcher.Failed[AppHover](fetcher.NewValidationError(
			fmt.Sprintf("app hover details missing for app %d", id), nil))
	}

	return fetcher.Success(result)
}
