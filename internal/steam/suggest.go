package steam

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"gamesearch/internal/ratelimit"
)

// Candidate is one item returned by the store search for a query.
type Candidate struct {
	ID        uint64
	Name      string
	Price     string
	Thumbnail string
}

// suggestion is one entry of the /search/suggest response.
type suggestion struct {
	ID       string `json:"id"`
	Img      string `json:"img"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	SmallCap string `json:"small_cap"`
	Type     string `json:"type"`
}

// Suggest returns the store's search suggestions for term, in the store's order.
// A blank term yields no candidates without calling the store.
func (c *Client) Suggest(ctx context.Context, term string) ([]Candidate, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, nil
	}

	params := c.localeParams()
	params["realm"] = "1"
	params["origin"] = "https://store.steampowered.com"
	params["f"] = "jsonfull"
	params["term"] = term
	params["require_type"] = "game,software"

	var result []suggestion
	if err := c.getJSON(ctx, ratelimit.APIStore, c.storeURL+"/search/suggest", params, &result); err != nil {
		return nil, fmt.Errorf("failed to fetch suggestions for %q: %w", term, err)
	}

	candidates := make([]Candidate, 0, len(result))
	seen := make(map[uint64]bool, len(result))
	for _, s := range result {
		id, err := strconv.ParseUint(strings.TrimSpace(s.ID), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid app id %q in suggestions: %w", s.ID, err)
		}
		if seen[id] {
			c.log.Debug("skipping duplicate suggestion", zap.Uint64("app_id", id))
			continue
		}
		seen[id] = true

		candidates = append(candidates, Candidate{
			ID:        id,
			Name:      s.Name,
			Price:     s.Price,
			Thumbnail: s.Img,
		})
	}

	return candidates, nil
}
