package steam

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"gamesearch/internal/fetcher"
	"gamesearch/internal/ratelimit"
)

// DLCList is the set of DLCs the store lists for an app.
type DLCList struct {
	Status int   `json:"status"`
	Items  []DLC `json:"dlc"`
}

// DLC is one downloadable content entry.
type DLC struct {
	ID            uint64        `json:"id"`
	Name          string        `json:"name"`
	PriceOverview PriceOverview `json:"price_overview"`
	Platforms     Platforms     `json:"platforms"`
}

// PriceOverview is a price in minor currency units.
type PriceOverview struct {
	Currency        string `json:"currency"`
	Final           int64  `json:"final"`
	DiscountPercent int64  `json:"discount_percent"`
}

// Platforms lists the operating systems a DLC supports.
type Platforms struct {
	Windows bool `json:"windows"`
	Mac     bool `json:"mac"`
	Linux   bool `json:"linux"`
}

var currencySymbols = map[string]string{
	"BRL": "R$",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
}

// String renders the price as "R$ 12.34", followed by the discount when there is one.
func (p PriceOverview) String() string {
	symbol, ok := currencySymbols[p.Currency]
	if !ok {
		symbol = p.Currency
	}
	if symbol == "" {
		symbol = "R$"
	}

	s := symbol + " " + strconv.FormatFloat(float64(p.Final)/100, 'f', 2, 64)
	if p.DiscountPercent > 0 {
		s += fmt.Sprintf(" (%d%% off)", p.DiscountPercent)
	}
	return s
}

// Names returns the supported platform names in a fixed order.
func (p Platforms) Names() []string {
	var names []string
	if p.Windows {
		names = append(names, "Windows")
	}
	if p.Mac {
		names = append(names, "macOS")
	}
	if p.Linux {
		names = append(names, "Linux")
	}
	return names
}

// String joins the supported platform names.
func (p Platforms) String() string {
	return strings.Join(p.Names(), ", ")
}

// DLCs fetches the DLC list for the app.
// The store answers with a non-1 status for apps it holds no DLC data for.
func (c *Client) DLCs(ctx context.Context, id uint64) fetcher.Result[DLCList] {
	params := c.localeParams()
	params["appid"] = strconv.FormatUint(id, 10)

	var result DLCList
	if err := c.getJSON(ctx, ratelimit.APIStore, c.storeURL+"/api/dlcforapp/", params, &result); err != nil {
		return fetcher.Failed[DLCList](err)
	}

	if result.Status != 1 {
		return fetcher.Unavailable[DLCList]()
	}

	return fetcher.Success(result)
}
