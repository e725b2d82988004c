// Package compose renders aggregated records as Markdown display text.
package compose

import (
	"fmt"
	"strings"

	"gamesearch/internal/aggregator"
	"gamesearch/internal/steam"
)

var protonTiers = map[string]string{
	"platinum": "Platina",
	"gold":     "Ouro",
	"silver":   "Prata",
	"bronze":   "Bronze",
	"borked":   "Quebrado",
}

// Compose renders r as display text. It is deterministic and never fails:
// an absent optional field only removes its section.
func Compose(r aggregator.Record) string {
	sections := []string{header(r.Candidate)}

	if s := platforms(r.DLC); s != "" {
		sections = append(sections, s)
	}
	if r.Deck != nil {
		sections = append(sections, "*Compatibilidade com o Steam Deck*: "+r.Deck.String())
	}
	if s := dlcList(r.DLC); s != "" {
		sections = append(sections, s)
	}

	sections = append(sections,
		fmt.Sprintf("*Status no ProtonDB*: %s (%d relatórios)", ProtonTier(r.Proton.TrendingTier), r.Proton.Total),
	)
	if d := strings.TrimSpace(r.Details.Description); d != "" {
		sections = append(sections, "*Descrição*\n"+d)
	}
	sections = append(sections,
		fmt.Sprintf("*Avaliações*: %s (%d avaliações)", r.Details.ReviewSummary.Summary, r.Details.ReviewSummary.Count),
	)
	if y := ReleaseYear(r.Details.ReleaseDate); y != "" {
		sections = append(sections, "*Lançamento*: "+y)
	}

	return strings.Join(sections, "\n\n")
}

func header(c steam.Candidate) string {
	return fmt.Sprintf("[%s](%s) - %s", c.Name, steam.HeaderImageURL(c.ID), c.Price)
}

// platforms uses the first DLC's platform flags, which is the closest the
// store API gets to a per-game platform list.
func platforms(list *steam.DLCList) string {
	if list == nil || len(list.Items) == 0 {
		return ""
	}
	names := list.Items[0].Platforms.String()
	if names == "" {
		return ""
	}
	return "*Plataformas suportadas*: " + names
}

func dlcList(list *steam.DLCList) string {
	if list == nil || len(list.Items) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("*DLCs*")
	for _, d := range list.Items {
		b.WriteString("\n")
		b.WriteString(strings.TrimSpace(d.Name))
		b.WriteString(": ")
		b.WriteString(d.PriceOverview.String())
	}
	return b.String()
}

// ProtonTier returns the display label of a ProtonDB tier.
// Unknown tiers are shown as is.
func ProtonTier(tier string) string {
	if label, ok := protonTiers[tier]; ok {
		return label
	}
	return tier
}

// ReleaseYear returns the last word of a store release string,
// e.g. "10 out. 2007" gives "2007".
func ReleaseYear(release string) string {
	release = strings.TrimSpace(release)
	if i := strings.LastIndexByte(release, ' '); i >= 0 {
		return release[i+1:]
	}
	return release
}
