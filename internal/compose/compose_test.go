package compose

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"gamesearch/internal/aggregator"
	"gamesearch/internal/steam"
	mocks "gamesearch/internal/testutil"
)

func fullRecord() aggregator.Record {
	dlcs := mocks.SampleDLCs()
	deck := steam.DeckVerified
	return aggregator.Record{
		Candidate: steam.Candidate{ID: 440, Name: "Team Fortress 2", Price: "Gratuito"},
		Details:   mocks.SampleDetails(),
		Proton:    mocks.SampleProton(),
		DLC:       &dlcs,
		Deck:      &deck,
	}
}

func TestCompose_AllSections(t *testing.T) {
	want := strings.Join([]string{
		"[Team Fortress 2](https://cdn.akamai.steamstatic.com/steam/apps/440/header.jpg) - Gratuito",
		"*Plataformas suportadas*: Windows, Linux",
		"*Compatibilidade com o Steam Deck*: ✅ Verificado",
		"*DLCs*\nSoundtrack: R$ 19.99 (50% off)",
		"*Status no ProtonDB*: Platina (42 relatórios)",
		"*Descrição*\nNine distinct classes provide a broad range of tactical abilities.",
		"*Avaliações*: Muito positivas (1000000 avaliações)",
		"*Lançamento*: 2007",
	}, "\n\n")

	assert.Equal(t, want, Compose(fullRecord()))
}

func TestCompose_OptionalSectionsOmitted(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*aggregator.Record)
		absent  []string
		present []string
	}{
		{
			name:    "no deck",
			mutate:  func(r *aggregator.Record) { r.Deck = nil },
			absent:  []string{"Steam Deck"},
			present: []string{"*Plataformas suportadas*", "*DLCs*"},
		},
		{
			name:    "no dlc",
			mutate:  func(r *aggregator.Record) { r.DLC = nil },
			absent:  []string{"*Plataformas suportadas*", "*DLCs*"},
			present: []string{"Steam Deck"},
		},
		{
			name:   "empty dlc list",
			mutate: func(r *aggregator.Record) { r.DLC = &steam.DLCList{Status: 1} },
			absent: []string{"*Plataformas suportadas*", "*DLCs*"},
		},
		{
			name: "dlc without platforms",
			mutate: func(r *aggregator.Record) {
				r.DLC = &steam.DLCList{Status: 1, Items: []steam.DLC{{Name: "Pack"}}}
			},
			absent:  []string{"*Plataformas suportadas*"},
			present: []string{"*DLCs*\nPack: R$ 0.00"},
		},
		{
			name:   "no optional fields",
			mutate: func(r *aggregator.Record) { r.DLC, r.Deck = nil, nil },
			absent: []string{"*Plataformas suportadas*", "*DLCs*", "Steam Deck"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := fullRecord()
			tt.mutate(&r)
			got := Compose(r)

			for _, s := range tt.absent {
				assert.NotContains(t, got, s)
			}
			for _, s := range tt.present {
				assert.Contains(t, got, s)
			}
			assert.NotContains(t, got, "\n\n\n", "no empty sections")
			assert.False(t, strings.HasSuffix(got, "\n"), "no trailing separator")
			assert.Contains(t, got, "*Status no ProtonDB*")
			assert.True(t, strings.HasPrefix(got, "[Team Fortress 2]"))
		})
	}
}

func TestCompose_Deterministic(t *testing.T) {
	r := fullRecord()
	assert.Equal(t, Compose(r), Compose(r))
}

func TestCompose_ZeroRecord(t *testing.T) {
	assert.NotPanics(t, func() {
		got := Compose(aggregator.Record{})
		assert.NotContains(t, got, "\n\n\n")
	})
}

func TestProtonTier(t *testing.T) {
	tests := map[string]string{
		"platinum": "Platina",
		"gold":     "Ouro",
		"silver":   "Prata",
		"bronze":   "Bronze",
		"borked":   "Quebrado",
		"pending":  "pending",
	}
	for in, want := range tests {
		assert.Equal(t, want, ProtonTier(in), in)
	}
}

func TestReleaseYear(t *testing.T) {
	assert.Equal(t, "2007", ReleaseYear("Lançamento: 10 out. 2007"))
	assert.Equal(t, "2020", ReleaseYear("2020"))
	assert.Equal(t, "", ReleaseYear(""))
	assert.Equal(t, "breve", ReleaseYear(" Em breve "))
}
