package olxfetcher

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sterdizzy/ez-olx/internal/contextkeys"
)

const fixturePage = `
<html><body>
<div id="results">
  <div class="olx-adcard">
    <a data-testid="adcard-link" href="/anuncio/terreno-imbituba-123">
      <img data-src="https://img.olx.com.br/images/terreno.webp" src="/placeholder.svg">
      <h2 class="olx-adcard__title">Terreno em Imbituba - 1000m²</h2>
      <span class="olx-adcard__price">R$ 180.000</span>
      <span class="olx-adcard__location">📍 Imbituba, Santa Catarina</span>
      <span class="olx-adcard__date">Hoje, 14:02</span>
    </a>
  </div>
  <div class="olx-adcard">
    <a data-testid="adcard-link" href="https://www.olx.com.br/anuncio/casa-456">
      <img src="https://img.olx.com.br/images/casa.webp">
      <h2 class="olx-adcard__title">Casa com 3 quartos perto do mar</h2>
      <span class="olx-adcard__price">R$ 450.000</span>
      <span class="olx-adcard__location">Garopaba, Santa Catarina</span>
      <span class="olx-adcard__date">Ontem, 09:15</span>
    </a>
  </div>
  <div class="olx-adcard">
    <a href="/anuncio/lote-789">
      <span class="olx-adcard__price">R$ 320.000</span>
      <span class="olx-adcard__location">Tubarão, Santa Catarina</span>
    </a>
  </div>
</div>
</body></html>`

func TestExtractPageFixture(t *testing.T) {
	logger := contextkeys.LoggerFromContext(t.Context())

	listings, err := ExtractPage([]byte(fixturePage), "https://www.olx.com.br/imoveis/estado-sc", 1, logger)
	require.NoError(t, err)
	require.Len(t, listings, 3)

	first := listings[0]
	assert.Equal(t, "Terreno em Imbituba - 1000m²", first.Title)
	assert.Equal(t, "R$ 180.000", first.Price)
	assert.Equal(t, "Imbituba, Santa Catarina", first.Location)
	assert.Equal(t, "https://www.olx.com.br/anuncio/terreno-imbituba-123", first.Link)
	require.Len(t, first.Images, 1)
	assert.Equal(t, "https://img.olx.com.br/images/terreno.webp", first.Images[0], "lazy-load attribute must win over the placeholder src")
	assert.Equal(t, "1000m²", first.SquareMeters)

	second := listings[1]
	assert.Equal(t, "Casa com 3 quartos perto do mar", second.Title)
	assert.Equal(t, "https://www.olx.com.br/anuncio/casa-456", second.Link, "absolute hrefs pass through unchanged")
	assert.Equal(t, "3 quartos", second.Bedrooms)
	assert.Equal(t, "Casa com 3 quartos perto do mar", second.Description, "description defaults to the title")

	// Title-less card survives on price alone.
	third := listings[2]
	assert.Equal(t, "Untitled", third.Title)
	assert.Equal(t, "R$ 320.000", third.Price)
	// no image of its own; the neighborhood expansion borrows one from the
	// surrounding grid, so the only guarantee is non-emptiness
	require.Len(t, third.Images, 1)
	assert.NotEmpty(t, third.Images[0])
}

func TestExtractPageRejectsNoiseCards(t *testing.T) {
	logger := contextkeys.LoggerFromContext(t.Context())

	html := `<html><body>
		<div class="olx-adcard"><span class="olx-adcard__footer">anúncio patrocinado</span></div>
		<div class="olx-adcard">
			<h2 class="olx-adcard__title">Apartamento no centro</h2>
			<span class="olx-adcard__price">R$ 950,00</span>
		</div>
	</body></html>`

	listings, err := ExtractPage([]byte(html), "https://www.olx.com.br/", 1, logger)
	require.NoError(t, err)
	require.Len(t, listings, 1, "card with neither title nor price is noise")
	assert.Equal(t, "Apartamento no centro", listings[0].Title)
}

func TestExtractPageNoContainers(t *testing.T) {
	logger := contextkeys.LoggerFromContext(t.Context())

	listings, err := ExtractPage([]byte("<html><body><p>blocked</p></body></html>"), "https://www.olx.com.br/", 1, logger)
	require.NoError(t, err)
	assert.Empty(t, listings, "unparseable page yields no listings, not an error")
}

func TestExtractPageUniqueIDs(t *testing.T) {
	logger := contextkeys.LoggerFromContext(t.Context())

	listings, err := ExtractPage([]byte(fixturePage), "https://www.olx.com.br/", 2, logger)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i, l := range listings {
		assert.False(t, seen[l.ID], "duplicate id %s", l.ID)
		seen[l.ID] = true
		assert.Contains(t, l.ID, fmt.Sprintf("olx-2-%d-", i))
	}
}
