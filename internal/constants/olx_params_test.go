package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsAllowedHost(t *testing.T) {
	tests := []struct {
		hostname string
		want     bool
	}{
		{"olx.com.br", true},
		{"www.olx.com.br", true},
		{"sc.olx.com.br", true},
		{"olx.pl", true},
		{"www.olx.pt", true},
		{"olx.com.ar", true},
		// substring matches must not pass
		{"olx.com.br.evil.example", false},
		{"notolx.com.br", false},
		{"example.com", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.hostname, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAllowedHost(tt.hostname))
		})
	}
}

func TestIsAllowedURL(t *testing.T) {
	assert.True(t, IsAllowedURL("https://www.olx.com.br/imoveis?q=casa"))
	assert.False(t, IsAllowedURL("https://example.com/?u=olx.com.br"))
	assert.False(t, IsAllowedURL("://broken"))
}

func TestPlaceholderImageRotation(t *testing.T) {
	assert.Equal(t, PlaceholderImage(0), PlaceholderImage(5), "pool wraps around")
	assert.NotEqual(t, PlaceholderImage(0), PlaceholderImage(1))
	assert.NotEmpty(t, PlaceholderImage(-3), "negative index still yields an image")
}

func TestSyntheticListingsFlavor(t *testing.T) {
	brazilian := SyntheticListings("https://www.olx.com.br/imoveis")
	assert.Len(t, brazilian, 3)
	assert.Contains(t, brazilian[0].Price, "R$")

	polish := SyntheticListings("https://www.olx.pl/oferty")
	assert.Len(t, polish, 3)
	assert.Contains(t, polish[0].Price, "PLN")

	for _, l := range append(brazilian, polish...) {
		assert.NotEmpty(t, l.ID)
		assert.NotEmpty(t, l.Images)
	}
}
