package constants

import (
	"net/url"
	"strings"

	"github.com/Sterdizzy/ez-olx/internal/core/domain"
)

// SyntheticListings builds the canned demo listings substituted when real
// extraction yields nothing at all. The flavor follows the source domain:
// Brazilian searches get Brazilian real-estate data, other country domains
// get a generic European marketplace set.
func SyntheticListings(searchURL string) []domain.Listing {
	isBrazil := false
	if u, err := url.Parse(searchURL); err == nil {
		isBrazil = strings.HasSuffix(u.Hostname(), ".br")
	}

	if isBrazil {
		return []domain.Listing{
			{
				ID:           "mock-1",
				Title:        "Terreno em Santa Catarina - 1000m²",
				Price:        "R$ 180.000",
				Location:     "Imbituba, Santa Catarina",
				Description:  "Excelente terreno para construção",
				Images:       []string{PlaceholderImage(0)},
				Link:         searchURL,
				PostedDate:   "2024-01-15",
				Category:     "imovel",
				SquareMeters: "1000m²",
				Bedrooms:     "3 quartos",
			},
			{
				ID:           "mock-2",
				Title:        "Casa próxima ao mar - 3 quartos",
				Price:        "R$ 450.000",
				Location:     "Garopaba, Santa Catarina",
				Description:  "Casa com vista para o mar",
				Images:       []string{PlaceholderImage(1)},
				Link:         searchURL,
				PostedDate:   "2024-01-14",
				Category:     "imovel",
				SquareMeters: "150m²",
				Bedrooms:     "3 quartos",
			},
			{
				ID:           "mock-3",
				Title:        "Lote comercial - Centro da cidade",
				Price:        "R$ 320.000",
				Location:     "Tubarão, Santa Catarina",
				Description:  "Ótima localização comercial",
				Images:       []string{PlaceholderImage(2)},
				Link:         searchURL,
				PostedDate:   "2024-01-13",
				Category:     "imovel",
				SquareMeters: "500m²",
			},
		}
	}

	return []domain.Listing{
		{
			ID:          "mock-1",
			Title:       "Modern Apartment - City Center",
			Price:       "850.000 PLN",
			Location:    "Warsaw, Centrum",
			Description: "Beautiful apartment with great views",
			Images:      []string{PlaceholderImage(0)},
			Link:        searchURL,
			PostedDate:  "2024-01-15",
		},
		{
			ID:          "mock-2",
			Title:       "Gaming Laptop - RTX 4070",
			Price:       "4.500 PLN",
			Location:    "Krakow, Stare Miasto",
			Description: "High-performance gaming laptop",
			Images:      []string{PlaceholderImage(1)},
			Link:        searchURL,
			PostedDate:  "2024-01-14",
		},
		{
			ID:          "mock-3",
			Title:       "Vintage Bicycle - Excellent Condition",
			Price:       "1.200 PLN",
			Location:    "Gdansk, Centrum",
			Description: "Classic city bike in great shape",
			Images:      []string{PlaceholderImage(2)},
			Link:        searchURL,
			PostedDate:  "2024-01-13",
		},
	}
}
