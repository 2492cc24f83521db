package source

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	coolmodName          = "product-first-part"
	coolmodPrice         = "text-price-total"
	coolmodStock         = "button-buy"
	pccomponentesPrice   = "baseprice"
	pccomponentesStock   = "btn btn-primary btn-lg buy GTM-addToCart buy-button js-article-buy"
	xtremmediaPrice      = "offerDetails article-list-pvp"
	xtremmediaStock      = "article-carrito2"
	xtremmediaFallback   = "precio"
	ibertronicaPriceCols = "col-6 ng-tns-c1-1 ng-star-inserted"
)

// Builtin returns the compiled-in registry of retailer pages
func Builtin() []Source {
	return []Source{
		{
			ID:          "coolmod",
			URL:         "https://www.coolmod.com/asus-turbo-geforce-rtx-3090-24gb-gddr6x-tarjeta-grafica-precio",
			NameMarker:  coolmodName,
			PriceMarker: coolmodPrice,
			StockMarker: coolmodStock,
		},
		{
			ID:          "coolmod2",
			URL:         "https://www.coolmod.com/evga-geforce-rtx-3090-xc3-black-gaming-24gb-gddr6x-tarjeta-grafica-precio",
			NameMarker:  coolmodName,
			PriceMarker: coolmodPrice,
			StockMarker: coolmodStock,
		},
		{
			ID:          "coolmod3",
			URL:         "https://www.coolmod.com/evga-geforce-rtx-3090-xc3-gaming-24gb-gddr6x-tarjeta-grafica-precio",
			NameMarker:  coolmodName,
			PriceMarker: coolmodPrice,
			StockMarker: coolmodStock,
		},
		{
			ID:          "coolmod4",
			URL:         "https://www.coolmod.com/evga-geforce-rtx-3090-xc3-ultra-gaming-24gb-gddr6x-tarjeta-grafica-precio",
			NameMarker:  coolmodName,
			PriceMarker: coolmodPrice,
			StockMarker: coolmodStock,
		},
		{
			ID:          "ibertronica",
			URL:         "https://www.ibertronica.es/asus-rtx-3090-turbo-24gb-gddr6x",
			NameMarker:  "mb-3 h2 product-title",
			PriceMarker: ibertronicaPriceCols,
			StockMarker: "btn btn-outline-primary btn-block m-0 mb-3",
		},
		{
			ID:                  "xtremmedia",
			URL:                 "https://www.xtremmedia.com/Asus_Turbo_GeForce_RTX_3090_24GB_GDDR6X.html",
			NameMarker:          "ficha-titulo",
			PriceMarker:         xtremmediaPrice,
			StockMarker:         xtremmediaStock,
			FallbackPriceMarker: xtremmediaFallback,
		},
		{
			ID:                  "xtremmedia2",
			URL:                 "https://www.xtremmedia.com/EVGA_GeForce_RTX_3090_XC3_Ultra_Gaming_24GB_GDDR6X.html",
			NameMarker:          "ficha-titulo",
			PriceMarker:         xtremmediaPrice,
			StockMarker:         xtremmediaStock,
			FallbackPriceMarker: xtremmediaFallback,
		},
		{
			ID:          "pccomponentes",
			URL:         "https://www.pccomponentes.com/asus-turbo-geforce-rtx-3090-24gb-gddr6x",
			NameMarker:  "h4",
			PriceMarker: pccomponentesPrice,
			StockMarker: pccomponentesStock,
		},
		{
			ID:          "pccomponentes2",
			URL:         "https://www.pccomponentes.com/evga-geforce-rtx-3090-xc3-black-gaming-24gb-gdddr6x",
			NameMarker:  "h4",
			PriceMarker: pccomponentesPrice,
			StockMarker: pccomponentesStock,
		},
		{
			ID:          "pccomponentes3",
			URL:         "https://www.pccomponentes.com/evga-geforce-rtx-3090-xc3-gaming-24gb-gddr6x",
			NameMarker:  "h4",
			PriceMarker: pccomponentesPrice,
			StockMarker: pccomponentesStock,
		},
		{
			ID:          "pccomponentes4",
			URL:         "https://www.pccomponentes.com/evga-geforce-rtx-3090-xc3-ultra-gaming-24gb-gddr6x",
			NameMarker:  "h4",
			PriceMarker: pccomponentesPrice,
			StockMarker: pccomponentesStock,
		},
	}
}

// LoadFile reads a registry from a YAML file. The file holds a list of
// sources with the same fields as the built-in table.
func LoadFile(path string) ([]Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var sources []Source
	if err := yaml.Unmarshal(data, &sources); err != nil {
		return nil, fmt.Errorf("failed to parse sources file: %w", err)
	}

	seen := make(map[string]bool, len(sources))
	for _, s := range sources {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if seen[s.ID] {
			return nil, fmt.Errorf("duplicate source id %q", s.ID)
		}
		seen[s.ID] = true
	}

	return sources, nil
}
