// Package content carries the studio's static catalog data, embedded at
// build time and parsed once on module registration.
package content

import (
	"embed"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/plexdi/studio/modules/website/domain/entities/portfolio"
	"github.com/plexdi/studio/modules/website/domain/entities/pricing"
	"github.com/plexdi/studio/modules/website/domain/entities/product"
)

//go:embed pricing.toml designers.toml products.toml
var files embed.FS

func decode(name string, out any) error {
	raw, err := files.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := toml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func PricingCategories() ([]pricing.Category, error) {
	var doc struct {
		Categories []pricing.Category `toml:"categories"`
	}
	if err := decode("pricing.toml", &doc); err != nil {
		return nil, err
	}
	return doc.Categories, nil
}

func Designers() ([]portfolio.Designer, error) {
	var doc struct {
		Designers []portfolio.Designer `toml:"designers"`
	}
	if err := decode("designers.toml", &doc); err != nil {
		return nil, err
	}
	return doc.Designers, nil
}

func Products() ([]product.Product, error) {
	var doc struct {
		Products []product.Product `toml:"products"`
	}
	if err := decode("products.toml", &doc); err != nil {
		return nil, err
	}
	return doc.Products, nil
}
