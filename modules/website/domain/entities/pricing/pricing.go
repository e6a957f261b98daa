package pricing

import "github.com/Rhymond/go-money"

// Tier is one package within a service's pricing table.
type Tier struct {
	ID         string   `json:"id" toml:"id"`
	Title      string   `json:"title" toml:"title"`
	PricePence int64    `json:"price_pence" toml:"price_pence"`
	Summary    string   `json:"summary" toml:"summary"`
	Includes   []string `json:"includes" toml:"includes"`
	Excludes   []string `json:"excludes,omitempty" toml:"excludes"`
	BestFor    string   `json:"best_for" toml:"best_for"`
	Highlight  bool     `json:"highlight" toml:"highlight"`
}

func (t Tier) Price() *money.Money {
	return money.New(t.PricePence, money.GBP)
}

// PriceLabel renders the display price, e.g. "£25.00".
func (t Tier) PriceLabel() string {
	return t.Price().Display()
}

type Category struct {
	ID          string `json:"id" toml:"id"`
	Label       string `json:"label" toml:"label"`
	Description string `json:"description" toml:"description"`
	Tiers       []Tier `json:"tiers" toml:"tiers"`
}
