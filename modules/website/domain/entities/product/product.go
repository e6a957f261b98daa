package product

import (
	"sort"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Variant is one purchasable tier of a product. PricePence is stored as
// minor units and rendered through go-money.
type Variant struct {
	ID         string `json:"id" toml:"id"`
	Name       string `json:"name" toml:"name"`
	PricePence int64  `json:"price_pence" toml:"price_pence"`
	PayLink    string `json:"pay_link,omitempty" toml:"pay_link"`
}

func (v Variant) Price() *money.Money {
	return money.New(v.PricePence, money.GBP)
}

type Product struct {
	ID             string    `json:"id" toml:"id"`
	Slug           string    `json:"slug" toml:"slug"`
	Title          string    `json:"title" toml:"title"`
	Subtitle       string    `json:"subtitle,omitempty" toml:"subtitle"`
	Category       string    `json:"category" toml:"category"`
	Tags           []string  `json:"tags" toml:"tags"`
	Cover          string    `json:"cover" toml:"cover"`
	Gallery        []string  `json:"gallery" toml:"gallery"`
	Includes       []string  `json:"includes" toml:"includes"`
	Software       []string  `json:"software" toml:"software"`
	LicenseSummary string    `json:"license_summary" toml:"license_summary"`
	Variants       []Variant `json:"variants" toml:"variants"`
	Featured       bool      `json:"featured" toml:"featured"`
	UpdatedAt      string    `json:"updated_at" toml:"updated_at"`
}

// MinPrice is the cheapest variant's price, the figure shown on product
// cards.
func (p Product) MinPrice() *money.Money {
	if len(p.Variants) == 0 {
		return money.New(0, money.GBP)
	}
	min := p.Variants[0].PricePence
	for _, v := range p.Variants[1:] {
		if v.PricePence < min {
			min = v.PricePence
		}
	}
	return money.New(min, money.GBP)
}

func (p Product) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

type SortOrder string

const (
	SortFeatured  SortOrder = "featured"
	SortNew       SortOrder = "new"
	SortPriceAsc  SortOrder = "price-asc"
	SortPriceDesc SortOrder = "price-desc"
)

func ParseSortOrder(raw string) SortOrder {
	switch SortOrder(raw) {
	case SortNew, SortPriceAsc, SortPriceDesc:
		return SortOrder(raw)
	}
	return SortFeatured
}

type Filter struct {
	Query string
	Tag   string
	Sort  SortOrder
}

// Apply narrows and orders the catalog. The text query matches title
// and subtitle, tolerating near-misses; tag filtering is exact.
func Apply(items []Product, f Filter) []Product {
	out := make([]Product, 0, len(items))
	query := strings.TrimSpace(strings.ToLower(f.Query))
	for _, item := range items {
		if query != "" {
			haystack := strings.ToLower(item.Title + " " + item.Subtitle)
			if !strings.Contains(haystack, query) && !fuzzy.Match(query, haystack) {
				continue
			}
		}
		if f.Tag != "" && !item.HasTag(f.Tag) {
			continue
		}
		out = append(out, item)
	}

	switch f.Sort {
	case SortNew:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].UpdatedAt > out[j].UpdatedAt
		})
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].MinPrice().Amount() < out[j].MinPrice().Amount()
		})
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].MinPrice().Amount() > out[j].MinPrice().Amount()
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Featured && !out[j].Featured
		})
	}
	return out
}
