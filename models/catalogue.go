package models

import "strings"

// Fabric is a bulk catalogue item.
type Fabric struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Price       *int    `json:"price"`
	Quantity    *string `json:"quantity"`
	Quality     *string `json:"quality"`
	Image       *string `json:"image"`
	File        *string `json:"file"`
	Category    *string `json:"category"`
	Features    *string `json:"features"` // comma separated
}

// FabricInput is used for creating/updating fabrics.
type FabricInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       int     `json:"price"`
	Quantity    *string `json:"quantity"`
	Quality     *string `json:"quality"`
	Image       *string `json:"image"`
	File        *string `json:"file"`
	Category    *string `json:"category"`
	Features    *string `json:"features"`
}

// CatalogueEntry is the public view of a fabric.
type CatalogueEntry struct {
	ID       int      `json:"id"`
	Title    string   `json:"title"`
	Desc     string   `json:"desc"`
	Category string   `json:"category"`
	Features []string `json:"features"`
	Image    string   `json:"image"`
	File     string   `json:"file"`
}

// Entry converts a fabric to its catalogue view.
func (f Fabric) Entry() CatalogueEntry {
	e := CatalogueEntry{
		ID:       f.ID,
		Title:    f.Name,
		Desc:     deref(f.Description),
		Category: deref(f.Category),
		Image:    deref(f.Image),
		File:     deref(f.File),
		Features: []string{},
	}
	for _, feat := range strings.Split(deref(f.Features), ",") {
		if feat = strings.TrimSpace(feat); feat != "" {
			e.Features = append(e.Features, feat)
		}
	}
	return e
}

// ReadymadeProduct is a shop item.
type ReadymadeProduct struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Quality  string `json:"quality"`
	Price    *int   `json:"price"`
}

// ReadymadeProductInput is used for creating/updating shop items.
type ReadymadeProductInput struct {
	Name     string `json:"name" validate:"required"`
	Quantity string `json:"quantity" validate:"required"`
	Quality  string `json:"quality" validate:"required"`
	Price    int    `json:"price"`
}

// ShopItem is the public view of a ready-made product.
type ShopItem struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Quality  string `json:"quality"`
	Price    int    `json:"price"`
	Image    string `json:"image"`
}

const placeholderImage = "/images/placeholder.jpg"

// Item converts a product to its shop view, filling display defaults.
func (p ReadymadeProduct) Item() ShopItem {
	item := ShopItem{
		ID:       p.ID,
		Name:     p.Name,
		Quantity: p.Quantity,
		Quality:  p.Quality,
		Image:    placeholderImage,
	}
	if item.Quantity == "" {
		item.Quantity = "1 unit"
	}
	if item.Quality == "" {
		item.Quality = "Standard"
	}
	if p.Price != nil {
		item.Price = *p.Price
	}
	return item
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
