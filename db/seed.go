package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

type catalogueFabric struct {
	Name        string
	Description string
	File        string
	Category    string
	Features    string
	Image       string
}

var catalogue = []catalogueFabric{
	{
		Name:        "Shirting Fabrics",
		Description: "Premium shirting fabrics for schools, corporates and uniforms",
		File:        "bimmills_catalogue/P.V.SUITING (1).pdf",
		Category:    "Shirting",
		Features:    "Wrinkle-Free,Breathable,Easy Care",
		Image:       "https://images.unsplash.com/photo-1558769132-cb1aea3c6eaa?w=800&q=80",
	},
	{
		Name:        "Suiting Fabrics",
		Description: "Durable suiting fabrics with elegant finishes",
		File:        "bimmills_catalogue/P.V.SUITING (2).pdf",
		Category:    "Suiting",
		Features:    "Premium Quality,Wrinkle Resistant,Professional Look",
		Image:       "https://images.unsplash.com/photo-1591047139829-d91aecb6caea?w=800&q=80",
	},
	{
		Name:        "Yarn Dyed Fabrics",
		Description: "Colorfast yarn dyed fabrics with rich texture",
		File:        "bimmills_catalogue/ENIGMA YARN DYED SUTING.pdf",
		Category:    "Premium",
		Features:    "Colorfast,Rich Texture,Long Lasting",
		Image:       "https://images.unsplash.com/photo-1604006852748-903fccbc4019?w=800&q=80",
	},
	{
		Name:        "Cotton Drill",
		Description: "Heavy-duty cotton drill fabrics for industrial wear",
		File:        "bimmills_catalogue/100 COTTON DRILL.pdf",
		Category:    "Industrial",
		Features:    "Heavy Duty,100% Cotton,Durable",
		Image:       "https://images.unsplash.com/photo-1586105251261-72a756497a11?w=800&q=80",
	},
	{
		Name:        "Matty Fabrics",
		Description: "Breathable matty fabrics for comfort uniforms",
		File:        "bimmills_catalogue/E-18 YARN DYED MATTY.pdf",
		Category:    "Comfort",
		Features:    "Breathable,Comfortable,Uniform Ready",
		Image:       "https://images.unsplash.com/photo-1519710164239-da123dc03ef4?w=800&q=80",
	},
	{
		Name:        "Enigma Series",
		Description: "Premium enigma yarn dyed exclusive collection",
		File:        "bimmills_catalogue/ENIGMA YARN DYED SUTING.pdf",
		Category:    "Exclusive",
		Features:    "Exclusive,Premium,Limited Edition",
		Image:       "https://images.unsplash.com/photo-1509631179647-0177331693ae?w=800&q=80",
	},
}

// SeedCatalogue inserts the standard fabric catalogue entries that are not
// present yet, matched by name. It returns the number of rows inserted.
func SeedCatalogue(ctx context.Context, db *sql.DB) (int, error) {
	inserted := 0
	for _, f := range catalogue {
		var id int
		err := db.QueryRowContext(ctx, "SELECT id FROM fabrics WHERE name = $1", f.Name).Scan(&id)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return inserted, fmt.Errorf("checking fabric %q: %w", f.Name, err)
		}

		_, err = db.ExecContext(ctx, `INSERT INTO fabrics (name, description, price, quantity, quality, image, file, category, features)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			f.Name, f.Description, 0, "In Stock", "Premium", f.Image, f.File, f.Category, f.Features)
		if err != nil {
			return inserted, fmt.Errorf("seeding fabric %q: %w", f.Name, err)
		}
		slog.Info("seeded catalogue fabric", "name", f.Name)
		inserted++
	}
	return inserted, nil
}
