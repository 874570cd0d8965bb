package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/bimmills/portal/models"
	"github.com/bimmills/portal/service"
)

const fabricSelectQuery = `SELECT id, name, description, price, quantity, quality, image, file, category, features
		FROM fabrics`

func scanFabric(scanner interface{ Scan(...any) error }) (models.Fabric, error) {
	var f models.Fabric
	err := scanner.Scan(&f.ID, &f.Name, &f.Description, &f.Price, &f.Quantity, &f.Quality,
		&f.Image, &f.File, &f.Category, &f.Features)
	return f, err
}

func (h *Handler) getFabricByID(ctx context.Context, id int) (models.Fabric, error) {
	f, err := scanFabric(h.db.QueryRowContext(ctx, fabricSelectQuery+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return f, service.NotFound("Fabric")
	}
	return f, err
}

func (h *Handler) listFabrics(ctx context.Context) ([]models.Fabric, error) {
	rows, err := h.db.QueryContext(ctx, fabricSelectQuery+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fabrics := []models.Fabric{}
	for rows.Next() {
		f, err := scanFabric(rows)
		if err != nil {
			return nil, err
		}
		fabrics = append(fabrics, f)
	}
	return fabrics, rows.Err()
}

// ListCatalogue returns the public fabric catalogue
// @Summary      Fabric catalogue
// @Tags         shop
// @Produce      json
// @Success      200  {object}  Response{data=[]models.CatalogueEntry}
// @Router       /api/readymade-products/cat/all [get]
func (h *Handler) ListCatalogue(w http.ResponseWriter, r *http.Request) {
	fabrics, err := h.listFabrics(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	entries := make([]models.CatalogueEntry, 0, len(fabrics))
	for _, f := range fabrics {
		entries = append(entries, f.Entry())
	}
	writeJSON(w, http.StatusOK, entries)
}

// ListFabrics lists fabrics for administration
// @Summary      List fabrics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  Response{data=[]models.Fabric}
// @Router       /admin/fabrics [get]
// @Security     BearerAuth
func (h *Handler) ListFabrics(w http.ResponseWriter, r *http.Request) {
	fabrics, err := h.listFabrics(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fabrics)
}

// CreateFabric adds a fabric to the catalogue
// @Summary      Create fabric
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        fabric  body      models.FabricInput  true  "Fabric"
// @Success      200     {object}  Response{data=models.Fabric}
// @Failure      400     {object}  Response{error=string}
// @Router       /admin/fabrics [post]
// @Security     BearerAuth
func (h *Handler) CreateFabric(w http.ResponseWriter, r *http.Request) {
	var input models.FabricInput
	if err := h.decode(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	var id int
	err := h.db.QueryRowContext(r.Context(), `INSERT INTO fabrics (name, description, price, quantity, quality, image, file, category, features)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		input.Name, input.Description, input.Price, input.Quantity, input.Quality,
		input.Image, input.File, input.Category, input.Features).Scan(&id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	f, err := h.getFabricByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// UpdateFabric replaces a fabric
// @Summary      Update fabric
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id      path      int                 true  "Fabric ID"
// @Param        fabric  body      models.FabricInput  true  "Fabric"
// @Success      200     {object}  Response{data=models.Fabric}
// @Failure      404     {object}  Response{error=string}
// @Router       /admin/fabrics/{id} [put]
// @Security     BearerAuth
func (h *Handler) UpdateFabric(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var input models.FabricInput
	if err := h.decode(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	res, err := h.db.ExecContext(r.Context(), `UPDATE fabrics SET name = $1, description = $2, price = $3, quantity = $4,
		quality = $5, image = $6, file = $7, category = $8, features = $9 WHERE id = $10`,
		input.Name, input.Description, input.Price, input.Quantity, input.Quality,
		input.Image, input.File, input.Category, input.Features, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeServiceError(w, r, service.NotFound("Fabric"))
		return
	}

	f, err := h.getFabricByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, f)
}

// DeleteFabric removes a fabric
// @Summary      Delete fabric
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "Fabric ID"
// @Success      200  {object}  Response{data=Message}
// @Failure      404  {object}  Response{error=string}
// @Router       /admin/fabrics/{id} [delete]
// @Security     BearerAuth
func (h *Handler) DeleteFabric(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, "fabrics", "Fabric", "Fabric deleted")
}
