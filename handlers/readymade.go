package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/bimmills/portal/models"
	"github.com/bimmills/portal/service"
)

const productSelectQuery = `SELECT id, name, quantity, quality, price FROM readymade_products`

func scanProduct(scanner interface{ Scan(...any) error }) (models.ReadymadeProduct, error) {
	var p models.ReadymadeProduct
	err := scanner.Scan(&p.ID, &p.Name, &p.Quantity, &p.Quality, &p.Price)
	return p, err
}

func (h *Handler) getProductByID(ctx context.Context, id int) (models.ReadymadeProduct, error) {
	p, err := scanProduct(h.db.QueryRowContext(ctx, productSelectQuery+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return p, service.NotFound("Product")
	}
	return p, err
}

func (h *Handler) listProducts(ctx context.Context) ([]models.ReadymadeProduct, error) {
	rows, err := h.db.QueryContext(ctx, productSelectQuery+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.ReadymadeProduct{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ListShopItems lists ready-made products for the shop
// @Summary      List shop items
// @Tags         shop
// @Produce      json
// @Success      200  {object}  Response{data=[]models.ShopItem}
// @Router       /api/readymade-products [get]
func (h *Handler) ListShopItems(w http.ResponseWriter, r *http.Request) {
	products, err := h.listProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	items := make([]models.ShopItem, 0, len(products))
	for _, p := range products {
		items = append(items, p.Item())
	}
	writeJSON(w, http.StatusOK, items)
}

// GetShopItem retrieves one shop item
// @Summary      Get shop item
// @Tags         shop
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  Response{data=models.ShopItem}
// @Failure      404  {object}  Response{error=string}
// @Router       /api/readymade-products/{id} [get]
func (h *Handler) GetShopItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	p, err := h.getProductByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p.Item())
}

// ListProducts lists ready-made products for administration
// @Summary      List products
// @Tags         admin
// @Produce      json
// @Success      200  {object}  Response{data=[]models.ReadymadeProduct}
// @Router       /admin/products [get]
// @Security     BearerAuth
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.listProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// CreateProduct adds a ready-made product
// @Summary      Create product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        product  body      models.ReadymadeProductInput  true  "Product"
// @Success      200      {object}  Response{data=models.ReadymadeProduct}
// @Failure      400      {object}  Response{error=string}
// @Router       /admin/products [post]
// @Security     BearerAuth
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input models.ReadymadeProductInput
	if err := h.decode(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	var id int
	err := h.db.QueryRowContext(r.Context(),
		"INSERT INTO readymade_products (name, quantity, quality, price) VALUES ($1, $2, $3, $4) RETURNING id",
		input.Name, input.Quantity, input.Quality, input.Price).Scan(&id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	p, err := h.getProductByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// UpdateProduct replaces a ready-made product
// @Summary      Update product
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id       path      int                           true  "Product ID"
// @Param        product  body      models.ReadymadeProductInput  true  "Product"
// @Success      200      {object}  Response{data=models.ReadymadeProduct}
// @Failure      404      {object}  Response{error=string}
// @Router       /admin/products/{id} [put]
// @Security     BearerAuth
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var input models.ReadymadeProductInput
	if err := h.decode(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	res, err := h.db.ExecContext(r.Context(),
		"UPDATE readymade_products SET name = $1, quantity = $2, quality = $3, price = $4 WHERE id = $5",
		input.Name, input.Quantity, input.Quality, input.Price, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeServiceError(w, r, service.NotFound("Product"))
		return
	}

	p, err := h.getProductByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// DeleteProduct removes a ready-made product
// @Summary      Delete product
// @Description  Orders that referenced the product keep their snapshot fields.
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  Response{data=Message}
// @Failure      404  {object}  Response{error=string}
// @Router       /admin/products/{id} [delete]
// @Security     BearerAuth
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, "readymade_products", "Product", "Product deleted")
}

// deleteByID removes one row of table by the {id} path parameter.
func (h *Handler) deleteByID(w http.ResponseWriter, r *http.Request, table, what, msg string) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	res, err := h.db.ExecContext(r.Context(), "DELETE FROM "+table+" WHERE id = $1", id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeServiceError(w, r, service.NotFound(what))
		return
	}
	writeJSON(w, http.StatusOK, Message{Message: msg})
}
