package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/bimmills/portal/models"
	"github.com/bimmills/portal/service"
)

const employeeSelectQuery = `SELECT id, name, email, phone, position, salary, joined_date FROM employees`

func scanEmployee(scanner interface{ Scan(...any) error }) (models.Employee, error) {
	var e models.Employee
	err := scanner.Scan(&e.ID, &e.Name, &e.Email, &e.Phone, &e.Position, &e.Salary, &e.JoinedDate)
	return e, err
}

func (h *Handler) getEmployeeByID(ctx context.Context, id int) (models.Employee, error) {
	e, err := scanEmployee(h.db.QueryRowContext(ctx, employeeSelectQuery+" WHERE id = $1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return e, service.NotFound("Employee")
	}
	return e, err
}

// ListEmployees lists staff
// @Summary      List employees
// @Tags         admin
// @Produce      json
// @Success      200  {object}  Response{data=[]models.Employee}
// @Router       /admin/employees [get]
// @Security     BearerAuth
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.QueryContext(r.Context(), employeeSelectQuery+" ORDER BY id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	defer rows.Close()

	employees := []models.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		employees = append(employees, e)
	}
	writeJSON(w, http.StatusOK, employees)
}

// CreateEmployee adds a staff record
// @Summary      Create employee
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        employee  body      models.EmployeeInput  true  "Employee"
// @Success      200       {object}  Response{data=models.Employee}
// @Failure      400       {object}  Response{error=string}
// @Router       /admin/employees [post]
// @Security     BearerAuth
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var input models.EmployeeInput
	if err := h.decode(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	var id int
	err := h.db.QueryRowContext(r.Context(), `INSERT INTO employees (name, email, phone, position, salary, joined_date)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		input.Name, input.Email, input.Phone, input.Position, input.Salary, time.Now().UTC()).Scan(&id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	e, err := h.getEmployeeByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// UpdateEmployee replaces a staff record
// @Summary      Update employee
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id        path      int                   true  "Employee ID"
// @Param        employee  body      models.EmployeeInput  true  "Employee"
// @Success      200       {object}  Response{data=models.Employee}
// @Failure      404       {object}  Response{error=string}
// @Router       /admin/employees/{id} [put]
// @Security     BearerAuth
func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var input models.EmployeeInput
	if err := h.decode(r, &input); err != nil {
		writeServiceError(w, r, err)
		return
	}

	res, err := h.db.ExecContext(r.Context(),
		"UPDATE employees SET name = $1, email = $2, phone = $3, position = $4, salary = $5 WHERE id = $6",
		input.Name, input.Email, input.Phone, input.Position, input.Salary, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		writeServiceError(w, r, service.NotFound("Employee"))
		return
	}

	e, err := h.getEmployeeByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// DeleteEmployee removes a staff record
// @Summary      Delete employee
// @Tags         admin
// @Produce      json
// @Param        id   path      int  true  "Employee ID"
// @Success      200  {object}  Response{data=Message}
// @Failure      404  {object}  Response{error=string}
// @Router       /admin/employees/{id} [delete]
// @Security     BearerAuth
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	h.deleteByID(w, r, "employees", "Employee", "Employee deleted")
}
