package api

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"tabular/internal/engine"
	"tabular/internal/models"
)

// Handler serves read-only reports over one loaded table. The table is
// swapped in once by the background loader; until then every data route
// answers 503. Handlers never mutate the table they read.
type Handler struct {
	mu    sync.RWMutex
	table *engine.Table
}

func NewHandler(table *engine.Table) *Handler {
	return &Handler{table: table}
}

// SetTable publishes a freshly loaded table to the live API.
func (h *Handler) SetTable(t *engine.Table) {
	h.mu.Lock()
	h.table = t
	h.mu.Unlock()
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/preview", h.GetPreview)
	api.GET("/summary", h.GetSummary)
	api.GET("/describe", h.GetDescribe)
	api.GET("/columns", h.GetColumns)
	api.GET("/rows", h.GetRows)
	api.GET("/range", h.GetRange)
	api.GET("/sort", h.GetSorted)
}

// --- HANDLERS ---

func (h *Handler) snapshot() (*engine.Table, error) {
	h.mu.RLock()
	t := h.table
	h.mu.RUnlock()
	if t == nil {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "dataset still loading")
	}
	return t, nil
}

func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// paginate trims a view to the requested window, keeping Total at the full
// row count.
func paginate(v *models.TableView, limit, offset int) *models.TableView {
	if offset > len(v.Rows) {
		offset = len(v.Rows)
	}
	end := offset + limit
	if end > len(v.Rows) {
		end = len(v.Rows)
	}
	v.Rows = v.Rows[offset:end]
	v.Index = v.Index[offset:end]
	v.Limit = limit
	v.Offset = offset
	return v
}

func httpError(err error) error {
	switch {
	case errors.Is(err, engine.ErrUnknownColumn), errors.Is(err, engine.ErrOutOfRange):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrParse):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return err
	}
}

func (h *Handler) GetPreview(c echo.Context) error {
	t, err := h.snapshot()
	if err != nil {
		return err
	}
	n := 5
	if raw := c.QueryParam("n"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v >= 0 {
			n = v
		}
	}
	return c.JSON(http.StatusOK, t.Preview(n).View())
}

func (h *Handler) GetSummary(c echo.Context) error {
	t, err := h.snapshot()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t.Summary())
}

func (h *Handler) GetDescribe(c echo.Context) error {
	t, err := h.snapshot()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t.Describe())
}

// GetColumns projects the named columns: /api/columns?names=user_id,region
func (h *Handler) GetColumns(c echo.Context) error {
	t, err := h.snapshot()
	if err != nil {
		return err
	}
	names := splitNames(c.QueryParam("names"))
	if len(names) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "names parameter is required")
	}
	sub, err := t.Project(names...)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sub.View())
}

// GetRows filters rows: /api/rows?filter=loyalty_score>7.5
func (h *Handler) GetRows(c echo.Context) error {
	t, err := h.snapshot()
	if err != nil {
		return err
	}
	expr := c.QueryParam("filter")
	if expr == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "filter parameter is required")
	}
	cond, err := engine.ParseCondition(expr)
	if err != nil {
		return httpError(err)
	}
	sub, err := t.FilterWhere(cond)
	if err != nil {
		return httpError(err)
	}
	limit, offset := getPaginationParams(c, sub.NumRows())
	return c.JSON(http.StatusOK, paginate(sub.View(), limit, offset))
}

// GetRange selects by index label, both ends inclusive:
// /api/range?start=0&end=4&names=user_id,age
func (h *Handler) GetRange(c echo.Context) error {
	t, err := h.snapshot()
	if err != nil {
		return err
	}
	start, err1 := strconv.Atoi(c.QueryParam("start"))
	end, err2 := strconv.Atoi(c.QueryParam("end"))
	if err1 != nil || err2 != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "start and end labels are required")
	}
	sub, err := t.LabelRange(start, end, splitNames(c.QueryParam("names"))...)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, sub.View())
}

// GetSorted reorders rows: /api/sort?by=purchase_amount&order=desc
func (h *Handler) GetSorted(c echo.Context) error {
	t, err := h.snapshot()
	if err != nil {
		return err
	}
	by := c.QueryParam("by")
	if by == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "by parameter is required")
	}
	sorted, err := t.Sort(by, c.QueryParam("order") != "desc")
	if err != nil {
		return httpError(err)
	}
	limit, offset := getPaginationParams(c, sorted.NumRows())
	return c.JSON(http.StatusOK, paginate(sorted.View(), limit, offset))
}

func splitNames(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			names = append(names, p)
		}
	}
	return names
}
