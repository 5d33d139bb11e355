package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/andrianarivo/haustiere/internal/core/ports"
)

type CatHandler struct {
	catService ports.CatService
}

func NewCatHandler(catService ports.CatService) *CatHandler {
	return &CatHandler{catService: catService}
}

// Create lists a new cat for adoption. ADMIN only (enforced by route RBAC).
//
// @Summary      Create a cat
// @Tags         cats
// @Accept       json
// @Produce      json
// @Param        body  body      createCatRequest  true  "Cat details"
// @Success      201   {object}  domain.Cat
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /cats [post]
func (h *CatHandler) Create(c echo.Context) error {
	var req createCatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cat, err := h.catService.Create(c.Request().Context(), ports.CreateCatInput{
		Name:  req.Name,
		Age:   req.Age,
		Breed: req.Breed,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, cat)
}

// FindAll returns every cat. Open to any authenticated user.
//
// @Summary      List cats
// @Tags         cats
// @Produce      json
// @Success      200  {array}  domain.Cat
// @Router       /cats [get]
func (h *CatHandler) FindAll(c echo.Context) error {
	cats, err := h.catService.FindAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cats)
}

// FindOne returns a single cat by id.
//
// @Summary      Get a cat
// @Tags         cats
// @Produce      json
// @Param        id   path      int  true  "Cat ID"
// @Success      200  {object}  domain.Cat
// @Failure      404  {object}  map[string]string
// @Router       /cats/{id} [get]
func (h *CatHandler) FindOne(c echo.Context) error {
	id, err := catID(c)
	if err != nil {
		return err
	}

	cat, err := h.catService.FindOne(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat)
}

// Update partially updates a cat. ADMIN only.
//
// @Summary      Update a cat
// @Tags         cats
// @Accept       json
// @Produce      json
// @Param        id    path      int               true  "Cat ID"
// @Param        body  body      updateCatRequest  true  "Fields to update"
// @Success      200   {object}  domain.Cat
// @Failure      404   {object}  map[string]string
// @Router       /cats/{id} [patch]
func (h *CatHandler) Update(c echo.Context) error {
	id, err := catID(c)
	if err != nil {
		return err
	}

	var req updateCatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cat, err := h.catService.Update(c.Request().Context(), id, ports.UpdateCatInput{
		Name:  req.Name,
		Age:   req.Age,
		Breed: req.Breed,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat)
}

// Remove deletes a cat listing. ADMIN only.
//
// @Summary      Delete a cat
// @Tags         cats
// @Produce      json
// @Param        id   path      int  true  "Cat ID"
// @Success      200  {object}  domain.Cat
// @Failure      404  {object}  map[string]string
// @Router       /cats/{id} [delete]
func (h *CatHandler) Remove(c echo.Context) error {
	id, err := catID(c)
	if err != nil {
		return err
	}

	cat, err := h.catService.Remove(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, cat)
}

// catID parses the :id path parameter.
func catID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid cat id")
	}
	return uint(id), nil
}
