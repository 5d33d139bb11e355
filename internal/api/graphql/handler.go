package graphql

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"

	"github.com/andrianarivo/haustiere/internal/api/middleware"
)

// request is the standard GraphQL-over-HTTP POST body.
type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler executes GraphQL operations. It runs behind the echo Auth
// middleware; the authenticated user is copied onto the resolver context so
// mutations can consult the authorization gate.
type Handler struct {
	schema graphql.Schema
}

func NewHandler(schema graphql.Schema) *Handler {
	return &Handler{schema: schema}
}

func (h *Handler) Execute(c echo.Context) error {
	var req request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing query")
	}

	ctx := c.Request().Context()
	if user := middleware.CurrentUser(c); user != nil {
		ctx = WithUser(ctx, user)
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        ctx,
	})

	// GraphQL signals operation failures inside the response body; the HTTP
	// status stays 200 for executed operations.
	return c.JSON(http.StatusOK, result)
}
