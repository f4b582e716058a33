package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
)

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

// GraphQL serves the whole API at POST /graphql. Resolver errors come
// back in the standard "errors" array with HTTP 200, transport problems
// (bad JSON) are the only 4xx this endpoint produces.
type GraphQL struct {
	schema graphql.Schema
}

func NewGraphQL(schema graphql.Schema) *GraphQL {
	return &GraphQL{schema: schema}
}

func (h *GraphQL) Handle(c *gin.Context) {
	var req graphqlRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		Context:        c.Request.Context(),
	})

	c.JSON(http.StatusOK, result)
}
