package server

import (
	gqlschema "github.com/Luismorlan/newsagg/server/graphql"
	"github.com/Luismorlan/newsagg/server/resolver"
	"github.com/Luismorlan/newsagg/utils"
	"github.com/gin-gonic/gin"
	"github.com/graph-gophers/graphql-go/relay"
	"gorm.io/gorm"
)

// GraphqlHandler is the universal handler for all GraphQL queries issued from
// client, by default it binds to a POST method.
func GraphqlHandler(db *gorm.DB) gin.HandlerFunc {
	schemaString := gqlschema.GetGQLSchema()
	h := &relay.Handler{
		Schema: utils.ParseGraphQLSchema(schemaString, resolver.NewRootResolver(db)),
	}

	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
