package utils

import (
	graphql "github.com/graph-gophers/graphql-go"
)

// ParseGraphQLSchema parses the schema string against the given root
// resolver. Field resolution falls back to exported struct fields so that
// plain view structs don't need one method per field.
func ParseGraphQLSchema(schemaString string, resolver interface{}) *graphql.Schema {
	return graphql.MustParseSchema(schemaString, resolver, graphql.UseFieldResolvers())
}
