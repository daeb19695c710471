// Package graphql assembles the GraphQL schema from its modules.
package graphql

import (
	"github.com/graphql-go/graphql"
	"github.com/ortelius/cms-auth/graphql/modules/users"
	"github.com/ortelius/cms-auth/restapi/modules/auth"
)

// CreateSchema builds the root schema
func CreateSchema(svc *auth.Service) (graphql.Schema, error) {
	fields := graphql.Fields{}
	for name, field := range users.GetQueryFields(svc) {
		fields[name] = field
	}

	rootQuery := graphql.NewObject(graphql.ObjectConfig{
		Name:   "Query",
		Fields: fields,
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: rootQuery,
	})
}
