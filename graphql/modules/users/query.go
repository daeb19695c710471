package users

import (
	"github.com/graphql-go/graphql"
	"github.com/ortelius/cms-auth/restapi/modules/auth"
)

// GetQueryFields returns the user queries to be mounted in the root schema.
func GetQueryFields(svc *auth.Service) graphql.Fields {
	return graphql.Fields{
		"me": &graphql.Field{
			Type:        UserType,
			Description: "The authenticated user",
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return ResolveMe(p.Context, svc)
			},
		},
		"user": &graphql.Field{
			Type:        UserType,
			Description: "Look up any user by id (admin only)",
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id, _ := p.Args["id"].(string)
				return ResolveUser(p.Context, svc, id)
			},
		},
	}
}
