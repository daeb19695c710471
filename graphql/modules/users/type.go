// Package users defines the GraphQL types and queries for user accounts.
package users

import (
	"time"

	"github.com/graphql-go/graphql"
	"github.com/ortelius/cms-auth/model"
)

// RoleEnum lists the account roles
var RoleEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "Role",
	Values: graphql.EnumValueConfigMap{
		"admin":  &graphql.EnumValueConfig{Value: model.RoleAdmin},
		"author": &graphql.EnumValueConfig{Value: model.RoleAuthor},
		"reader": &graphql.EnumValueConfig{Value: model.RoleReader},
	},
})

// StatusEnum lists the account statuses
var StatusEnum = graphql.NewEnum(graphql.EnumConfig{
	Name: "Status",
	Values: graphql.EnumValueConfigMap{
		"pending":  &graphql.EnumValueConfig{Value: model.StatusPending},
		"approved": &graphql.EnumValueConfig{Value: model.StatusApproved},
		"banned":   &graphql.EnumValueConfig{Value: model.StatusBanned},
	},
})

// UserType is the public view of a user
var UserType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"name":         &graphql.Field{Type: graphql.String},
		"email":        &graphql.Field{Type: graphql.String},
		"role":         &graphql.Field{Type: RoleEnum},
		"status":       &graphql.Field{Type: StatusEnum},
		"profileImage": &graphql.Field{Type: graphql.String},
		"createdAt": &graphql.Field{
			Type: graphql.String,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				if u, ok := p.Source.(model.PublicUser); ok {
					return u.CreatedAt.Format(time.RFC3339), nil
				}
				return nil, nil
			},
		},
	},
})
