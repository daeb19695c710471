// Package restapi provides the main router and initialization for REST API endpoints.
package restapi

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	"github.com/ortelius/cms-auth/restapi/modules/auth"
)

// SetupRoutes configures all REST API routes and the GraphQL endpoint
// below basePath
func SetupRoutes(app *fiber.App, basePath string, svc *auth.Service, schema graphql.Schema) {
	api := app.Group(basePath)

	requireAuth := auth.RequireAuth(svc.Store(), svc.Tokens())

	// Auth Routes
	authGroup := api.Group("/auth")
	authGroup.Post("/signup", auth.Signup(svc))
	authGroup.Post("/signin", auth.Signin(svc))
	authGroup.Get("/me", requireAuth, auth.Me(svc))

	// GraphQL Route
	api.Post("/graphql", requireAuth, GraphQLHandler(schema))
}
