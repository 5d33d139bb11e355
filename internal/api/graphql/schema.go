// Package graphql exposes the cats resource over GraphQL. Requests ride the
// same HTTP stack and Authorization header as REST, so the echo Auth
// middleware has already authenticated the caller by the time a resolver
// runs; mutations re-run the authorization gate per operation.
package graphql

import (
	"github.com/graphql-go/graphql"

	"github.com/andrianarivo/haustiere/internal/api/metrics"
	"github.com/andrianarivo/haustiere/internal/core/domain"
	"github.com/andrianarivo/haustiere/internal/core/ports"
)

var catType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Cat",
	Fields: graphql.Fields{
		"id":     &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"name":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		"age":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
		"breed":  &graphql.Field{Type: graphql.String},
		"status": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
	},
})

var createCatInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CreateCatInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"age":   &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		"breed": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var updateCatInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "UpdateCatInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"id":    &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.Int)},
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.String},
		"age":   &graphql.InputObjectFieldConfig{Type: graphql.Int},
		"breed": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

// NewSchema builds the executable schema over the cat and auth services.
func NewSchema(cats ports.CatService, auth ports.AuthService) (graphql.Schema, error) {
	requireAdmin := func(p graphql.ResolveParams) error {
		user := UserFrom(p.Context)
		if user == nil {
			metrics.AuthFailuresTotal.WithLabelValues("graphql", "unauthenticated").Inc()
			return domain.ErrInvalidToken
		}
		if err := auth.Authorize(user.Role, domain.RoleAdmin); err != nil {
			metrics.AuthFailuresTotal.WithLabelValues("graphql", "forbidden").Inc()
			return err
		}
		return nil
	}

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"helloCat": &graphql.Field{
				Type: graphql.NewNonNull(graphql.String),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return "Hello, cat!", nil
				},
			},
			"cats": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(catType)),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return cats.FindAll(p.Context)
				},
			},
			"cat": &graphql.Field{
				Type: catType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id, _ := p.Args["id"].(int)
					return cats.FindOne(p.Context, uint(id))
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCat": &graphql.Field{
				Type: catType,
				Args: graphql.FieldConfigArgument{
					"createCatInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(createCatInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := requireAdmin(p); err != nil {
						return nil, err
					}
					input, _ := p.Args["createCatInput"].(map[string]interface{})
					name, _ := input["name"].(string)
					age, _ := input["age"].(int)
					breed, _ := input["breed"].(string)
					return cats.Create(p.Context, ports.CreateCatInput{Name: name, Age: age, Breed: breed})
				},
			},
			"updateCat": &graphql.Field{
				Type: catType,
				Args: graphql.FieldConfigArgument{
					"updateCatInput": &graphql.ArgumentConfig{Type: graphql.NewNonNull(updateCatInput)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := requireAdmin(p); err != nil {
						return nil, err
					}
					input, _ := p.Args["updateCatInput"].(map[string]interface{})
					id, _ := input["id"].(int)

					var update ports.UpdateCatInput
					if name, ok := input["name"].(string); ok {
						update.Name = &name
					}
					if age, ok := input["age"].(int); ok {
						update.Age = &age
					}
					if breed, ok := input["breed"].(string); ok {
						update.Breed = &breed
					}
					return cats.Update(p.Context, uint(id), update)
				},
			},
			"removeCat": &graphql.Field{
				Type: catType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if err := requireAdmin(p); err != nil {
						return nil, err
					}
					id, _ := p.Args["id"].(int)
					return cats.Remove(p.Context, uint(id))
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
