package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tienda_back_end/internal/handlers"
	"tienda_back_end/internal/middleware"
)

func Register(r *gin.Engine, gql *handlers.GraphQL, auth *handlers.Auth, images *handlers.Images, authMW *middleware.Auth) {
	r.Use(cors.Default())

	// The whole query/mutation surface lives on one endpoint.
	r.POST("/graphql", gql.Handle)

	api := r.Group("/api")
	api.POST("/auth/login", auth.Login)
	api.GET("/products/:id/image-url", images.SignedURL)

	admin := api.Group("/products")
	admin.Use(authMW.Required(), middleware.RequireAdmin)
	admin.POST("/:id/image", images.Upload)
}
