package main

import (
	"context"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"tienda_back_end/internal/cache"
	"tienda_back_end/internal/config"
	"tienda_back_end/internal/database"
	"tienda_back_end/internal/geo"
	"tienda_back_end/internal/graph"
	"tienda_back_end/internal/handlers"
	"tienda_back_end/internal/middleware"
	"tienda_back_end/internal/orders"
	"tienda_back_end/internal/routes"
	"tienda_back_end/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("configuration failed")
	}

	dbs, err := database.Connect(context.Background(), cfg)
	if err != nil {
		log.WithError(err).Fatal("database connection failed")
	}

	users := store.NewMongoUserStore(dbs.Mongo)
	products := cache.NewProductCache(store.NewMongoProductStore(dbs.Mongo), dbs.Redis)
	orderStore := store.NewMongoOrderStore(dbs.Mongo)

	origin := geo.Point{Lat: cfg.StoreLat, Lon: cfg.StoreLon}
	workflow := orders.NewService(products, orderStore, origin, cfg.MaxRadiusKm)

	schema, err := graph.NewSchema(&graph.Resolver{
		Users:    users,
		Products: products,
		Orders:   orderStore,
		Workflow: workflow,
	})
	if err != nil {
		log.WithError(err).Fatal("schema construction failed")
	}

	r := gin.Default()
	routes.Register(r,
		handlers.NewGraphQL(schema),
		handlers.NewAuth(users, cfg.JWTSecret),
		handlers.NewImages(products, dbs.MinIO, cfg.MinioBucket),
		middleware.NewAuth(cfg.JWTSecret),
	)

	log.WithFields(log.Fields{"port": cfg.Port, "radiusKm": cfg.MaxRadiusKm}).Info("server listening")
	if err := r.Run(":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
