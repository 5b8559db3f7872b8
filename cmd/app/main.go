package main

import (
	"database/sql"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/mystore/storefront-backend/internal/cart"
	"github.com/mystore/storefront-backend/internal/collection"
	"github.com/mystore/storefront-backend/internal/config"
	"github.com/mystore/storefront-backend/internal/customer"
	"github.com/mystore/storefront-backend/internal/events"
	"github.com/mystore/storefront-backend/internal/order"
	"github.com/mystore/storefront-backend/internal/product"
	"github.com/mystore/storefront-backend/internal/review"
	"github.com/mystore/storefront-backend/internal/user"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("invalid configuration")
	}
	setupLogging(cfg.LogLevel)

	db, err := openDB(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("could not connect to postgres")
	}
	defer db.Close()

	if err := runMigrations(db, cfg.MigrationsDir); err != nil {
		log.WithError(err).Fatal("could not run migrations")
	}

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	bus := events.NewBus()
	bus.Subscribe(events.OrderCreated, events.SubscriberFunc(func(event string, payload any) error {
		ord, ok := payload.(order.Order)
		if !ok {
			return fmt.Errorf("unexpected payload %T", payload)
		}
		log.WithFields(log.Fields{
			"order_id": ord.ID,
			"customer": ord.CustomerID,
			"items":    len(ord.Items),
		}).Info("order created")
		return nil
	}))

	products := product.NewService(product.NewPostgresRepository(db))
	collections := collection.NewService(collection.NewPostgresRepository(db))
	reviews := review.NewService(review.NewPostgresRepository(db), products)
	cartRepo := cart.NewPostgresRepository(db)
	carts := cart.NewService(cartRepo, products)
	users := user.NewService(user.NewPostgresRepository(db))
	customers := customer.NewService(customer.NewPostgresRepository(db))
	orders := order.NewService(order.NewPostgresRepository(db), cartRepo, customers, bus)

	productHandler := product.NewHandler(products)
	collectionHandler := collection.NewHandler(collections)
	reviewHandler := review.NewHandler(reviews)
	cartHandler := cart.NewHandler(carts)
	userHandler := user.NewHandler(users)
	customerHandler := customer.NewHandler(customers)
	orderHandler := order.NewHandler(orders)

	// browsing the catalog and building a cart needs no account
	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	collectionHandler.RegisterPublicRoutes(app)
	reviewHandler.RegisterPublicRoutes(app)
	cartHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Unauthorized"})
		},
	}))

	productHandler.RegisterProtectedRoutes(app)
	collectionHandler.RegisterProtectedRoutes(app)
	customerHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)

	log.WithField("addr", cfg.Addr).Info("starting server")
	if err := app.Listen(cfg.Addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

func setupLogging(level string) {
	log.SetFormatter(&log.JSONFormatter{})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}

func openDB(url string) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	return db, nil
}

func runMigrations(db *sql.DB, dir string) error {
	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", dir), "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}

	return nil
}
