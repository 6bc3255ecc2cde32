package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
)

// adminRoute declares an admin endpoint together with the roles allowed to
// call it. SUPER_ADMIN passes every role requirement.
type adminRoute struct {
	method  string
	path    string
	roles   []string
	handler gin.HandlerFunc
}

func main() {
	config.Load()
	cfg := config.AppEnv

	client, err := database.Connect(cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(cfg.DBName)
	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureAdminIndexes(db); err != nil {
		log.Printf("admin index warning: %v", err)
	}
	if err := database.EnsureProductIndexes(db); err != nil {
		log.Printf("product index warning: %v", err)
	}
	if err := database.EnsureCategoryIndexes(db); err != nil {
		log.Printf("category index warning: %v", err)
	}

	cld, err := handlers.NewCloudinary(cfg)
	if err != nil {
		log.Fatal("cloudinary init failed:", err)
	}

	r := gin.Default()
	r.Use(middleware.RequestID())

	r.POST("/auth/signup", handlers.Signup(db, cfg))
	r.POST("/auth/signin", handlers.Signin(db, cfg))
	r.GET("/auth/google", handlers.GoogleAuthURL(cfg))
	r.GET("/auth/google/callback", handlers.GoogleCallback(db, cfg))
	r.GET("/auth/me", middleware.UserAuth(cfg.JWTSecret), handlers.GetProfile(db))

	r.POST("/admin/auth/signin", handlers.AdminSignin(db, cfg))

	r.GET("/categories", handlers.GetCategories(db))

	r.GET("/products", handlers.GetProducts(db))
	r.GET("/products/featured", handlers.GetFeaturedProducts(db))
	r.GET("/products/best-sellers", handlers.GetBestSellerProducts(db))
	r.GET("/products/new-arrivals", handlers.GetNewArrivalProducts(db))
	r.GET("/products/on-sale", handlers.GetOnSaleProducts(db))
	r.GET("/products/:idOrSlug", handlers.GetProduct(db))
	r.GET("/products/:idOrSlug/related", handlers.GetRelatedProducts(db))
	r.POST("/products/:id/stats", handlers.UpdateProductStats(db))

	adminRoutes := []adminRoute{
		{"GET", "/products", []string{models.RoleAdmin}, handlers.GetAllProducts(db)},
		{"POST", "/products", []string{models.RoleAdmin}, handlers.CreateProduct(db)},
		{"PUT", "/products/:id", []string{models.RoleAdmin}, handlers.UpdateProduct(db)},
		{"DELETE", "/products/:id", []string{models.RoleSuperAdmin}, handlers.DeleteProduct(db)},

		{"GET", "/categories", []string{models.RoleAdmin}, handlers.GetAllCategories(db)},
		{"POST", "/categories", []string{models.RoleAdmin}, handlers.CreateCategory(db)},
		{"PUT", "/categories/:id", []string{models.RoleAdmin}, handlers.UpdateCategory(db)},
		{"DELETE", "/categories/:id", []string{models.RoleSuperAdmin}, handlers.DeleteCategory(db)},

		{"POST", "/upload", []string{models.RoleAdmin}, handlers.UploadImages(cld, cfg.UploadFolder)},
	}

	admin := r.Group("/admin/api")
	for _, route := range adminRoutes {
		admin.Handle(route.method, route.path,
			middleware.AdminAuth(cfg.JWTSecret, route.roles...), route.handler)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	r.Run(":" + port)
}
