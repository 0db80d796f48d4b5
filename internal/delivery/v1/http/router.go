package http

import (
	_ "github.com/yamao-tech/catalog-backend/docs" // Импорт сгенерированных файлов
	"github.com/yamao-tech/catalog-backend/internal/cfg"
	"github.com/yamao-tech/catalog-backend/internal/usecase"
	"github.com/yamao-tech/catalog-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
	cfg    *cfg.Config
}

func NewRouter(router *chi.Mux, logger logger.Logger, cfg *cfg.Config) *Router {
	return &Router{router: router, logger: logger, cfg: cfg}
}

func (r *Router) Init(
	catalogUC usecase.CatalogUC,
	adminUC usecase.AdminUC,
	authUC usecase.AuthUC,
	settingsUC usecase.SettingsUC,
) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:"+r.cfg.Http.Port+"/swagger/doc.json"), // ссылка на JSON
	))

	catalogHandler := NewCatalogHandler(catalogUC, r.logger)
	productHandler := NewAdminProductHandler(adminUC, r.logger, r.cfg.Minio.UploadImagesLimit)
	categoryHandler := NewAdminCategoryHandler(adminUC, r.logger)
	authHandler := NewAuthHandler(authUC, r.logger)
	settingsHandler := NewSettingsHandler(settingsUC, r.logger)

	r.router.Route("/api/v1", func(v1 chi.Router) {
		// Публичные чтения каталога и настроек витрины
		v1.Get("/products", catalogHandler.listProducts)
		v1.Get("/categories", catalogHandler.listCategories)
		v1.Get("/promotional-banners", settingsHandler.getBanners)
		v1.Get("/contact-info", settingsHandler.getContactInfo)

		v1.Route("/admin", func(admin chi.Router) {
			admin.Post("/login", authHandler.login)

			// Мутации — только с действительным токеном администратора
			admin.Group(func(protected chi.Router) {
				protected.Use(AuthMiddleware(authUC, r.logger))

				protected.Post("/logout", authHandler.logout)

				protected.Route("/products", func(pr chi.Router) {
					pr.Post("/", productHandler.createProduct)
					pr.Put("/{id}", productHandler.updateProduct)
					pr.Delete("/{id}", productHandler.deleteProduct)
				})

				protected.Route("/categories", func(cat chi.Router) {
					cat.Post("/", categoryHandler.createCategory)
					cat.Put("/{id}", categoryHandler.renameCategory)
					cat.Delete("/{id}", categoryHandler.deleteCategory)
				})

				protected.Put("/promotional-banners", settingsHandler.saveBanners)
				protected.Put("/contact-info", settingsHandler.saveContactInfo)
			})
		})
	})
}
