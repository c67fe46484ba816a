package main

import (
	"log"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/metrics"
	"app/internal/payment"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無くてもよい（本番は環境変数直渡し）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect(cfg)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Branch{},
		&model.Inventory{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.AuditLog{},
	); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	//Repository（GORM実装）生成
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	branchRepo := infraRepo.NewBranchGormRepository(gormDB)
	inventoryRepo := infraRepo.NewInventoryGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	auditRepo := infraRepo.NewAuditLogGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//外部決済クライアント
	payClient := payment.NewClient(cfg.PaymentAPIURL, cfg.PaymentAPIKey, cfg.PaymentCurrency)

	//メトリクス
	m := metrics.NewServerMetrics()

	//Usecase生成
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo)
	branchUC := usecase.NewBranchUsecase(branchRepo)
	inventoryUC := usecase.NewInventoryUsecase(inventoryRepo, productRepo, branchRepo, auditRepo)
	userUC := usecase.NewUserUsecase(userRepo, usecase.NewBcryptPasswordHasher(12))
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, productRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, payClient)
	paymentEventUC := usecase.NewPaymentEventUsecase(txManager)
	orderUC := usecase.NewOrderUsecase(txManager)
	adminOrderUC := usecase.NewAdminOrderUsecase(txManager)

	//Handler生成
	handlers := server.Handlers{
		Category:       handler.NewCategoryHandler(categoryUC),
		Product:        handler.NewProductHandler(productUC),
		Branch:         handler.NewBranchHandler(branchUC),
		Inventory:      handler.NewInventoryHandler(inventoryUC),
		User:           handler.NewUserHandler(userUC),
		Cart:           handler.NewCartHandler(cartUC),
		Checkout:       handler.NewCheckoutHandler(checkoutUC, m),
		Order:          handler.NewOrderHandler(orderUC),
		AdminOrder:     handler.NewAdminOrderHandler(adminOrderUC),
		PaymentWebhook: handler.NewPaymentWebhookHandler(cfg, paymentEventUC, m),
	}

	//Server起動
	e := server.New(cfg, gormDB, m, handlers)
	if err := server.Start(e, ":"+cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
