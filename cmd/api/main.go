package main

import (
	_ "campusedge_payments/docs"
	"campusedge_payments/internal/adapter/http/routes"
	"campusedge_payments/internal/infrastructure/config"
	"campusedge_payments/internal/infrastructure/logging"

	_ "github.com/joho/godotenv/autoload"
)

// @title           CampusEdge Payments API
// @version         1.0
// @description     Tuition payment intake and approval (agent + admin) with ledger and SMS notifications.

// @contact.name   Edge Incorporated Limited

// @host localhost:8888

// @BasePath  /

// @securityDefinitions.apikey AdminSecret
// @in header
// @name X-Admin-Secret
// @description Shared admin secret, also accepted as the admin_secret query parameter.

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	if err := routes.Run(cfg, log); err != nil {
		log.Fatalf("[payment][main] %v", err)
	}
}
