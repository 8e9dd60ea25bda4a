package main

import (
	"os"
)

//go:generate swag init -g main.go -o ../docs --parseDependency --parseInternal

// @title Textile ERP Accounting API
// @version 1.0
// @description Chart of accounts, journal posting and trial balance for the textile ERP.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
