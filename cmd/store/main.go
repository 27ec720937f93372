package main

import (
	"store-fulfillment/cmd/bootstrap"
)

// @title           store-fulfillment store API
// @version         1.0
// @description     Orders, payments and cancellations for the store service.

// @BasePath  /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	bootstrap.Run(bootstrap.StoreModule)
}
