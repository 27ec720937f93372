package main

import (
	"store-fulfillment/cmd/bootstrap"
)

// @title           store-fulfillment delivery API
// @version         1.0
// @description     Delivery requests, cancellation and the timed delivery lifecycle.

// @BasePath  /
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	bootstrap.Run(bootstrap.DeliveryModule)
}
