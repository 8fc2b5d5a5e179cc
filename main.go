package main

import (
	"os"

	"github.com/SidW111/Prescripto/configuration"
	"github.com/SidW111/Prescripto/controllers"
	"github.com/SidW111/Prescripto/routes"
)

func Init() {
	configuration.ConfigDB()
	configuration.InitRedis()
	controllers.InitCloudinary()
	controllers.InitRazorpay()
}

func main() {
	// Perform application initialization
	Init()
	r := routes.SetupRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	if err := r.Run(":" + port); err != nil {
		panic(err)
	}
}
