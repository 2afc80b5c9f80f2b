package main

import (
	"github.com/CruzAprc/nutri-testes-wl-sub001/config"
	"github.com/CruzAprc/nutri-testes-wl-sub001/routes"
	"github.com/CruzAprc/nutri-testes-wl-sub001/services"
)

func main() {
	config.InitDB()
	hub := services.NewPlanHub()
	r := routes.SetupRouter(hub)
	r.Run(":8080")
}
