package main

import (
	"github.com/ammiagames/sonder-sub002/config"
	"github.com/ammiagames/sonder-sub002/routes"
	"github.com/ammiagames/sonder-sub002/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	r := routes.SetupRouter()
	r.Run(":8080")
}
