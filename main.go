package main

import (
	"github.com/yacinecs/wallet-backend/api"
	"github.com/yacinecs/wallet-backend/utils"
)

var envPath string = "."

func main() {
	utils.EnvPath = envPath

	server := api.NewServer(envPath)
	server.Start()
}
