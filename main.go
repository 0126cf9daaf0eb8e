// @title Mindra API
// @version 1.0
// @description Learning modules, quizzes and progress tracking for the Mindra platform.

// @host localhost:4000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"os"

	"mindra_backend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
