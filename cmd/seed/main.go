// Command seed force-reseeds the product catalog. The server seeds an
// empty catalog automatically at startup; this utility replaces an
// existing catalog with the seed list.
package main

import (
	"smartshop/internal/config"
	"smartshop/internal/repositories"

	"github.com/sirupsen/logrus"
)

func main() {
	config.LoadEnv()

	log := logrus.New()

	if err := repositories.InitDB(); err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}

	if err := repositories.ReseedProducts(repositories.DB); err != nil {
		log.WithError(err).Fatal("failed to reseed catalog")
	}

	log.Info("catalog reseeded")
}
