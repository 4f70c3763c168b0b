package main

import (
	config "partner-funnel/configs"
	database "partner-funnel/internal/pkg/db"
	"partner-funnel/internal/pkg/logger"
)

func main() {
	logger.Setup()
	defer logger.Sync()

	env, err := config.GetEnv()
	if err != nil {
		logger.Error.Println("Error getting environment", err)
		panic(err)
	}

	// Setup Database
	db, err := database.Setup(&database.Config{
		Host:     env.DBHost,
		Port:     env.DBPort,
		User:     env.DBUser,
		Password: env.DBPass,
		Database: env.DBName,
		SSLMode:  "disable",
		Driver:   database.DriverEnum(env.DBDriver),
	})
	if err != nil {
		logger.Error.Println("Error setting up Database", err)
		return
	}
	defer func() {
		_ = db.Close()
	}()

	if err := db.RunMigrations(); err != nil {
		logger.Error.Println("Error running migrations", err)
		return
	}

	logger.Info.Println("Migrations completed successfully")
}
