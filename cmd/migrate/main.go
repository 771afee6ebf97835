// migrate aplica o revierte las migraciones embebidas del esquema de pedidos.
//
// Uso: go run ./cmd/migrate [up|down [pasos]|version]
// La conexión se toma de DATABASE_URL o DB_* (igual que la API).
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/inventario-pedidos/internal/infrastructure/postgres"
	"github.com/jhoicas/inventario-pedidos/pkg/config"
	"github.com/jhoicas/inventario-pedidos/pkg/logger"
)

func main() {
	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	mg, err := postgres.NewMigrator(cfg.DB.ConnectionString(), log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir migraciones")
	}
	defer mg.Close()

	switch cmd {
	case "up":
		err = mg.Up()
	case "down":
		steps := 1
		if len(os.Args) > 2 {
			if steps, err = strconv.Atoi(os.Args[2]); err != nil {
				fmt.Fprintf(os.Stderr, "Pasos inválidos: %q\n", os.Args[2])
				os.Exit(2)
			}
		}
		err = mg.Down(steps)
	case "version":
		v, dirty, verr := mg.Version()
		if verr == nil {
			fmt.Printf("versión %d (dirty=%v)\n", v, dirty)
		}
		err = verr
	default:
		fmt.Fprintf(os.Stderr, "Comando desconocido %q (up, down, version)\n", cmd)
		os.Exit(2)
	}
	if err != nil {
		log.Error().Err(err).Str("cmd", cmd).Msg("migración fallida")
		os.Exit(1)
	}
}
