// Command import-events loads a JSON events feed into the activity catalog.
// A missing feed file is fatal; individual bad records are reported and
// skipped.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	actividadstore "coicit/internal/actividad/store"
	"coicit/internal/eventos"
	"coicit/internal/importer"
	personastore "coicit/internal/persona/store"
	"coicit/internal/platform/config"
	"coicit/internal/platform/logger"
	"coicit/internal/platform/postgres"
)

func main() {
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config failed", "error", err)
		os.Exit(1)
	}

	archivo := flag.String("file", cfg.EventsFile, "ruta del archivo events.json")
	anio := flag.Int("year", cfg.EventsYear, "año que completa las fechas día/mes del archivo")
	dsn := flag.String("dsn", cfg.DatabaseURL, "cadena de conexión Postgres")
	flag.Parse()

	registros, err := eventos.CargarArchivo(*archivo)
	if err != nil {
		log.Error("leer archivo de eventos failed", "archivo", *archivo, "error", err)
		os.Exit(1)
	}
	log.Info("procesando eventos", "archivo", *archivo, "total", len(registros), "anio", *anio)

	db, err := postgres.Open(*dsn)
	if err != nil {
		log.Error("open database failed", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(db); err != nil {
		log.Error("migrate database failed", "error", err)
		os.Exit(1)
	}

	imp := importer.New(actividadstore.NewPostgres(db), personastore.NewPostgres(db), log, *anio)
	resumen, err := imp.Run(context.Background(), registros)
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Resumen de importación:\n")
	fmt.Printf("  creadas:      %d\n", resumen.Creadas)
	fmt.Printf("  actualizadas: %d\n", resumen.Actualizadas)
	fmt.Printf("  errores:      %d\n", len(resumen.Errores))
	for _, e := range resumen.Errores {
		fmt.Printf("  - %s\n", e)
	}
	if len(resumen.Errores) > 0 {
		os.Exit(1)
	}
}
