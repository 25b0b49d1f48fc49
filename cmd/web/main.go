package main

import (
	"fmt"
	"log"

	"github.com/brewmatch/internal/catalog"
	"github.com/brewmatch/internal/config"
	"github.com/brewmatch/internal/matcher"
	"github.com/brewmatch/internal/web"
)

// Standalone API server. The same surface is available via
// "brewmatch serve"; this binary exists for deployments that only run the
// HTTP service.
func main() {
	settings := config.Load()

	fmt.Println("=== brewmatch API ===")
	fmt.Printf("Listen: %s\n", settings.ListenAddr)

	var source catalog.Source
	if settings.DatabaseURL != "" {
		pg, err := catalog.OpenPostgres(settings.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to catalog database: %v", err)
		}
		defer pg.Close()
		source = pg
		fmt.Println("Catalog: postgres")
	} else {
		source = catalog.NewFileSource(settings.CatalogPath)
		fmt.Printf("Catalog: %s\n", settings.CatalogPath)
	}

	engine := matcher.NewEngine(matcher.Options{
		MinScore:      settings.MinScore,
		ToleranceEBC:  settings.ToleranceEBC,
		MaxAlternates: settings.MaxAlternates,
		Debug:         settings.Debug,
	})

	server := web.NewServer(settings, engine, source)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
