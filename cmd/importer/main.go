package main

import (
	"context"
	"flag"
	"log"
	"os"

	"product-catalog/internal/config"
	"product-catalog/internal/db"
	"product-catalog/internal/importer"
	productrepo "product-catalog/internal/repository/product"
	productsvc "product-catalog/internal/service/product"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to catalog CSV export")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	f, err := os.Open(filePath)
	if err != nil {
		logger.Fatalf("open file: %v", err)
	}
	defer f.Close()

	repo := productrepo.NewPostgres(pool, logger)
	svc := productsvc.New(repo)

	imp := importer.NewCSVImporter(f, svc, logger)
	imported, skipped, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import failed after %d rows: %v", imported, err)
	}

	logger.Printf("import complete: %d imported, %d skipped", imported, skipped)
}
