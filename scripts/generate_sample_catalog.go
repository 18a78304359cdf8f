package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/LDtito/zend-crud-app/internal/model"
	"github.com/LDtito/zend-crud-app/internal/seed"
)

const productosPerCategoria = 25

// generateSampleCatalog writes a gzip-compressed dataset for `catalogctl seed --file`.
// It reuses the built-in categorias and adds productosPerCategoria generated
// productos to each of them.
func main() {
	dataDir := "data/seed"

	// Create directory if it doesn't exist
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	base, err := seed.Default()
	if err != nil {
		log.Fatalf("Failed to load built-in dataset: %v", err)
	}

	ds := &seed.Dataset{Categorias: base.Categorias}
	for i, c := range base.Categorias {
		for n := 1; n <= productosPerCategoria; n++ {
			ds.Productos = append(ds.Productos, seed.ProductoSeed{
				ProductoInput: model.ProductoInput{
					Nombre:              fmt.Sprintf("%s artículo %d", c.Nombre, n),
					Codigo:              fmt.Sprintf("GEN%02d%04d", i+1, n),
					EmailContacto:       fmt.Sprintf("contacto%d@catalogo.test", n),
					FechaLanzamiento:    fmt.Sprintf("2025-%02d-%02d", n%12+1, n%28+1),
					HoraDisponible:      fmt.Sprintf("%02d:%02d:00", n%24, (n*7)%60),
					FechaHoraCreacion:   fmt.Sprintf("2025-01-%02d 08:00:00", n%28+1),
					TelefonoSoporte:     fmt.Sprintf("+51 9%08d", i*1000+n),
					Precio:              fmt.Sprintf("%d.%02d", 10+n*3, n%100),
					DescuentoPorcentaje: fmt.Sprintf("%d", (n*5)%50),
				},
				Categoria: c.Nombre,
			})
		}
	}

	filePath := filepath.Join(dataDir, "catalogo.json.gz")
	if err := createDatasetFile(filePath, ds); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d categorias and %d productos\n", filePath, len(ds.Categorias), len(ds.Productos))
	fmt.Printf("\nLoad it with:\n  go run ./cmd/catalogctl seed --file %s\n", filePath)
}

func createDatasetFile(filePath string, ds *seed.Dataset) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	enc := json.NewEncoder(gzipWriter)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ds); err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	return nil
}
