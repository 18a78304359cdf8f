// Package seed loads catalogue datasets and inserts them into the store.
package seed

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"

	"github.com/LDtito/zend-crud-app/internal/model"
)

//go:embed default.json
var defaultDataset []byte

// gzipMagic prefixes every gzip stream.
var gzipMagic = []byte{0x1f, 0x8b}

// Dataset is a set of categorias and productos to seed.
type Dataset struct {
	Categorias []model.CategoriaInput `json:"categorias"`
	Productos  []ProductoSeed         `json:"productos"`
}

// ProductoSeed is a producto whose categoria is referenced by nombre.
// When Categoria is empty the embedded categoria_id is used as is.
type ProductoSeed struct {
	model.ProductoInput
	Categoria string `json:"categoria,omitempty"`
}

// Loader defines the interface for loading datasets.
type Loader interface {
	// Load reads the dataset at path. Plain and gzip-compressed JSON are
	// both accepted.
	Load(ctx context.Context, path string) (*Dataset, error)
}

// Default returns the built-in dataset: six categorias and three productos.
func Default() (*Dataset, error) {
	return Decode(bytes.NewReader(defaultDataset))
}

// Decode parses a dataset, transparently decompressing gzip input.
func Decode(r io.Reader) (*Dataset, error) {
	br := bufio.NewReader(r)

	var src io.Reader = br
	if magic, err := br.Peek(len(gzipMagic)); err == nil && magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1] {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		src = gz
	}

	var ds Dataset
	dec := json.NewDecoder(src)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&ds); err != nil {
		return nil, fmt.Errorf("failed to decode dataset: %w", err)
	}

	return &ds, nil
}
