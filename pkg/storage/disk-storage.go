package storage

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/matst80/slask-market/pkg/types"
)

const productsFile = "products.json.gz"

var ErrUnsupportedFormat = errors.New("unsupported catalog file format")

// Load reads the stored catalog, it satisfies catalog.Provider.
func (d *DiskStorage) Load(ctx context.Context) ([]types.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadProducts(d.ProductsFileName())
}

func (d *DiskStorage) ProductsFileName() string {
	fileName, _ := d.GetFileName(productsFile)
	return fileName
}

// FileProvider loads one catalog file given by path.
type FileProvider string

func (f FileProvider) Load(ctx context.Context) ([]types.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return ReadProducts(string(f))
}

func (d *DiskStorage) SaveProducts(products []types.Product) error {
	fileName := d.ProductsFileName()
	if err := os.MkdirAll(filepath.Dir(fileName), 0o755); err != nil {
		return err
	}
	return WriteProducts(fileName, products)
}

func isGzip(name string) bool {
	return strings.HasSuffix(name, ".gz")
}

func isCsv(name string) bool {
	n := strings.TrimSuffix(name, ".gz")
	return strings.HasSuffix(n, ".csv")
}

// ReadProducts reads a JSON array or a ';' separated CSV file, either one
// optionally gzipped. The format is picked from the file extension.
func ReadProducts(fileName string) ([]types.Product, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var r io.Reader = file
	if isGzip(fileName) {
		zipReader, err := gzip.NewReader(file)
		if err != nil {
			return nil, err
		}
		defer zipReader.Close()
		r = zipReader
	}

	if isCsv(fileName) {
		return ReadCsv(r)
	}
	if !strings.HasSuffix(strings.TrimSuffix(fileName, ".gz"), ".json") {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, fileName)
	}

	products := make([]types.Product, 0)
	dec := sonic.ConfigDefault.NewDecoder(r)
	if err = dec.Decode(&products); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	log.Printf("Loaded %d products from %s", len(products), fileName)
	return products, nil
}

// WriteProducts stores products as a JSON array, gzipped for .gz names.
func WriteProducts(fileName string, products []types.Product) error {
	if isCsv(fileName) {
		return fmt.Errorf("%w: writing %s", ErrUnsupportedFormat, fileName)
	}
	tmpFileName := tmpName(fileName)
	file, err := os.Create(tmpFileName)
	if err != nil {
		return err
	}

	var w io.Writer = file
	var zipWriter *gzip.Writer
	if isGzip(fileName) {
		zipWriter = gzip.NewWriter(file)
		w = zipWriter
	}

	if err = sonic.ConfigDefault.NewEncoder(w).Encode(products); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFileName)
		return err
	}
	if zipWriter != nil {
		if err = zipWriter.Close(); err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFileName)
			return err
		}
	}
	if err = file.Close(); err != nil {
		_ = os.Remove(tmpFileName)
		return err
	}
	if err = os.Rename(tmpFileName, fileName); err != nil {
		_ = os.Remove(tmpFileName)
		return err
	}
	log.Printf("Saved %d products to %s", len(products), fileName)
	return nil
}
