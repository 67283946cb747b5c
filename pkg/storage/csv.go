package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matst80/slask-market/pkg/types"
)

var ErrMissingColumn = errors.New("missing csv column")

var requiredColumns = []string{"id", "name", "price"}

type csvLine struct {
	columns map[string]int
	record  []string
}

func (l csvLine) get(column string) string {
	i, ok := l.columns[column]
	if !ok || i >= len(l.record) {
		return ""
	}
	return strings.TrimSpace(l.record[i])
}

func (l csvLine) float(column string) (float64, error) {
	v := l.get(column)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}

func (l csvLine) bool(column string) bool {
	switch strings.ToLower(l.get(column)) {
	case "1", "true", "yes", "y", "x":
		return true
	}
	return false
}

func productFromLine(l csvLine) (types.Product, error) {
	id, err := strconv.ParseUint(l.get("id"), 10, 32)
	if err != nil {
		return types.Product{}, fmt.Errorf("id: %w", err)
	}
	price, err := l.float("price")
	if err != nil {
		return types.Product{}, fmt.Errorf("price: %w", err)
	}
	rating, err := l.float("rating")
	if err != nil {
		return types.Product{}, fmt.Errorf("rating: %w", err)
	}
	reviews := 0
	if v := l.get("reviews"); v != "" {
		if reviews, err = strconv.Atoi(v); err != nil {
			return types.Product{}, fmt.Errorf("reviews: %w", err)
		}
	}
	return types.Product{
		Id:          types.ProductId(id),
		Name:        l.get("name"),
		Price:       price,
		Brand:       l.get("brand"),
		Category:    l.get("category"),
		StorageTier: l.get("storage"),
		InStock:     l.bool("instock"),
		Rating:      rating,
		ReviewCount: reviews,
		IsNew:       l.bool("isnew"),
	}, nil
}

// ReadCsv parses ';' separated product rows. The first row is a header
// naming the columns; column order is free and unknown columns are ignored.
func ReadCsv(r io.Reader) ([]types.Product, error) {
	csvReader := csv.NewReader(r)
	csvReader.Comma = ';'
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	header, err := csvReader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []types.Product{}, nil
		}
		return nil, err
	}
	columns := map[string]int{}
	for i, h := range header {
		columns[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := columns[c]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, c)
		}
	}

	products := make([]types.Product, 0)
	line := 1
	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, err
		}
		p, err := productFromLine(csvLine{columns: columns, record: record})
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		products = append(products, p)
	}
	return products, nil
}
