package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/wms-api/internal/application/dto"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// defaultCatalog catálogo de demostración: dos o tres productos por categoría.
func defaultCatalog() []dto.CreateProductRequest {
	p := func(sku, name, desc, w, wi, h, dp, cat string) dto.CreateProductRequest {
		return dto.CreateProductRequest{SKU: sku, Name: name, Description: desc,
			Weight: d(w), Width: d(wi), Height: d(h), Depth: d(dp), Category: cat}
	}
	return []dto.CreateProductRequest{
		p("ELEC001", "Smartphone X12", "Smartphone 5G", "0.18", "7.5", "15", "0.8", "Electronics"),
		p("ELEC002", "Laptop Pro", "Portátil profesional 16GB RAM", "2.1", "35", "23", "1.5", "Electronics"),
		p("ELEC003", "Audífonos inalámbricos", "Bluetooth con cancelación de ruido", "0.25", "18", "20", "8", "Electronics"),
		p("CLO001", "Camiseta hombre", "100% algodón", "0.2", "60", "80", "1", "Clothing"),
		p("CLO002", "Jeans mujer", "Denim slim fit", "0.5", "40", "100", "2", "Clothing"),
		p("FOOD001", "Café orgánico en grano", "Comercio justo, 500g", "0.5", "10", "20", "5", "Food"),
		p("FOOD002", "Caja de chocolates", "Surtido, 250g", "0.25", "15", "15", "3", "Food"),
		p("BOOK001", "Programación moderna", "Guía de técnicas de programación", "0.8", "20", "25", "3", "Books"),
		p("BOOK002", "Estrategia empresarial", "Estrategia y gestión", "0.9", "20", "28", "3", "Books"),
		p("FURN001", "Silla de oficina", "Silla ergonómica", "15", "60", "110", "60", "Furniture"),
		p("FURN002", "Mesa de centro", "Madera", "25", "90", "45", "60", "Furniture"),
		p("SPORT001", "Tapete de yoga", "Antideslizante", "1.2", "60", "180", "0.5", "Sports"),
		p("SPORT002", "Juego de mancuernas", "2 x 5kg", "10", "40", "15", "15", "Sports"),
	}
}

// readCatalogCSV lee productos con cabecera sku,name,description,weight,width,height,depth,category.
// latin1 decodifica archivos ISO-8859-1 exportados desde hojas de cálculo.
func readCatalogCSV(r io.Reader, latin1 bool) ([]dto.CreateProductRequest, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	col := map[string]int{}
	for i, h := range rows[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, req := range []string{"sku", "name", "weight", "width", "height", "depth"} {
		if _, ok := col[req]; !ok {
			return nil, fmt.Errorf("CSV sin columna %q", req)
		}
	}
	get := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	num := func(row []string, name string, line int) (decimal.Decimal, error) {
		v, err := decimal.NewFromString(strings.ReplaceAll(get(row, name), ",", "."))
		if err != nil {
			return decimal.Zero, fmt.Errorf("línea %d: %s inválido: %w", line, name, err)
		}
		return v, nil
	}

	out := make([]dto.CreateProductRequest, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		p := dto.CreateProductRequest{
			SKU:         get(row, "sku"),
			Name:        get(row, "name"),
			Description: get(row, "description"),
			Category:    get(row, "category"),
		}
		if p.SKU == "" {
			continue
		}
		if p.Weight, err = num(row, "weight", line); err != nil {
			return nil, err
		}
		if p.Width, err = num(row, "width", line); err != nil {
			return nil, err
		}
		if p.Height, err = num(row, "height", line); err != nil {
			return nil, err
		}
		if p.Depth, err = num(row, "depth", line); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
