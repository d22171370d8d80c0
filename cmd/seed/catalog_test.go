package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

func TestReadCatalogCSV(t *testing.T) {
	in := "sku,name,description,weight,width,height,depth,category\n" +
		"ELEC001,Smartphone,5G,0.18,7.5,15,0.8,Electronics\n" +
		",sin sku,,1,1,1,1,\n" +
		"FOOD009,Arepa,,\"0,5\",10,2,10,Food\n"

	list, err := readCatalogCSV(strings.NewReader(in), false)
	require.NoError(t, err)
	require.Len(t, list, 2, "las filas sin SKU se omiten")
	assert.Equal(t, "ELEC001", list[0].SKU)
	assert.Equal(t, "0.18", list[0].Weight.String())
	assert.Equal(t, "0.5", list[1].Weight.String(), "acepta coma decimal")
}

func TestReadCatalogCSV_Latin1(t *testing.T) {
	utf := "sku,name,weight,width,height,depth\nCAF001,Café de Nariño,0.5,10,20,5\n"
	enc, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(utf))
	require.NoError(t, err)

	list, err := readCatalogCSV(bytes.NewReader(enc), true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Café de Nariño", list[0].Name)
}

func TestReadCatalogCSV_Errores(t *testing.T) {
	_, err := readCatalogCSV(strings.NewReader("sku,name\nX,Y\n"), false)
	assert.ErrorContains(t, err, "weight")

	_, err = readCatalogCSV(strings.NewReader("sku,name,weight,width,height,depth\nX,Y,abc,1,1,1\n"), false)
	assert.ErrorContains(t, err, "línea 2")
}

func TestDefaultCatalog_DimensionesValidas(t *testing.T) {
	seen := map[string]bool{}
	for _, p := range defaultCatalog() {
		assert.False(t, seen[p.SKU], "SKU repetido %s", p.SKU)
		seen[p.SKU] = true
		assert.True(t, p.Weight.IsPositive() && p.Width.IsPositive() && p.Height.IsPositive() && p.Depth.IsPositive(), p.SKU)
	}
}
