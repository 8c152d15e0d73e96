package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleCSV = `titulo,precio,ubicacion,habitaciones,metros,url,descripcion,anunciante,fecha_scraping,imagenes
Piso céntrico,"240.000 €","Igualada, Barcelona",3 hab.,90 m²,https://example.com/1,Luminoso,Trimar,2025-06-01,https://img/1.jpg|https://img/2.jpg
Casa con jardín,320000,"Vilanova del Camí, Barcelona",4,180,https://example.com/2,,,,
`

func TestParseCSVPreservesOrder(t *testing.T) {
	rows, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "Piso céntrico", rows[0].Titulo)
	require.Equal(t, "240.000 €", rows[0].Precio)
	require.Equal(t, []string{"https://img/1.jpg", "https://img/2.jpg"}, rows[0].Imagenes)
	require.Equal(t, "Casa con jardín", rows[1].Titulo)
}

func TestParseCSVColumnOrderIsFree(t *testing.T) {
	csv := "url,titulo,ubicacion,precio\nhttps://example.com/1,Piso,Igualada,100000\n"
	rows, err := ParseCSV(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Piso", rows[0].Titulo)
	require.Equal(t, "https://example.com/1", rows[0].URL)
}

func TestParseCSVStructuralErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"missing required column", "titulo,precio,ubicacion\nPiso,100,Igualada\n"},
		{"header only", "titulo,precio,ubicacion,url\n"},
		{"empty", ""},
		{"not csv at all", "\"unterminated"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseCSV(strings.NewReader(tc.in))
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}

const sampleJSON = `{
  "timestamp": "2025-06-01T10:00:00Z",
  "url": "https://source.example.com/listado",
  "total": 2,
  "particulares": 1,
  "inmobiliarias": "1",
  "viviendas": {
    "todas": [
      {
        "titulo": "Piso céntrico",
        "precio": "240.000 €",
        "ubicacion": "Igualada, Barcelona",
        "habitaciones": "3 hab.",
        "metros": 90,
        "url": "https://example.com/1",
        "descripcion": "Luminoso",
        "anunciante": "Trimar",
        "fecha_scraping": "2025-06-01 10:30:00",
        "imagenes": ["https://img/1.jpg"]
      },
      {
        "titulo": "Casa con jardín",
        "precio": 320000,
        "ubicacion": "Vilanova del Camí, Barcelona",
        "url": "https://example.com/2"
      }
    ]
  }
}`

func TestParseJSONHappyPath(t *testing.T) {
	rows, meta, err := ParseJSON(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "Piso céntrico", rows[0].Titulo)
	// numbers are tolerated where text is expected
	require.Equal(t, "90", rows[0].Metros)
	require.Equal(t, "320000", rows[1].Precio)

	require.NotNil(t, meta)
	require.Equal(t, 2, meta.Total)
	require.Equal(t, 1, meta.Particulares)
	require.Equal(t, 1, meta.Inmobiliarias)
	require.Equal(t, "https://source.example.com/listado", meta.URL)
}

func TestParseJSONStructuralErrors(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"not json", "not json at all"},
		{"missing viviendas", `{"total": 3}`},
		{"missing todas", `{"viviendas": {}}`},
		{"empty todas", `{"viviendas": {"todas": []}}`},
		{"first row incomplete", `{"viviendas": {"todas": [{"titulo": "Piso"}]}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseJSON(strings.NewReader(tc.in))
			require.ErrorIs(t, err, ErrMalformed)
		})
	}
}
