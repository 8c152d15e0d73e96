package importer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"240.000 €", 240000, true},
		{"240000", 240000, true},
		{"1.250.000€", 1250000, true},
		{" 95000 ", 95000, true},
		{"abc", 0, false},
		{"no-disponible", 0, false},
		{"", 0, false},
		{"-5000", 0, false},
		{"0 €", 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := ParsePrice(tc.in)
			require.Equal(t, tc.ok, ok)
			if tc.ok {
				require.Equal(t, tc.want, got)
			}
		})
	}
}

func TestSplitLocation(t *testing.T) {
	loc, prov := SplitLocation("Igualada, Barcelona")
	require.Equal(t, "Igualada", loc)
	require.Equal(t, "Barcelona", prov)

	loc, prov = SplitLocation("Igualada")
	require.Equal(t, "Igualada", loc)
	require.Equal(t, "", prov)

	loc, prov = SplitLocation("  Vilanova del Camí ,  Barcelona ")
	require.Equal(t, "Vilanova del Camí", loc)
	require.Equal(t, "Barcelona", prov)
}

func TestNormalizeKey(t *testing.T) {
	require.Equal(t, "piso en igualada", NormalizeKey("  Piso   EN \t Igualada "))
	require.Equal(t, "", NormalizeKey("   "))
}

func TestNormalizeHappyPath(t *testing.T) {
	raw := RawRow{
		Titulo:        "Piso céntrico",
		Precio:        "240.000 €",
		Ubicacion:     "Igualada, Barcelona",
		Habitaciones:  "3 hab.",
		Metros:        "90 m²",
		URL:           "https://example.com/piso-1",
		Descripcion:   "Muy luminoso",
		Anunciante:    "Inmobiliaria Trimar",
		FechaScraping: "2025-06-01 10:30:00",
	}

	c, rowErr := Normalize(raw, 4)
	require.Nil(t, rowErr)
	require.Equal(t, 4, c.Row)
	require.Equal(t, "Piso céntrico", c.Title)
	require.Equal(t, 240000, c.Price)
	require.Equal(t, "Igualada", c.Locality)
	require.Equal(t, "Barcelona", c.Province)
	require.Equal(t, 3, c.Rooms)
	require.NotNil(t, c.SquareMeters)
	require.Equal(t, 90, *c.SquareMeters)
	require.Equal(t, "https://example.com/piso-1", c.SourceURL)
	require.NotNil(t, c.ScrapedAt)
}

func TestNormalizeLenientDefaults(t *testing.T) {
	raw := RawRow{
		Titulo:    "Casa sin datos",
		Precio:    "100000",
		Ubicacion: "Calaf",
		// no rooms, no meters, no scrape date
	}

	c, rowErr := Normalize(raw, 1)
	require.Nil(t, rowErr)
	require.Equal(t, 0, c.Rooms)
	require.Nil(t, c.SquareMeters)
	require.Nil(t, c.ScrapedAt)
	require.Equal(t, "Calaf", c.Locality)
	require.Equal(t, "", c.Province)
}

func TestNormalizeRowErrors(t *testing.T) {
	_, rowErr := Normalize(RawRow{Titulo: "", Precio: "100"}, 2)
	require.NotNil(t, rowErr)
	require.Equal(t, 2, rowErr.Row)
	require.Contains(t, rowErr.Reason, "title")

	_, rowErr = Normalize(RawRow{Titulo: "Piso", Precio: "no-disponible"}, 3)
	require.NotNil(t, rowErr)
	require.Equal(t, 3, rowErr.Row)
	require.Contains(t, rowErr.Reason, "price")
}
