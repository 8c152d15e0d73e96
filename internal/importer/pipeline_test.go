package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/models"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/testutil"
)

func newTestPipeline() (*Pipeline, *testutil.FakePropertyRepository, *testutil.FakePropertyImageRepository) {
	props := testutil.NewFakePropertyRepository()
	images := testutil.NewFakePropertyImageRepository()
	return NewPipeline(props, images), props, images
}

// The concrete three-row scenario: one new, one URL duplicate, one bad
// price -> {1, 1, 1} in input order.
func TestRunMixedBatch(t *testing.T) {
	p, props, _ := newTestPipeline()
	seedProperty(props, "Piso existente", "Igualada", "https://example.com/existing")

	rows := []RawRow{
		{Titulo: "Casa nueva", Precio: "320.000 €", Ubicacion: "Calaf, Barcelona", URL: "https://example.com/new"},
		{Titulo: "Piso repetido", Precio: "100000", Ubicacion: "Igualada, Barcelona", URL: "https://example.com/existing"},
		{Titulo: "Piso sin precio", Precio: "no-disponible", Ubicacion: "Igualada, Barcelona", URL: "https://example.com/broken"},
	}

	report, err := p.Run(context.Background(), rows, nil)
	require.NoError(t, err)

	require.Equal(t, 1, report.Summary.Success)
	require.Equal(t, 1, report.Summary.Duplicates)
	require.Equal(t, 1, report.Summary.Errors)
	require.Len(t, report.Details, 3)

	require.Equal(t, 1, report.Details[0].Row)
	require.Equal(t, StatusSuccess, report.Details[0].Status)
	require.NotNil(t, report.Details[0].ID)
	require.Equal(t, "Casa nueva", report.Details[0].Title)

	require.Equal(t, 2, report.Details[1].Row)
	require.Equal(t, StatusDuplicate, report.Details[1].Status)
	require.Equal(t, ReasonSameSourceURL, report.Details[1].Reason)
	require.Equal(t, "https://example.com/existing", report.Details[1].URL)

	require.Equal(t, 3, report.Details[2].Row)
	require.Equal(t, StatusError, report.Details[2].Status)
	require.Contains(t, report.Details[2].Error, "price")
}

func TestRunCountsAlwaysAddUp(t *testing.T) {
	p, _, _ := newTestPipeline()

	rows := []RawRow{
		{Titulo: "A", Precio: "1000", Ubicacion: "X", URL: "https://e/1"},
		{Titulo: "", Precio: "1000", Ubicacion: "X"},
		{Titulo: "B", Precio: "bad", Ubicacion: "X"},
		{Titulo: "A", Precio: "1000", Ubicacion: "X", URL: "https://e/1"},
		{Titulo: "C", Precio: "2000", Ubicacion: "Y", URL: "https://e/2"},
	}

	report, err := p.Run(context.Background(), rows, nil)
	require.NoError(t, err)
	total := report.Summary.Success + report.Summary.Duplicates + report.Summary.Errors
	require.Equal(t, len(rows), total)
	require.Len(t, report.Details, len(rows))

	for i, d := range report.Details {
		require.Equal(t, i+1, d.Row)
	}
}

// Re-running the same well-formed input flips N successes into N
// duplicates.
func TestRunIsIdempotentAcrossRuns(t *testing.T) {
	p, props, _ := newTestPipeline()

	rows := []RawRow{
		{Titulo: "Piso uno", Precio: "100000", Ubicacion: "Igualada, Barcelona", URL: "https://e/1"},
		{Titulo: "Piso dos", Precio: "200000", Ubicacion: "Calaf, Barcelona", URL: "https://e/2"},
		{Titulo: "Piso tres", Precio: "300000", Ubicacion: "Manresa, Barcelona", URL: "https://e/3"},
	}

	first, err := p.Run(context.Background(), rows, nil)
	require.NoError(t, err)
	require.Equal(t, 3, first.Summary.Success)
	require.Equal(t, 0, first.Summary.Duplicates)

	second, err := NewPipeline(props, testutil.NewFakePropertyImageRepository()).Run(context.Background(), rows, nil)
	require.NoError(t, err)
	require.Equal(t, 0, second.Summary.Success)
	require.Equal(t, 3, second.Summary.Duplicates)
	require.Equal(t, 0, second.Summary.Errors)
}

// Two identical rows inside one upload: the batch-local accepted set
// catches the second one.
func TestRunSameBatchSiblings(t *testing.T) {
	p, props, _ := newTestPipeline()

	rows := []RawRow{
		{Titulo: "Piso gemelo", Precio: "100000", Ubicacion: "Igualada, Barcelona", URL: "https://e/1"},
		{Titulo: "Piso gemelo", Precio: "100000", Ubicacion: "Igualada, Barcelona", URL: "https://e/1"},
	}

	report, err := p.Run(context.Background(), rows, nil)
	require.NoError(t, err)
	require.Equal(t, 1, report.Summary.Success)
	require.Equal(t, 1, report.Summary.Duplicates)
	require.Len(t, props.Props, 1)
}

func TestRunPersistsDefaultsAndImages(t *testing.T) {
	p, props, images := newTestPipeline()

	rows := []RawRow{{
		Titulo:        "Piso con fotos",
		Precio:        "240.000 €",
		Ubicacion:     "Igualada, Barcelona",
		Habitaciones:  "3 hab.",
		Metros:        "90 m²",
		URL:           "https://e/1",
		Anunciante:    "Trimar",
		FechaScraping: "2025-06-01",
		Imagenes:      []string{"https://img/b.jpg", "https://img/a.jpg"},
	}}

	report, err := p.Run(context.Background(), rows, nil)
	require.NoError(t, err)
	require.Equal(t, 1, report.Summary.Success)

	created := props.Props[*report.Details[0].ID]
	require.NotNil(t, created)
	require.Equal(t, models.PropertyKindVivienda, created.Kind)
	require.Equal(t, models.DwellingPiso, created.Dwelling)
	require.Equal(t, models.ConditionBuenEstado, created.Condition)
	require.Equal(t, models.SaleStateDisponible, created.SaleState)
	require.False(t, created.Published)
	require.Equal(t, 240000, created.Price)
	require.Equal(t, "Igualada", created.Locality)
	require.Equal(t, "Barcelona", created.Province)
	require.NotNil(t, created.SourceURL)
	require.Equal(t, "https://e/1", *created.SourceURL)

	imgs, err := images.ListByPropertyID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, imgs, 2)
	// input order becomes ascending display order
	require.Equal(t, "https://img/b.jpg", imgs[0].URL)
	require.Equal(t, 0, imgs[0].DisplayOrder)
	require.Equal(t, "https://img/a.jpg", imgs[1].URL)
	require.Equal(t, 1, imgs[1].DisplayOrder)
}

// A failing insert is a row-level error; the batch keeps going.
func TestRunInsertFailureDoesNotAbortBatch(t *testing.T) {
	p, props, _ := newTestPipeline()
	props.CreateErrFor["Piso maldito"] = errors.New("connection reset")

	rows := []RawRow{
		{Titulo: "Piso maldito", Precio: "100000", Ubicacion: "Igualada", URL: "https://e/1"},
		{Titulo: "Piso sano", Precio: "200000", Ubicacion: "Calaf", URL: "https://e/2"},
	}

	report, err := p.Run(context.Background(), rows, nil)
	require.NoError(t, err)
	require.Equal(t, 1, report.Summary.Success)
	require.Equal(t, 1, report.Summary.Errors)
	require.Equal(t, StatusError, report.Details[0].Status)
	require.Contains(t, report.Details[0].Error, "insert failed")
	require.Equal(t, StatusSuccess, report.Details[1].Status)
}

func TestRunEchoesMetadata(t *testing.T) {
	p, _, _ := newTestPipeline()

	meta := &Metadata{Total: 1, Particulares: 1, URL: "https://source/list"}
	rows := []RawRow{{Titulo: "Piso", Precio: "1000", Ubicacion: "Igualada", URL: "https://e/1"}}

	report, err := p.Run(context.Background(), rows, meta)
	require.NoError(t, err)
	require.NotNil(t, report.Metadata)
	require.Equal(t, "https://source/list", report.Metadata.URL)
}
