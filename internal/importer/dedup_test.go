package importer

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/models"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/testutil"
)

func seedProperty(repo *testutil.FakePropertyRepository, title, locality, sourceURL string) {
	p := &models.Property{
		ID:       uuid.New(),
		Title:    title,
		Locality: locality,
	}
	if sourceURL != "" {
		p.SourceURL = &sourceURL
	}
	_ = repo.Create(context.Background(), p)
}

func TestDetectSourceURLMatch(t *testing.T) {
	repo := testutil.NewFakePropertyRepository()
	seedProperty(repo, "Piso antiguo", "Igualada", "https://example.com/1")

	d := NewDetector(repo)
	dup, err := d.Detect(context.Background(), &Candidate{
		Title:     "Título completamente distinto",
		Locality:  "Otro pueblo",
		SourceURL: "https://example.com/1",
	})
	require.NoError(t, err)
	require.NotNil(t, dup)
	require.Equal(t, ReasonSameSourceURL, dup.Reason)
	require.Equal(t, "https://example.com/1", dup.ConflictURL)
}

func TestDetectTitleLocalityMatch(t *testing.T) {
	repo := testutil.NewFakePropertyRepository()
	seedProperty(repo, "Piso céntrico", "Igualada", "https://example.com/old")

	d := NewDetector(repo)
	dup, err := d.Detect(context.Background(), &Candidate{
		Title:     "  piso   CÉNTRICO ",
		Locality:  "igualada",
		SourceURL: "https://example.com/changed",
	})
	require.NoError(t, err)
	require.NotNil(t, dup)
	require.Equal(t, ReasonSameTitleAndCity, dup.Reason)
}

func TestDetectURLRuleHasPrecedence(t *testing.T) {
	repo := testutil.NewFakePropertyRepository()
	// Same URL and same title+locality: the URL reason must win.
	seedProperty(repo, "Piso céntrico", "Igualada", "https://example.com/1")

	d := NewDetector(repo)
	dup, err := d.Detect(context.Background(), &Candidate{
		Title:     "Piso céntrico",
		Locality:  "Igualada",
		SourceURL: "https://example.com/1",
	})
	require.NoError(t, err)
	require.NotNil(t, dup)
	require.Equal(t, ReasonSameSourceURL, dup.Reason)
}

func TestDetectDifferentLocalityIsNew(t *testing.T) {
	repo := testutil.NewFakePropertyRepository()
	seedProperty(repo, "Piso céntrico", "Igualada", "")

	d := NewDetector(repo)
	dup, err := d.Detect(context.Background(), &Candidate{
		Title:    "Piso céntrico",
		Locality: "Manresa",
	})
	require.NoError(t, err)
	require.Nil(t, dup)
}

func TestDetectSeesBatchLocalAccepts(t *testing.T) {
	repo := testutil.NewFakePropertyRepository()
	d := NewDetector(repo)

	first := &Candidate{
		Title:     "Piso céntrico",
		Locality:  "Igualada",
		SourceURL: "https://example.com/1",
	}
	dup, err := d.Detect(context.Background(), first)
	require.NoError(t, err)
	require.Nil(t, dup)

	d.Accept(first)

	// Same URL, committed only batch-locally.
	dup, err = d.Detect(context.Background(), &Candidate{
		Title:     "Otro título",
		Locality:  "Igualada",
		SourceURL: "https://example.com/1",
	})
	require.NoError(t, err)
	require.NotNil(t, dup)
	require.Equal(t, ReasonSameSourceURL, dup.Reason)

	// Same title+locality under a fresh URL.
	dup, err = d.Detect(context.Background(), &Candidate{
		Title:     "piso céntrico",
		Locality:  "IGUALADA",
		SourceURL: "https://example.com/999",
	})
	require.NoError(t, err)
	require.NotNil(t, dup)
	require.Equal(t, ReasonSameTitleAndCity, dup.Reason)
}
