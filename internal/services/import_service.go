package services

import (
	"context"
	"io"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/importer"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/repositories"
	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/utils"
)

// ImportService glues the upload endpoints to the importer pipeline.
// One call is one batch; there is no queue and no retry.
type ImportService struct {
	props  repositories.PropertyRepository
	images repositories.PropertyImageRepository
	cache  utils.CacheService
}

func NewImportService(
	props repositories.PropertyRepository,
	images repositories.PropertyImageRepository,
	cache utils.CacheService,
) *ImportService {
	return &ImportService{
		props:  props,
		images: images,
		cache:  cache,
	}
}

// ImportCSV runs a CSV upload through the pipeline. A returned error is
// always structural (importer.ErrMalformed); row-level problems live in
// the report.
func (s *ImportService) ImportCSV(ctx context.Context, r io.Reader) (*importer.Report, error) {
	rows, err := importer.ParseCSV(r)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, rows, nil)
}

// ImportJSON runs a scraper JSON envelope through the pipeline and
// echoes the envelope metadata in the report.
func (s *ImportService) ImportJSON(ctx context.Context, r io.Reader) (*importer.Report, error) {
	rows, meta, err := importer.ParseJSON(r)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, rows, meta)
}

func (s *ImportService) run(ctx context.Context, rows []importer.RawRow, meta *importer.Metadata) (*importer.Report, error) {
	pipeline := importer.NewPipeline(s.props, s.images)
	report, err := pipeline.Run(ctx, rows, meta)
	if err != nil {
		return nil, err
	}

	utils.Logger.Infof("import finished: %d success, %d duplicates, %d errors",
		report.Summary.Success, report.Summary.Duplicates, report.Summary.Errors)

	if report.Summary.Success > 0 {
		s.cache.Clear()
	}
	return report, nil
}
