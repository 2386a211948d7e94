package collection

import (
	"context"
	"io"

	csvimport "github.com/PLZ-test/wms/internal/infrastructure/import"
	"go.uber.org/zap"
)

// ProcessSpreadsheet ingests an uploaded order CSV through the same pipeline
// as channel collection: validate, deduplicate, materialize. File-level
// problems (bad encoding, missing columns, no rows) fail the whole upload;
// row-level problems become ERROR orders. The duplicate policy applies to this
// run only; an invalid policy falls back to the service default.
func (s *Service) ProcessSpreadsheet(ctx context.Context, r io.Reader, policy DuplicatePolicy) (BatchResult, error) {
	raws, err := csvimport.ReadOrders(r)
	if err != nil {
		return BatchResult{}, err
	}

	if !policy.IsValid() {
		policy = s.opts.Policy
	}
	result := s.materializeBatch(ctx, raws, policy)

	s.logger.Info("spreadsheet processed",
		zap.String("result", result.Summary()),
	)
	return result, nil
}
