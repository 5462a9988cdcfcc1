package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/supercpe/cpe-tracker/internal/entity"
)

// BrokerWorksheetCSV writes the same rows as the XLSX export as CSV, which
// is what the original upload flow accepted.
func (s *Service) BrokerWorksheetCSV(w io.Writer, payloads []entity.BrokerPayload) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, p := range payloads {
		if err := cw.Write(rowFor(p)); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
