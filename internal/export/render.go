package export

import (
	"bytes"
	"fmt"

	"billbook/internal/domain"
)

// Render encodes doc in the requested format. CSV output starts with a UTF-8 BOM.
func Render(doc *domain.Document, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		var buf bytes.Buffer
		buf.Write(BOM)
		w := NewWriter(&buf)
		if err := w.WriteHeader(); err != nil {
			return nil, fmt.Errorf("writing csv header: %w", err)
		}
		if err := w.WriteDocument(doc); err != nil {
			return nil, fmt.Errorf("writing csv rows: %w", err)
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, fmt.Errorf("flushing csv: %w", err)
		}
		return buf.Bytes(), nil
	case FormatXLSX:
		return WriteXLSX(doc)
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedExportFormat, f)
}
