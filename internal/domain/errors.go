package domain

import "errors"

var (
	ErrNotFound                = errors.New("resource not found")
	ErrDocumentNotFound        = errors.New("document not found")
	ErrItemNotFound            = errors.New("document item not found")
	ErrChargeNotFound          = errors.New("charge not found")
	ErrTransportationNotFound  = errors.New("transportation entry not found")
	ErrCatalogItemNotFound     = errors.New("catalog item not found")
	ErrUnknownCommand          = errors.New("unknown command")
	ErrUnknownField            = errors.New("unknown field")
	ErrFieldNotEditable        = errors.New("field is derived and cannot be edited")
	ErrUnitsNotAssigned        = errors.New("both primary and secondary units must be assigned")
	ErrValidationFailed        = errors.New("document failed validation")
	ErrInvalidTransition       = errors.New("invalid validation state transition")
	ErrInvalidDocument         = errors.New("document does not match expected format")
	ErrDocumentSubmitted       = errors.New("document has already been submitted")
	ErrUnsupportedExportFormat = errors.New("unsupported export format")
	ErrUploadFailed            = errors.New("export upload to storage failed")
)
