package document

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"billbook/internal/domain"
	"billbook/internal/pricing"
	"billbook/internal/validator"
	"billbook/internal/validator/rules"
)

// State is everything the store owns: the document plus editing state around it.
type State struct {
	Document         domain.Document        `json:"document"`
	Mode             domain.DocumentMode    `json:"mode"`
	IsSubmitting     bool                   `json:"is_submitting"`
	ValidationErrors map[string]string      `json:"validation_errors"`
	ValidationState  domain.ValidationState `json:"validation_state"`
	ActiveTab        string                 `json:"active_tab"`
}

// Store owns one document and changes it only through Dispatch. It is not safe for
// concurrent use.
type Store struct {
	refs   *pricing.ReferenceData
	engine *validator.Engine
	state  State

	recomputes int
	writes     int
}

// NewStore creates a store around doc and settles its totals. A nil engine gets the default
// rules, with HSN checks when refs carries an HSN master.
func NewStore(refs *pricing.ReferenceData, engine *validator.Engine, doc domain.Document) *Store {
	if engine == nil {
		var hsn []domain.HSNEntry
		if refs != nil {
			hsn = refs.HSN
		}
		engine = validator.NewDefaultEngine(rules.NewHSNLookup(hsn))
	}
	s := &Store{
		refs:   refs,
		engine: engine,
		state: State{
			Document:         normalize(doc),
			Mode:             domain.DocumentModeCreate,
			ValidationErrors: map[string]string{},
			ValidationState:  domain.ValidationStatePristine,
		},
	}
	s.recompute()
	return s
}

// State returns a copy of the current state.
func (s *Store) State() State {
	out := s.state
	out.Document = s.state.Document.Clone()
	out.ValidationErrors = maps.Clone(s.state.ValidationErrors)
	return out
}

// Document returns a copy of the current document.
func (s *Store) Document() domain.Document {
	return s.state.Document.Clone()
}

// Totals returns the settled totals of the current document, subtotal included.
func (s *Store) Totals() pricing.Totals {
	doc := &s.state.Document
	return pricing.EnforceCashPolicy(doc.TransactionType, pricing.Aggregate(doc))
}

// SuggestedRoundOff is the round-off that would bring the current subtotal to a whole unit.
func (s *Store) SuggestedRoundOff() float64 {
	return pricing.SuggestRoundOff(s.Totals().Subtotal)
}

// RecomputeCount is how many times the totals pipeline ran.
func (s *Store) RecomputeCount() int { return s.recomputes }

// WriteCount is how many pipeline runs actually changed the stored totals.
func (s *Store) WriteCount() int { return s.writes }

func (s *Store) editor() *pricing.Editor {
	return pricing.NewEditor(s.refs, s.state.Document.Kind, s.state.Document.Country)
}

// Dispatch applies cmd. A command that fails leaves the state untouched.
func (s *Store) Dispatch(cmd Command) error {
	switch c := cmd.(type) {
	case SetDocument:
		s.state.Document = normalize(c.Document)
		s.touch()
		s.recompute()
		return nil
	case Reset:
		kind, txType := s.state.Document.Kind, s.state.Document.TransactionType
		s.state = State{
			Document:         domain.NewDocument(kind, txType),
			Mode:             domain.DocumentModeCreate,
			ValidationErrors: map[string]string{},
			ValidationState:  domain.ValidationStatePristine,
		}
		s.state.Document.Country = s.countryDefault()
		s.recompute()
		return nil
	case SetMode:
		if !c.Mode.IsValid() {
			return fmt.Errorf("mode %q: %w", c.Mode, domain.ErrInvalidDocument)
		}
		s.state.Mode = c.Mode
		return nil
	case SetActiveTab:
		s.state.ActiveTab = c.Tab
		return nil
	case SetSubmitting:
		s.state.IsSubmitting = c.Submitting
		return nil
	case SetValidationErrors:
		s.state.ValidationErrors = maps.Clone(c.Errors)
		if s.state.ValidationErrors == nil {
			s.state.ValidationErrors = map[string]string{}
		}
		return nil
	}

	if s.state.Document.Status == domain.DocumentStatusSubmitted {
		return fmt.Errorf("%s: %w", cmd.Type(), domain.ErrDocumentSubmitted)
	}

	switch c := cmd.(type) {
	case UpdateField:
		return s.updateField(c.Field, c.Value)
	case AddItem:
		return s.addItem(c.CatalogItemID)
	case UpdateItem:
		return s.updateItem(c.ItemID, c.Field, c.Value)
	case RemoveItem:
		return s.removeItem(c.ItemID)
	case AddCharge:
		s.state.Document.Charges = append(s.state.Document.Charges, domain.Charge{
			ID:     uuid.New(),
			Name:   c.Name,
			Amount: c.Amount,
		})
		s.touch()
		s.recompute()
		return nil
	case UpdateCharge:
		return s.updateCharge(c.ChargeID, c.Field, c.Value)
	case RemoveCharge:
		idx := slices.IndexFunc(s.state.Document.Charges, func(ch domain.Charge) bool { return ch.ID == c.ChargeID })
		if idx < 0 {
			return fmt.Errorf("charge %s: %w", c.ChargeID, domain.ErrChargeNotFound)
		}
		s.state.Document.Charges = slices.Delete(s.state.Document.Charges, idx, idx+1)
		s.touch()
		s.recompute()
		return nil
	case AddTransportation:
		t := c.Transportation
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		s.state.Document.Transportation = append(s.state.Document.Transportation, t)
		s.touch()
		return nil
	case UpdateTransportation:
		return s.updateTransportation(c.TransportationID, c.Field, c.Value)
	case RemoveTransportation:
		idx := slices.IndexFunc(s.state.Document.Transportation, func(t domain.Transportation) bool { return t.ID == c.TransportationID })
		if idx < 0 {
			return fmt.Errorf("transportation %s: %w", c.TransportationID, domain.ErrTransportationNotFound)
		}
		s.state.Document.Transportation = slices.Delete(s.state.Document.Transportation, idx, idx+1)
		s.touch()
		return nil
	default:
		return fmt.Errorf("command %T: %w", cmd, domain.ErrUnknownCommand)
	}
}

// recompute runs aggregate, cash policy and a fixed-point check, then writes back only
// when something changed.
func (s *Store) recompute() {
	s.recomputes++
	doc := &s.state.Document
	t := pricing.EnforceCashPolicy(doc.TransactionType, pricing.Aggregate(doc))

	if doc.BalanceAmount != nil &&
		doc.Total == t.Total &&
		doc.TaxAmount == t.TaxAmount &&
		doc.PaidAmount == t.PaidAmount &&
		*doc.BalanceAmount == t.BalanceAmount {
		return
	}

	doc.Total = t.Total
	doc.TaxAmount = t.TaxAmount
	doc.PaidAmount = t.PaidAmount
	balance := t.BalanceAmount
	doc.BalanceAmount = &balance
	s.writes++
}

// touch drops a settled validation outcome once the document changes.
func (s *Store) touch() {
	switch s.state.ValidationState {
	case domain.ValidationStateValid, domain.ValidationStateInvalid:
		s.state.ValidationState = domain.ValidationStatePristine
	}
}

func (s *Store) countryDefault() string {
	if s.refs == nil {
		return ""
	}
	return s.refs.Country
}

func (s *Store) itemIndex(id uuid.UUID) (int, error) {
	idx := slices.IndexFunc(s.state.Document.Items, func(it domain.DocumentItem) bool { return it.ID == id })
	if idx < 0 {
		return -1, fmt.Errorf("item %s: %w", id, domain.ErrItemNotFound)
	}
	return idx, nil
}

func (s *Store) addItem(catalogID string) error {
	item := domain.NewDocumentItem()
	if catalogID != "" {
		seeded, err := s.editor().NewItemFromCatalog(catalogID)
		if err != nil {
			return err
		}
		item = seeded
	}
	s.state.Document.Items = append(s.state.Document.Items, item)
	s.touch()
	s.recompute()
	return nil
}

func (s *Store) updateItem(id uuid.UUID, field domain.ItemField, value any) error {
	idx, err := s.itemIndex(id)
	if err != nil {
		return err
	}
	item := s.state.Document.Items[idx]
	if err := s.editor().Apply(&item, field, value); err != nil {
		return err
	}
	s.state.Document.Items[idx] = item
	s.touch()
	s.recompute()
	return nil
}

// removeItem deletes a row; the last row is replaced with an empty one instead.
func (s *Store) removeItem(id uuid.UUID) error {
	idx, err := s.itemIndex(id)
	if err != nil {
		return err
	}
	if len(s.state.Document.Items) == 1 {
		s.state.Document.Items[0] = domain.NewDocumentItem()
	} else {
		s.state.Document.Items = slices.Delete(s.state.Document.Items, idx, idx+1)
	}
	s.touch()
	s.recompute()
	return nil
}

func (s *Store) updateCharge(id uuid.UUID, field string, value any) error {
	idx := slices.IndexFunc(s.state.Document.Charges, func(ch domain.Charge) bool { return ch.ID == id })
	if idx < 0 {
		return fmt.Errorf("charge %s: %w", id, domain.ErrChargeNotFound)
	}
	charge := &s.state.Document.Charges[idx]
	switch field {
	case "name":
		charge.Name = cast.ToString(value)
	case "amount":
		charge.Amount = pricing.ParseNumber(value)
	default:
		return fmt.Errorf("charge field %q: %w", field, domain.ErrUnknownField)
	}
	s.touch()
	s.recompute()
	return nil
}

func (s *Store) updateTransportation(id uuid.UUID, field string, value any) error {
	idx := slices.IndexFunc(s.state.Document.Transportation, func(t domain.Transportation) bool { return t.ID == id })
	if idx < 0 {
		return fmt.Errorf("transportation %s: %w", id, domain.ErrTransportationNotFound)
	}
	t := &s.state.Document.Transportation[idx]
	v := cast.ToString(value)
	switch field {
	case "transporter_name":
		t.TransporterName = v
	case "vehicle_number":
		t.VehicleNumber = v
	case "delivery_date":
		t.DeliveryDate = v
	case "delivery_place":
		t.DeliveryPlace = v
	case "notes":
		t.Notes = v
	default:
		return fmt.Errorf("transportation field %q: %w", field, domain.ErrUnknownField)
	}
	s.touch()
	return nil
}

// updateField sets a document-level field. Fields that feed the totals run the pipeline;
// plain text fields do not.
func (s *Store) updateField(field domain.DocumentField, value any) error {
	doc := &s.state.Document
	text := strings.TrimSpace(cast.ToString(value))
	affectsTotals := false

	switch field {
	case domain.DocumentFieldNumber:
		doc.Number = text
	case domain.DocumentFieldDate:
		doc.Date = text
	case domain.DocumentFieldPartyID:
		doc.PartyID = text
	case domain.DocumentFieldPartyName:
		doc.PartyName = text
	case domain.DocumentFieldBankID:
		doc.BankID = text
	case domain.DocumentFieldChequeNumber:
		doc.ChequeNumber = text
	case domain.DocumentFieldChequeDate:
		doc.ChequeDate = text
	case domain.DocumentFieldNotes:
		doc.Notes = cast.ToString(value)
	case domain.DocumentFieldKind:
		kind := domain.DocumentKind(text)
		if !kind.IsValid() {
			return fmt.Errorf("kind %q: %w", text, domain.ErrInvalidDocument)
		}
		doc.Kind = kind
	case domain.DocumentFieldPaymentType:
		pt := domain.PaymentType(text)
		if !pt.IsValid() {
			return fmt.Errorf("payment type %q: %w", text, domain.ErrInvalidDocument)
		}
		doc.PaymentType = pt
	case domain.DocumentFieldTransactionType:
		tt := domain.TransactionType(text)
		if !tt.IsValid() {
			return fmt.Errorf("transaction type %q: %w", text, domain.ErrInvalidDocument)
		}
		doc.TransactionType = tt
		affectsTotals = true
	case domain.DocumentFieldCountry:
		doc.Country = text
		editor := s.editor()
		for i := range doc.Items {
			editor.Refresh(&doc.Items[i])
		}
		affectsTotals = true
	case domain.DocumentFieldDiscountAmount:
		doc.DiscountAmount = pricing.ParseNumber(value)
		affectsTotals = true
	case domain.DocumentFieldShipping:
		doc.Shipping = pricing.ParseNumber(value)
		affectsTotals = true
	case domain.DocumentFieldPackaging:
		doc.Packaging = pricing.ParseNumber(value)
		affectsTotals = true
	case domain.DocumentFieldAdjustment:
		doc.Adjustment = pricing.ParseNumber(value)
		affectsTotals = true
	case domain.DocumentFieldRoundOff:
		doc.RoundOff = pricing.ParseNumber(value)
		affectsTotals = true
	case domain.DocumentFieldPaidAmount:
		doc.PaidAmount = pricing.ParseNumber(value)
		affectsTotals = true
	default:
		return fmt.Errorf("document field %q: %w", field, domain.ErrUnknownField)
	}

	s.touch()
	if affectsTotals {
		s.recompute()
	}
	return nil
}

func normalize(doc domain.Document) domain.Document {
	doc = doc.Clone()
	if doc.Items == nil {
		doc.Items = []domain.DocumentItem{}
	}
	if doc.Charges == nil {
		doc.Charges = []domain.Charge{}
	}
	if doc.Transportation == nil {
		doc.Transportation = []domain.Transportation{}
	}
	if doc.Status == "" {
		doc.Status = domain.DocumentStatusDraft
	}
	for i := range doc.Items {
		if doc.Items[i].ID == uuid.Nil {
			doc.Items[i].ID = uuid.New()
		}
	}
	for i := range doc.Charges {
		if doc.Charges[i].ID == uuid.Nil {
			doc.Charges[i].ID = uuid.New()
		}
	}
	return doc
}
