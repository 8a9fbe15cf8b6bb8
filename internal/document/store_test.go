package document_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billbook/internal/document"
	"billbook/internal/domain"
	"billbook/internal/pricing"
)

func testRefs() *pricing.ReferenceData {
	return &pricing.ReferenceData{
		Country: "IN",
		Units: []domain.Unit{
			{ID: "u-box", ShortName: "BOX"},
			{ID: "u-pcs", ShortName: "PCS"},
		},
		Conversions: []domain.UnitConversion{
			{ID: "c-box-pcs", PrimaryUnitID: "u-box", SecondaryUnitID: "u-pcs", ConversionRate: 12},
		},
		Catalog: []domain.CatalogItem{
			{
				ID: "cat-soap", Name: "Soap", SalePrice: 100, PurchasePrice: 80,
				TaxRate: "GST18", HSNCode: "34011110",
				WholesaleQuantity: 10, WholesalePrice: 90,
				UnitConversionID: "c-box-pcs",
			},
		},
		TaxRates: pricing.TaxRateTable{
			"IN": {
				{Code: "GST5", Label: "GST@5%"},
				{Code: "GST18", Label: "GST@18%"},
			},
			"AE": {
				{Code: "VAT5", Label: "VAT 5%"},
			},
		},
	}
}

func newStore(t *testing.T) *document.Store {
	t.Helper()
	doc := domain.NewDocument(domain.DocumentKindSale, domain.TransactionTypeCash)
	doc.Country = "IN"
	return document.NewStore(testRefs(), nil, doc)
}

// addSoap adds one catalog row and returns its id.
func addSoap(t *testing.T, s *document.Store) uuid.UUID {
	t.Helper()
	require.NoError(t, s.Dispatch(document.AddItem{CatalogItemID: "cat-soap"}))
	items := s.Document().Items
	return items[len(items)-1].ID
}

func TestNewStore_SettlesTotals(t *testing.T) {
	s := newStore(t)

	doc := s.Document()
	require.NotNil(t, doc.BalanceAmount)
	assert.Equal(t, 0.0, *doc.BalanceAmount)
	assert.Len(t, doc.Items, 1)
	assert.Equal(t, 1, s.RecomputeCount())
	assert.Equal(t, 1, s.WriteCount())
	assert.Equal(t, domain.ValidationStatePristine, s.State().ValidationState)
}

func TestStore_AddCatalogItem(t *testing.T) {
	s := newStore(t)

	addSoap(t, s)

	doc := s.Document()
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "Soap", doc.Items[1].ItemName)
	assert.Equal(t, 118.0, doc.Items[1].Amount)
	assert.Equal(t, 118.0, doc.Total)
	assert.Equal(t, 18.0, doc.TaxAmount)
	assert.Equal(t, 118.0, doc.PaidAmount)
	assert.Equal(t, 0.0, *doc.BalanceAmount)
}

func TestStore_AddUnknownCatalogItemLeavesStateUntouched(t *testing.T) {
	s := newStore(t)
	before := s.State()

	err := s.Dispatch(document.AddItem{CatalogItemID: "missing"})

	assert.ErrorIs(t, err, domain.ErrCatalogItemNotFound)
	assert.Equal(t, before, s.State())
}

func TestStore_EachMutationRecomputesOnce(t *testing.T) {
	s := newStore(t)
	itemID := addSoap(t, s)
	require.NoError(t, s.Dispatch(document.AddCharge{Name: "Loading", Amount: 10}))
	chargeID := s.Document().Charges[0].ID

	cmds := []document.Command{
		document.AddItem{},
		document.UpdateItem{ItemID: itemID, Field: domain.ItemFieldPrimaryQuantity, Value: 2},
		document.UpdateItem{ItemID: itemID, Field: domain.ItemFieldDiscountPercent, Value: "5"},
		document.AddCharge{Name: "Freight", Amount: 25},
		document.UpdateCharge{ChargeID: chargeID, Field: "amount", Value: 12.5},
		document.RemoveCharge{ChargeID: chargeID},
		document.UpdateField{Field: domain.DocumentFieldShipping, Value: 3},
		document.UpdateField{Field: domain.DocumentFieldRoundOff, Value: "0.5"},
		document.RemoveItem{ItemID: itemID},
	}
	for _, cmd := range cmds {
		before := s.RecomputeCount()
		require.NoError(t, s.Dispatch(cmd), cmd.Type())
		assert.Equal(t, before+1, s.RecomputeCount(), cmd.Type())
	}
}

func TestStore_FixedPointSkipsUnchangedWrite(t *testing.T) {
	s := newStore(t)
	itemID := addSoap(t, s)
	recomputes, writes := s.RecomputeCount(), s.WriteCount()

	require.NoError(t, s.Dispatch(document.UpdateItem{ItemID: itemID, Field: domain.ItemFieldItemName, Value: "Soap bar"}))

	assert.Equal(t, recomputes+1, s.RecomputeCount())
	assert.Equal(t, writes, s.WriteCount())

	require.NoError(t, s.Dispatch(document.UpdateItem{ItemID: itemID, Field: domain.ItemFieldPricePerUnit, Value: 200}))
	assert.Equal(t, writes+1, s.WriteCount())
}

func TestStore_TextFieldsDoNotRecompute(t *testing.T) {
	s := newStore(t)
	before := s.RecomputeCount()

	require.NoError(t, s.Dispatch(document.UpdateField{Field: domain.DocumentFieldPartyName, Value: " Acme "}))
	require.NoError(t, s.Dispatch(document.UpdateField{Field: domain.DocumentFieldNotes, Value: "fragile"}))
	require.NoError(t, s.Dispatch(document.AddTransportation{Transportation: domain.Transportation{TransporterName: "Blue Dart"}}))

	assert.Equal(t, before, s.RecomputeCount())
	assert.Equal(t, "Acme", s.Document().PartyName)
	assert.Equal(t, "fragile", s.Document().Notes)
}

func TestStore_RemoveLastItemResetsRow(t *testing.T) {
	s := newStore(t)
	onlyID := s.Document().Items[0].ID
	require.NoError(t, s.Dispatch(document.UpdateItem{ItemID: onlyID, Field: domain.ItemFieldItemID, Value: "cat-soap"}))

	require.NoError(t, s.Dispatch(document.RemoveItem{ItemID: onlyID}))

	doc := s.Document()
	require.Len(t, doc.Items, 1)
	assert.NotEqual(t, onlyID, doc.Items[0].ID)
	assert.Empty(t, doc.Items[0].ItemName)
	assert.Equal(t, 0.0, doc.Items[0].Amount)
	assert.Equal(t, 0.0, doc.Total)
}

func TestStore_RemoveItem(t *testing.T) {
	s := newStore(t)
	emptyID := s.Document().Items[0].ID
	soapID := addSoap(t, s)

	require.NoError(t, s.Dispatch(document.RemoveItem{ItemID: emptyID}))

	doc := s.Document()
	require.Len(t, doc.Items, 1)
	assert.Equal(t, soapID, doc.Items[0].ID)
}

func TestStore_UpdateItemErrorsLeaveStateUntouched(t *testing.T) {
	s := newStore(t)
	itemID := addSoap(t, s)
	before := s.State()

	err := s.Dispatch(document.UpdateItem{ItemID: uuid.New(), Field: domain.ItemFieldPricePerUnit, Value: 1})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)

	err = s.Dispatch(document.UpdateItem{ItemID: itemID, Field: domain.ItemFieldTaxAmount, Value: 1})
	assert.ErrorIs(t, err, domain.ErrFieldNotEditable)

	err = s.Dispatch(document.UpdateField{Field: domain.DocumentFieldTransactionType, Value: "barter"})
	assert.ErrorIs(t, err, domain.ErrInvalidDocument)

	assert.Equal(t, before, s.State())
}

func TestStore_WholesaleThroughDispatch(t *testing.T) {
	s := newStore(t)
	itemID := addSoap(t, s)

	require.NoError(t, s.Dispatch(document.UpdateItem{ItemID: itemID, Field: domain.ItemFieldPrimaryQuantity, Value: 10}))

	doc := s.Document()
	assert.Equal(t, 90.0, doc.Items[1].PricePerUnit)
	assert.Equal(t, 1062.0, doc.Total)
}

func TestStore_CreditKeepsPaidAmount(t *testing.T) {
	s := newStore(t)
	addSoap(t, s)

	require.NoError(t, s.Dispatch(document.UpdateField{Field: domain.DocumentFieldTransactionType, Value: "credit"}))
	require.NoError(t, s.Dispatch(document.UpdateField{Field: domain.DocumentFieldPaidAmount, Value: 50}))

	doc := s.Document()
	assert.Equal(t, 118.0, doc.Total)
	assert.Equal(t, 50.0, doc.PaidAmount)
	assert.Equal(t, 68.0, *doc.BalanceAmount)
}

func TestStore_CashAlwaysSettled(t *testing.T) {
	s := newStore(t)
	itemID := addSoap(t, s)

	cmds := []document.Command{
		document.UpdateField{Field: domain.DocumentFieldPaidAmount, Value: 10},
		document.UpdateItem{ItemID: itemID, Field: domain.ItemFieldPrimaryQuantity, Value: 3},
		document.AddCharge{Name: "Loading", Amount: 7.4},
		document.UpdateField{Field: domain.DocumentFieldDiscountAmount, Value: 2},
		document.UpdateField{Field: domain.DocumentFieldAdjustment, Value: -1.1},
		document.UpdateItem{ItemID: itemID, Field: domain.ItemFieldAmount, Value: 500},
	}
	for _, cmd := range cmds {
		require.NoError(t, s.Dispatch(cmd))
		doc := s.Document()
		assert.Equal(t, doc.Total, doc.PaidAmount, cmd.Type())
		assert.Equal(t, 0.0, *doc.BalanceAmount, cmd.Type())
	}
}

func TestStore_Charges(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Dispatch(document.AddCharge{Name: "Loading", Amount: 10}))
	chargeID := s.Document().Charges[0].ID

	require.NoError(t, s.Dispatch(document.UpdateCharge{ChargeID: chargeID, Field: "name", Value: "Unloading"}))
	require.NoError(t, s.Dispatch(document.UpdateCharge{ChargeID: chargeID, Field: "amount", Value: "15.5"}))

	doc := s.Document()
	assert.Equal(t, "Unloading", doc.Charges[0].Name)
	assert.Equal(t, 16.0, doc.Total)

	assert.ErrorIs(t, s.Dispatch(document.UpdateCharge{ChargeID: chargeID, Field: "colour"}), domain.ErrUnknownField)
	assert.ErrorIs(t, s.Dispatch(document.RemoveCharge{ChargeID: uuid.New()}), domain.ErrChargeNotFound)

	require.NoError(t, s.Dispatch(document.RemoveCharge{ChargeID: chargeID}))
	assert.Empty(t, s.Document().Charges)
	assert.Equal(t, 0.0, s.Document().Total)
}

func TestStore_Transportation(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Dispatch(document.AddTransportation{Transportation: domain.Transportation{TransporterName: "Blue Dart"}}))
	entry := s.Document().Transportation[0]
	require.NotEqual(t, uuid.Nil, entry.ID)

	require.NoError(t, s.Dispatch(document.UpdateTransportation{TransportationID: entry.ID, Field: "vehicle_number", Value: "KA01AB1234"}))
	assert.Equal(t, "KA01AB1234", s.Document().Transportation[0].VehicleNumber)

	assert.ErrorIs(t, s.Dispatch(document.UpdateTransportation{TransportationID: entry.ID, Field: "speed"}), domain.ErrUnknownField)

	require.NoError(t, s.Dispatch(document.RemoveTransportation{TransportationID: entry.ID}))
	assert.Empty(t, s.Document().Transportation)
	assert.ErrorIs(t, s.Dispatch(document.RemoveTransportation{TransportationID: entry.ID}), domain.ErrTransportationNotFound)
}

func TestStore_CountryChangeRefreshesTaxRates(t *testing.T) {
	s := newStore(t)
	addSoap(t, s)

	require.NoError(t, s.Dispatch(document.UpdateField{Field: domain.DocumentFieldCountry, Value: "AE"}))

	doc := s.Document()
	assert.Equal(t, 0.0, doc.Items[1].TaxRate)
	assert.Equal(t, 100.0, doc.Total)
}

func TestStore_TransientFields(t *testing.T) {
	s := newStore(t)

	require.NoError(t, s.Dispatch(document.SetMode{Mode: domain.DocumentModeEdit}))
	require.NoError(t, s.Dispatch(document.SetActiveTab{Tab: "transport"}))
	require.NoError(t, s.Dispatch(document.SetSubmitting{Submitting: true}))
	require.NoError(t, s.Dispatch(document.SetValidationErrors{Errors: map[string]string{"date": "required"}}))

	st := s.State()
	assert.Equal(t, domain.DocumentModeEdit, st.Mode)
	assert.Equal(t, "transport", st.ActiveTab)
	assert.True(t, st.IsSubmitting)
	assert.Equal(t, map[string]string{"date": "required"}, st.ValidationErrors)

	assert.ErrorIs(t, s.Dispatch(document.SetMode{Mode: "print"}), domain.ErrInvalidDocument)
}

func TestStore_SetDocumentAndReset(t *testing.T) {
	s := newStore(t)
	doc := domain.Document{
		Kind:            domain.DocumentKindPurchase,
		TransactionType: domain.TransactionTypeCredit,
		Items:           []domain.DocumentItem{{ItemName: "Imported", Amount: 106.2}},
	}

	require.NoError(t, s.Dispatch(document.SetDocument{Document: doc}))

	got := s.Document()
	assert.Equal(t, domain.DocumentStatusDraft, got.Status)
	assert.NotEqual(t, uuid.Nil, got.Items[0].ID)
	assert.Equal(t, 106.0, got.Total)
	assert.Equal(t, 106.0, *got.BalanceAmount)
	assert.NotNil(t, got.Charges)

	require.NoError(t, s.Dispatch(document.Reset{}))

	st := s.State()
	assert.Len(t, st.Document.Items, 1)
	assert.Equal(t, domain.DocumentKindPurchase, st.Document.Kind)
	assert.Equal(t, "IN", st.Document.Country)
	assert.Equal(t, domain.ValidationStatePristine, st.ValidationState)
	assert.Empty(t, st.ValidationErrors)
	assert.Equal(t, 0.0, st.Document.Total)
}

func TestStore_SuggestedRoundOff(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.Dispatch(document.AddCharge{Name: "Misc", Amount: 106.2}))

	assert.Equal(t, -0.2, s.SuggestedRoundOff())
	assert.Equal(t, 106.2, s.Totals().Subtotal)
}

func TestStore_StateIsACopy(t *testing.T) {
	s := newStore(t)

	st := s.State()
	st.Document.Items[0].ItemName = "mutated"
	st.ValidationErrors["x"] = "y"

	assert.Empty(t, s.Document().Items[0].ItemName)
	assert.Empty(t, s.State().ValidationErrors)
}
