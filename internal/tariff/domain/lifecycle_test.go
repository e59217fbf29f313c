package domain

import (
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNow  = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	testNode *snowflake.Node
)

func init() {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	testNode = node
}

func draftDoc() TariffDocument {
	return TariffDocument{
		ID:       testNode.Generate(),
		Code:     "TRF-20260301",
		Name:     "Liman Tarifesi",
		Currency: "TRY",
		Status:   StatusDraft,
		Version:  1,
	}
}

func activeDoc(from time.Time) TariffDocument {
	return TariffDocument{
		ID:        testNode.Generate(),
		Code:      "TRF-20250101",
		Name:      "Liman Tarifesi",
		Currency:  "TRY",
		Status:    StatusActive,
		ValidFrom: from,
		Version:   1,
		Active:    true,
	}
}

func priceItem(serviceID snowflake.ID, price string, active bool) TariffItem {
	return TariffItem{
		ID:        testNode.Generate(),
		ServiceID: serviceID,
		UnitPrice: decimal.RequireFromString(price),
		Active:    active,
	}
}

func TestApprove_SetsStatusAndValidity(t *testing.T) {
	doc := draftDoc()
	svcID := testNode.Generate()
	effective := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)

	result, err := Approve(doc,
		[]TariffItem{priceItem(svcID, "100", true)},
		map[snowflake.ID]bool{svcID: true},
		effective, nil, testNow)
	require.NoError(t, err)

	assert.Equal(t, StatusActive, result.Approved.Status)
	assert.True(t, result.Approved.Active)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), result.Approved.ValidFrom)
	assert.Nil(t, result.Superseded)
}

func TestApprove_KeepsCallerSetValidFrom(t *testing.T) {
	doc := draftDoc()
	doc.ValidFrom = time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)

	result, err := Approve(doc, nil, nil, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, doc.ValidFrom, result.Approved.ValidFrom)
}

func TestApprove_SupersedesCurrentDocument(t *testing.T) {
	doc := draftDoc()
	current := activeDoc(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	effective := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	result, err := Approve(doc, nil, nil, effective, &current, testNow)
	require.NoError(t, err)

	require.NotNil(t, result.Superseded)
	assert.Equal(t, StatusSuperseded, result.Superseded.Status)
	assert.False(t, result.Superseded.Active)

	// Windows are adjacent and non-overlapping: old ends the day before the
	// new one starts.
	require.NotNil(t, result.Superseded.ValidTo)
	assert.Equal(t,
		result.Approved.ValidFrom,
		result.Superseded.ValidTo.AddDate(0, 0, 1))

	// Exactly one of the two is AKTIF afterward.
	assert.Equal(t, StatusActive, result.Approved.Status)

	// The input document is untouched (pure function).
	assert.Equal(t, StatusActive, current.Status)
	assert.Nil(t, current.ValidTo)
}

func TestApprove_EffectiveBeforeCurrentStartRejected(t *testing.T) {
	doc := draftDoc()
	current := activeDoc(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))

	// Closing the current document the day before 2025-01-01 would end it
	// before it started.
	_, err := Approve(doc, nil, nil, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), &current, testNow)
	assert.ErrorIs(t, err, ErrInvalidValidity)

	// The refused approval leaves the current document untouched.
	assert.Equal(t, StatusActive, current.Status)
	assert.Nil(t, current.ValidTo)
}

func TestApprove_RefusesNonDraft(t *testing.T) {
	doc := activeDoc(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	_, err := Approve(doc, nil, nil, testNow, nil, testNow)
	assert.ErrorIs(t, err, ErrInvalidState)

	doc.Status = StatusSuperseded
	_, err = Approve(doc, nil, nil, testNow, nil, testNow)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestApprove_IncompletePricingForActiveService(t *testing.T) {
	doc := draftDoc()
	pricedID := testNode.Generate()
	zeroID := testNode.Generate()
	items := []TariffItem{
		priceItem(pricedID, "100", true),
		priceItem(zeroID, "0", true),
	}
	activeServices := map[snowflake.ID]bool{pricedID: true, zeroID: true}

	_, err := Approve(doc, items, activeServices, testNow, nil, testNow)
	assert.ErrorIs(t, err, ErrIncompletePricing)
}

func TestApprove_InactiveServiceExemptFromCompleteness(t *testing.T) {
	doc := draftDoc()
	inactiveID := testNode.Generate()
	items := []TariffItem{priceItem(inactiveID, "0", true)}

	result, err := Approve(doc, items, map[snowflake.ID]bool{}, testNow, nil, testNow)
	require.NoError(t, err)
	assert.Equal(t, StatusActive, result.Approved.Status)
}

func TestApprove_WithdrawnItemExemptFromCompleteness(t *testing.T) {
	doc := draftDoc()
	svcID := testNode.Generate()
	items := []TariffItem{priceItem(svcID, "0", false)}

	_, err := Approve(doc, items, map[snowflake.ID]bool{svcID: true}, testNow, nil, testNow)
	assert.NoError(t, err)
}

func TestDiscard_DraftOnly(t *testing.T) {
	doc := draftDoc()
	out, err := Discard(doc, testNow)
	require.NoError(t, err)
	assert.Equal(t, StatusSuperseded, out.Status)
	assert.False(t, out.Active)

	_, err = Discard(out, testNow)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRetire_ActiveOnly(t *testing.T) {
	doc := activeDoc(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	out, err := Retire(doc, end, testNow)
	require.NoError(t, err)
	assert.Equal(t, StatusSuperseded, out.Status)
	require.NotNil(t, out.ValidTo)
	assert.Equal(t, end, *out.ValidTo)

	_, err = Retire(out, end, testNow)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestRetire_EndBeforeStartRejected(t *testing.T) {
	doc := activeDoc(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	_, err := Retire(doc, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), testNow)
	assert.ErrorIs(t, err, ErrInvalidValidity)
}
