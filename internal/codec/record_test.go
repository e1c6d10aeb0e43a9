package codec_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/psoares/finsync/internal/codec"
	"github.com/psoares/finsync/internal/models"
)

func TestRecordInt64_KeyFallbackAndCoercion(t *testing.T) {
	rec := codec.Record{"typeId": float64(7)}

	v, ok := rec.Int64("type_id", "typeId")
	require.True(t, ok)
	assert.Equal(t, int64(7), v)

	rec = codec.Record{"server_id": "42"}
	v, ok = rec.Int64("server_id", "serverId", "id")
	require.True(t, ok)
	assert.Equal(t, int64(42), v)

	rec = codec.Record{"id": json.Number("13")}
	v, ok = rec.Int64("id")
	require.True(t, ok)
	assert.Equal(t, int64(13), v)

	_, ok = codec.Record{}.Int64("id")
	assert.False(t, ok)

	// present null counts as absent for typed access
	_, ok = codec.Record{"id": nil}.Int64("id")
	assert.False(t, ok)
}

func TestRecordBool_Normalization(t *testing.T) {
	cases := []struct {
		value any
		want  bool
	}{
		{true, true},
		{false, false},
		{float64(1), true},
		{float64(0), false},
		{"1", true},
		{"0", false},
		{"true", true},
	}
	for _, tc := range cases {
		got, ok := codec.Record{"is_recurrent": tc.value}.Bool("is_recurrent", "isRecurrent")
		require.True(t, ok, "value %v", tc.value)
		assert.Equal(t, tc.want, got, "value %v", tc.value)
	}
}

func TestRecordDecimal(t *testing.T) {
	rec := codec.Record{"value": 1234.56}
	d, ok := rec.Decimal("value")
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.NewFromFloat(1234.56)))

	rec = codec.Record{"value": "99.90"}
	d, ok = rec.Decimal("value")
	require.True(t, ok)
	assert.True(t, d.Equal(decimal.RequireFromString("99.90")))
}

func TestRecordPresent_DistinguishesNullFromAbsent(t *testing.T) {
	rec := codec.Record{"logo": nil}
	assert.True(t, rec.Present("logo"))
	assert.False(t, rec.Present("observation"))
}

func TestFormatTime_UTCWireFormat(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	ts := time.Date(2025, 3, 10, 9, 30, 0, 123456789, loc)

	out := codec.FormatTime(ts)

	parsed, err := time.Parse(time.RFC3339Nano, out)
	require.NoError(t, err)
	assert.True(t, parsed.Equal(ts))
	assert.Equal(t, time.UTC, parsed.Location())
}

func TestApplyPaymentMethod_BooleansAndKeyVariants(t *testing.T) {
	m := models.PaymentMethod{}
	codec.ApplyPaymentMethod(codec.Record{
		"name":         "PIX",
		"type":         "pix",
		"iconCode":     float64(0xef6e),
		"requiresBank": float64(1),
		"is_active":    true,
		"usage":        float64(2),
	}, &m)

	assert.Equal(t, "PIX", m.Name)
	assert.Equal(t, "pix", m.Type)
	assert.Equal(t, 0xef6e, m.IconCode)
	assert.True(t, m.RequiresBank)
	assert.True(t, m.IsActive)
	assert.Equal(t, models.PaymentMethodUsageBoth, m.Usage)
}

func TestApplyPaymentMethod_OmittedFieldsUntouched(t *testing.T) {
	logo := "💳"
	m := models.PaymentMethod{Name: "Dinheiro", IsActive: true, Logo: &logo}

	codec.ApplyPaymentMethod(codec.Record{"name": "Dinheiro vivo"}, &m)

	assert.Equal(t, "Dinheiro vivo", m.Name)
	assert.True(t, m.IsActive)
	require.NotNil(t, m.Logo)
	assert.Equal(t, "💳", *m.Logo)

	// present null clears the optional field
	codec.ApplyPaymentMethod(codec.Record{"logo": nil}, &m)
	assert.Nil(t, m.Logo)
}

func TestPaymentMethodToClient_BooleansAsIntegers(t *testing.T) {
	m := models.PaymentMethod{
		ID:           4,
		Name:         "Débito C/C",
		Type:         "debit",
		IconCode:     0xe19f,
		RequiresBank: true,
		IsActive:     false,
		Usage:        models.PaymentMethodUsagePay,
	}
	m.UpdatedAt = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	out := codec.PaymentMethodToClient(m)

	assert.Equal(t, 1, out["requires_bank"])
	assert.Equal(t, 0, out["is_active"])
	assert.Equal(t, int64(4), out["id"])
	assert.Equal(t, "2025-05-01T12:00:00Z", out["updatedAt"])
	assert.Nil(t, out["deletedAt"])
}

func TestApplyAccount_PartialUpdateKeepsDecimals(t *testing.T) {
	m := models.Account{
		Description: "Aluguel",
		Value:       decimal.RequireFromString("1500.00"),
	}

	codec.ApplyAccount(codec.Record{"description": "Aluguel + condomínio"}, &m)

	assert.Equal(t, "Aluguel + condomínio", m.Description)
	assert.True(t, m.Value.Equal(decimal.RequireFromString("1500.00")))

	codec.ApplyAccount(codec.Record{"value": 1750.5, "cardLimit": 5000.0}, &m)
	assert.True(t, m.Value.Equal(decimal.NewFromFloat(1750.5)))
	require.NotNil(t, m.CardLimit)
	assert.True(t, m.CardLimit.Equal(decimal.NewFromFloat(5000)))
}
