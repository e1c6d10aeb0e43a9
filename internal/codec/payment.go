package codec

import "github.com/psoares/finsync/internal/models"

// ApplyPayment copies the fields present in rec onto m. The payment entity is
// the one the client most often sends in snake_case, so that spelling is the
// canonical one here.
func ApplyPayment(rec Record, m *models.Payment) {
	setInt64(rec, &m.AccountID, "account_id", "accountId")
	setInt64(rec, &m.PaymentMethodID, "payment_method_id", "paymentMethodId")
	setInt64Ptr(rec, &m.BankAccountID, "bank_account_id", "bankAccountId")
	setInt64Ptr(rec, &m.CreditCardID, "credit_card_id", "creditCardId")
	setDecimal(rec, &m.Value, "value")
	setString(rec, &m.PaymentDate, "payment_date", "paymentDate")
	setStringPtr(rec, &m.Observation, "observation")
}

// PaymentToClient renders a stored payment in the client's shape.
func PaymentToClient(m models.Payment) Record {
	return Record{
		"id":                m.ID,
		"account_id":        m.AccountID,
		"payment_method_id": m.PaymentMethodID,
		"bank_account_id":   m.BankAccountID,
		"credit_card_id":    m.CreditCardID,
		"value":             decimalOut(m.Value),
		"payment_date":      m.PaymentDate,
		"observation":       m.Observation,
		"created_at":        FormatTime(m.CreatedAt),
		"updatedAt":         FormatTime(m.UpdatedAt),
		"deletedAt":         FormatTimePtr(m.DeletedAt),
	}
}
