package codec

import "github.com/psoares/finsync/internal/models"

// ApplyAccount copies the fields present in rec onto m. isRecurrent and
// payInAdvance arrive as 1/0 from the mobile store and as true/false from
// older clients; both are accepted.
func ApplyAccount(rec Record, m *models.Account) {
	setInt64(rec, &m.TypeID, "typeId", "type_id")
	setInt64Ptr(rec, &m.CategoryID, "categoryId", "category_id")
	setString(rec, &m.Description, "description")
	setDecimal(rec, &m.Value, "value")
	setDecimalPtr(rec, &m.EstimatedValue, "estimatedValue", "estimated_value")
	setInt(rec, &m.DueDay, "dueDay", "due_day")
	setIntPtr(rec, &m.Month, "month")
	setIntPtr(rec, &m.Year, "year")
	setBool(rec, &m.IsRecurrent, "isRecurrent", "is_recurrent")
	setBool(rec, &m.PayInAdvance, "payInAdvance", "pay_in_advance")
	setInt64Ptr(rec, &m.RecurrenceID, "recurrenceId", "recurrence_id")
	setIntPtr(rec, &m.InstallmentIndex, "installmentIndex", "installment_index")
	setIntPtr(rec, &m.InstallmentTotal, "installmentTotal", "installment_total")
	setStringPtr(rec, &m.PurchaseUUID, "purchaseUuid", "purchase_uuid")
	setIntPtr(rec, &m.BestBuyDay, "bestBuyDay", "best_buy_day")
	setStringPtr(rec, &m.CardBrand, "cardBrand", "card_brand")
	setStringPtr(rec, &m.CardBank, "cardBank", "card_bank")
	setDecimalPtr(rec, &m.CardLimit, "cardLimit", "card_limit")
	setInt64Ptr(rec, &m.CardColor, "cardColor", "card_color")
	setInt64Ptr(rec, &m.CardID, "cardId", "card_id")
	setStringPtr(rec, &m.Logo, "logo")
	setStringPtr(rec, &m.Observation, "observation")
	setStringPtr(rec, &m.Establishment, "establishment")
	setStringPtr(rec, &m.PurchaseDate, "purchaseDate", "purchase_date")
	setStringPtr(rec, &m.CreationDate, "creationDate", "creation_date")
}

// AccountToClient renders a stored account in the client's shape.
func AccountToClient(m models.Account) Record {
	return Record{
		"id":               m.ID,
		"typeId":           m.TypeID,
		"categoryId":       m.CategoryID,
		"description":      m.Description,
		"value":            decimalOut(m.Value),
		"estimatedValue":   decimalPtrOut(m.EstimatedValue),
		"dueDay":           m.DueDay,
		"month":            m.Month,
		"year":             m.Year,
		"isRecurrent":      boolToInt(m.IsRecurrent),
		"payInAdvance":     boolToInt(m.PayInAdvance),
		"recurrenceId":     m.RecurrenceID,
		"installmentIndex": m.InstallmentIndex,
		"installmentTotal": m.InstallmentTotal,
		"purchaseUuid":     m.PurchaseUUID,
		"bestBuyDay":       m.BestBuyDay,
		"cardBrand":        m.CardBrand,
		"cardBank":         m.CardBank,
		"cardLimit":        decimalPtrOut(m.CardLimit),
		"cardColor":        m.CardColor,
		"cardId":           m.CardID,
		"logo":             m.Logo,
		"observation":      m.Observation,
		"establishment":    m.Establishment,
		"purchaseDate":     m.PurchaseDate,
		"creationDate":     m.CreationDate,
		"updatedAt":        FormatTime(m.UpdatedAt),
		"deletedAt":        FormatTimePtr(m.DeletedAt),
	}
}
