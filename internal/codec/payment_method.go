package codec

import "github.com/psoares/finsync/internal/models"

// ApplyPaymentMethod copies the fields present in rec onto m. The client has
// shipped both snake_case and camelCase spellings of these fields, and encodes
// the booleans as 1/0.
func ApplyPaymentMethod(rec Record, m *models.PaymentMethod) {
	setString(rec, &m.Name, "name")
	setString(rec, &m.Type, "type")
	setInt(rec, &m.IconCode, "icon_code", "iconCode")
	setBool(rec, &m.RequiresBank, "requires_bank", "requiresBank")
	setBool(rec, &m.IsActive, "is_active", "isActive")
	setInt(rec, &m.Usage, "usage")
	setStringPtr(rec, &m.Logo, "logo")
}

// PaymentMethodToClient renders a stored payment method in the client's
// shape, booleans as 1/0.
func PaymentMethodToClient(m models.PaymentMethod) Record {
	return Record{
		"id":            m.ID,
		"name":          m.Name,
		"type":          m.Type,
		"icon_code":     m.IconCode,
		"requires_bank": boolToInt(m.RequiresBank),
		"is_active":     boolToInt(m.IsActive),
		"usage":         m.Usage,
		"logo":          m.Logo,
		"updatedAt":     FormatTime(m.UpdatedAt),
		"deletedAt":     FormatTimePtr(m.DeletedAt),
	}
}
