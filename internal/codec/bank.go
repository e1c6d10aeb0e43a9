package codec

import "github.com/psoares/finsync/internal/models"

// ApplyBank copies the fields present in rec onto m.
func ApplyBank(rec Record, m *models.Bank) {
	setInt(rec, &m.Code, "code")
	setString(rec, &m.Name, "name")
	setString(rec, &m.Description, "description")
	setString(rec, &m.Agency, "agency")
	setString(rec, &m.Account, "account")
	setInt64(rec, &m.Color, "color")
}

// BankToClient renders a stored bank record in the client's shape.
func BankToClient(m models.Bank) Record {
	return Record{
		"id":          m.ID,
		"code":        m.Code,
		"name":        m.Name,
		"description": m.Description,
		"agency":      m.Agency,
		"account":     m.Account,
		"color":       m.Color,
		"updatedAt":   FormatTime(m.UpdatedAt),
		"deletedAt":   FormatTimePtr(m.DeletedAt),
	}
}
