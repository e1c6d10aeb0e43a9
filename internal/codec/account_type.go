package codec

import "github.com/psoares/finsync/internal/models"

// ApplyAccountType copies the fields present in rec onto m. Identity and
// owner fields in rec are ignored; the server assigns both.
func ApplyAccountType(rec Record, m *models.AccountType) {
	setString(rec, &m.Name, "name")
	setStringPtr(rec, &m.Logo, "logo")
}

// AccountTypeToClient renders a stored account type in the client's shape.
func AccountTypeToClient(m models.AccountType) Record {
	return Record{
		"id":        m.ID,
		"name":      m.Name,
		"logo":      m.Logo,
		"updatedAt": FormatTime(m.UpdatedAt),
		"deletedAt": FormatTimePtr(m.DeletedAt),
	}
}
