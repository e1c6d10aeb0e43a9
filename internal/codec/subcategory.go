package codec

import "github.com/psoares/finsync/internal/models"

// ApplySubcategory copies the fields present in rec onto m. The client names
// the parent-type FK "accountId" and occasionally sends the name under
// "categoria" instead of "description".
func ApplySubcategory(rec Record, m *models.Subcategory) {
	setInt64(rec, &m.AccountTypeID, "accountId", "account_id")
	setString(rec, &m.Description, "description", "categoria")
	setStringPtr(rec, &m.Logo, "logo")
}

// SubcategoryToClient renders a stored subcategory in the client's shape.
func SubcategoryToClient(m models.Subcategory) Record {
	return Record{
		"id":          m.ID,
		"accountId":   m.AccountTypeID,
		"description": m.Description,
		"logo":        m.Logo,
		"updatedAt":   FormatTime(m.UpdatedAt),
		"deletedAt":   FormatTimePtr(m.DeletedAt),
	}
}
