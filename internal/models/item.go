package models

// Item represents an inventory item owned by a user.
type Item struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description,omitempty"`
	UserID      string `json:"userId,omitempty"`
	CreatedAt   string `json:"createdAt,omitempty"`
}

// ItemInput is the request body for creating or updating an item.
type ItemInput struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Quantity    int    `json:"quantity"`
	Description string `json:"description,omitempty"`
}

// Categories is the fixed set of item categories. "Lainnya" is the
// catch-all bucket.
var Categories = []string{
	"Alat Ukur",
	"Alat Gelas",
	"Bahan Kimia",
	"Peralatan Elektronik",
	"Peralatan Keselamatan",
	"Peralatan Umum",
	"Lainnya",
}

// ValidCategory reports whether c is one of the fixed categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}
