package models

// Bank represents a banking institution accounts belong to
type Bank struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name,omitempty"`
	Color     string `json:"color"`
	Notes     string `json:"notes,omitempty"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
