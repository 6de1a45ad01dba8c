package domain

// Supplier represents a vendor that stock is ordered from. Suppliers are
// immutable once created.
type Supplier struct {
	ID      string
	Name    string
	Contact string
}

// Fields returns the supplier in persisted column order: id, name, contact.
func (s Supplier) Fields() []string {
	return []string{s.ID, s.Name, s.Contact}
}
