package model

// Service is a bookable treatment with its full slot list. Slots are
// per-service time labels, not tied to any particular date.
type Service struct {
	Base
	Name  string     `db:"name" json:"name"`
	Price float64    `db:"price" json:"price"`
	Slots StringList `db:"slots" json:"slots"`
}

// ServiceSummary is the catalog listing shape: names and prices only,
// no slot lists.
type ServiceSummary struct {
	Base
	Name  string  `db:"name" json:"name"`
	Price float64 `db:"price" json:"price"`
}
