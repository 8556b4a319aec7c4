package model

// Doctor is a staff listing managed by admins.
type Doctor struct {
	Base
	Name      string  `db:"name" json:"name"`
	Email     string  `db:"email" json:"email"`
	Specialty string  `db:"specialty" json:"specialty"`
	ImageURL  *string `db:"image_url" json:"img,omitempty"`
}

// CreateDoctorRequest represents doctor creation parameters
type CreateDoctorRequest struct {
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Specialty string  `json:"specialty" binding:"required"`
	ImageURL  *string `json:"img"`
}
