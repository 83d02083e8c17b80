package model

type Supplier struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	ContactInfo string `gorm:"type:varchar(255)" json:"contact_info"`
	Address     string `gorm:"type:varchar(255)" json:"address"`

	Purchases []Purchase `json:"purchases,omitempty" validate:"-"`
}
