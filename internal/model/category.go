package model

type Category struct {
	BaseModel
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required,max=255"`

	Products []Product `json:"products,omitempty" validate:"-"`
}
