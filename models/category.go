package models

type Category struct {
	ID       uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string     `gorm:"not null" json:"name"`
	Slug     string     `gorm:"uniqueIndex;not null" json:"slug"`
	Image    string     `json:"image"`
	ParentID *uint      `gorm:"index" json:"parent_id"`
	Position int        `json:"position"`
	Children []Category `gorm:"-" json:"children,omitempty"`
	Products []Product  `gorm:"many2many:product_categories" json:"-"`
}
