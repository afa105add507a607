package models

// UserBook is a wishlist entry. It has no attributes beyond its key.
type UserBook struct {
	UserID uint   `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	ISBN   string `json:"isbn" gorm:"primaryKey;size:32"`
	User   User   `json:"-" gorm:"foreignKey:UserID;references:ID"`
	Book   Book   `json:"-" gorm:"foreignKey:ISBN;references:ISBN"`
}

// TableName keeps the join table name stable
func (UserBook) TableName() string {
	return "user_books"
}
