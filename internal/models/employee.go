package models

type Employee struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"type:varchar(200);not null"`
	Role string `gorm:"type:varchar(200);not null"`
}
