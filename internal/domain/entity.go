package domain

import "time"

// SupervisedEntity is a financial-market entity supervised by UKNF.
// Messages may reference one through RelatedEntityID; the export resolves
// the reference to the entity name.
type SupervisedEntity struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;size:500;not null" json:"name"`
	UknfCode  string    `gorm:"column:uknf_code;size:50;uniqueIndex" json:"uknf_code"`
	LEI       string    `gorm:"column:lei;size:20" json:"lei,omitempty"`
	NIP       string    `gorm:"column:nip;size:10" json:"nip,omitempty"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (SupervisedEntity) TableName() string {
	return "supervised_entities"
}
