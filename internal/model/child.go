package model

import "time"

// Child 受照护的儿童档案，归属于家长账号
// swagger:model Child
type Child struct {
	BaseModel
	ParentID    uint      `gorm:"index;not null" json:"parentId"`
	Name        string    `gorm:"size:100;not null" json:"name"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Gender      string    `gorm:"size:20" json:"gender"`
	Notes       string    `gorm:"type:text" json:"notes"`
}

func (Child) TableName() string {
	return "children"
}
