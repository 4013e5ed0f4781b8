package cause

// TableName is the physical name of the causes collection. The service only
// reads it; rows are managed elsewhere.
const TableName = "Causes"

type Cause struct {
	ID       uint64 `gorm:"column:cause_id;primaryKey;autoIncrement"`
	Title    string `gorm:"column:title;size:255;not null"`
	IsActive bool   `gorm:"column:is_active;not null"`
}

func (Cause) TableName() string { return TableName }
