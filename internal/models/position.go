package models

// Position is an organizational role held by workers. Deleting a position
// that still has workers is refused (protect, not cascade).
type Position struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`

	// Relations
	Workers []Worker `gorm:"foreignKey:PositionID" json:"workers,omitempty"`
}
