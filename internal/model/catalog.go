package model

import "time"

type Game struct {
	ID          string `gorm:"primaryKey;size:64;not null"` // catalog slug, e.g. "demo-game"
	Title       string `gorm:"size:255;not null"`
	Description string `gorm:"type:text"`
	Price       int64  `gorm:"not null"` // minor units (cents)
	Currency    string `gorm:"size:8;not null"`
	Cover       string `gorm:"size:255"`
	Thumbnail   string `gorm:"size:255"`
	Featured    bool
	ReleaseDate string `gorm:"size:32"`

	Files []GameFile `gorm:"foreignKey:GameID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type GameFile struct {
	ID uint `gorm:"primaryKey"`
	// FK → game.id
	GameID      string  `gorm:"size:64;index;not null"`
	Name        string  `gorm:"size:255;not null"` // display name
	Filename    string  `gorm:"size:255;not null"` // object key within the game's prefix
	SizeGB      float64 `gorm:"not null"`
	Description string  `gorm:"size:255"`

	CreatedAt time.Time
}

// File returns the declared file matching filename, or nil. Downloads are
// only served for files the game declares.
func (g *Game) File(filename string) *GameFile {
	for i := range g.Files {
		if g.Files[i].Filename == filename {
			return &g.Files[i]
		}
	}
	return nil
}
