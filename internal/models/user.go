package models

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// User covers both roles. Artisan-only columns stay empty for clients; the
// service layer refuses to touch them on client profile updates.
type User struct {
	BaseModel
	Username     string   `gorm:"uniqueIndex;not null" json:"username"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null" json:"user_type"`
	Phone        string   `json:"phone"`
	Location     string   `json:"location"`

	// Artisan-specific fields
	ServiceCategory string         `json:"service_category"`
	ExperienceYears int            `json:"experience_years"`
	Bio             string         `json:"bio"`
	Rating          float64        `gorm:"default:0" json:"rating"`
	IsVerified      bool           `gorm:"default:false" json:"is_verified"`
	ProfilePhoto    string         `json:"profile_photo"`
	Skills          datatypes.JSON `json:"skills"`       // ["plumbing", "pipe fitting"]
	HourlyRate      float64        `json:"hourly_rate"`  // in Ksh
	Availability    datatypes.JSON `json:"availability"` // {"mon": "9-17", ...}
	Languages       string         `json:"languages"`    // comma-separated
	ServiceArea     string         `json:"service_area"`
}

// GetSkills returns the skills column as a string slice.
func (u *User) GetSkills() []string {
	var skills []string
	if len(u.Skills) > 0 {
		_ = json.Unmarshal(u.Skills, &skills)
	}
	return skills
}

func (u *User) SetSkills(skills []string) {
	data, _ := json.Marshal(skills)
	u.Skills = datatypes.JSON(data)
}

func (u *User) IsArtisan() bool {
	return u.Role == UserRoleArtisan
}

func (u *User) IsClient() bool {
	return u.Role == UserRoleClient
}
