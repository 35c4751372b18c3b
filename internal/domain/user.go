package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role type to distinguish between user roles
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// FitnessProfile is collected during onboarding and supplies defaults for plan generation.
type FitnessProfile struct {
	Difficulty               Difficulty    `bson:"difficulty,omitempty" json:"difficulty,omitempty"`
	EquipmentTier            EquipmentTier `bson:"equipmentTier,omitempty" json:"equipmentTier,omitempty"`
	OwnedEquipment           []string      `bson:"ownedEquipment,omitempty" json:"ownedEquipment,omitempty"`
	PreferredDurationMinutes int           `bson:"preferredDurationMinutes,omitempty" json:"preferredDurationMinutes,omitempty"`
	FocusAreas               []FocusArea   `bson:"focusAreas,omitempty" json:"focusAreas,omitempty"`
	WeeklyFrequency          int           `bson:"weeklyFrequency,omitempty" json:"weeklyFrequency,omitempty"`
	PreferredDays            []string      `bson:"preferredDays,omitempty" json:"preferredDays,omitempty"`
	OnboardedAt              *time.Time    `bson:"onboardedAt,omitempty" json:"onboardedAt,omitempty"`
}

// User represents an account.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`    // unique
	PasswordHash string             `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role               `bson:"role" json:"role"`
	Profile      FitnessProfile     `bson:"profile" json:"profile"`
	AvatarKey    string             `bson:"avatarKey,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Onboarded reports whether the user has saved a fitness profile.
func (u *User) Onboarded() bool {
	return u.Profile.OnboardedAt != nil
}
