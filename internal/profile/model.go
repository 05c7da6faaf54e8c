package profile

import "time"

// Preferences mirrors the toggles on the profile page.
type Preferences struct {
	Reminder      bool `json:"reminder"`
	PriceAlerts   bool `json:"price_alerts"`
	HealthTips    bool `json:"health_tips"`
	SystemUpdates bool `json:"system_updates"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Reminder:      true,
		PriceAlerts:   true,
		HealthTips:    false,
		SystemUpdates: true,
	}
}

type Profile struct {
	ID                      string      `json:"id"`
	UserID                  string      `json:"user_id"`
	FullName                *string     `json:"full_name"`
	Email                   *string     `json:"email"`
	Phone                   *string     `json:"phone"`
	DateOfBirth             *string     `json:"date_of_birth"` // YYYY-MM-DD
	MedicalConditions       []string    `json:"medical_conditions"`
	Allergies               []string    `json:"allergies"`
	EmergencyContactName    *string     `json:"emergency_contact_name"`
	EmergencyContactPhone   *string     `json:"emergency_contact_phone"`
	NotificationPreferences Preferences `json:"notification_preferences"`
	AvatarURL               *string     `json:"avatar_url"`
	CreatedAt               time.Time   `json:"created_at"`
	UpdatedAt               time.Time   `json:"updated_at"`
}

// Update is a partial profile change; nil fields are left alone.
type Update struct {
	FullName                *string      `json:"full_name"`
	Phone                   *string      `json:"phone"`
	DateOfBirth             *string      `json:"date_of_birth"`
	MedicalConditions       *[]string    `json:"medical_conditions"`
	Allergies               *[]string    `json:"allergies"`
	EmergencyContactName    *string      `json:"emergency_contact_name"`
	EmergencyContactPhone   *string      `json:"emergency_contact_phone"`
	NotificationPreferences *Preferences `json:"notification_preferences"`
	AvatarURL               *string      `json:"avatar_url"`
}

// View is the profile as the client renders it.
type View struct {
	*Profile
	DisplayName string `json:"display_name"`
	Age         *int   `json:"age"`
}
