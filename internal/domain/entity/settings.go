package entity

// SettingsCategory names one section of SiteSettings.
type SettingsCategory string

const (
	SettingsGeneral       SettingsCategory = "general"
	SettingsAppearance    SettingsCategory = "appearance"
	SettingsNotifications SettingsCategory = "notifications"
)

type GeneralSettings struct {
	SiteName        string `json:"site_name" validate:"required,max=80"`
	ContactEmail    string `json:"contact_email" validate:"omitempty,email"`
	MaintenanceMode bool   `json:"maintenance_mode"`
}

type AppearanceSettings struct {
	PrimaryColor    string `json:"primary_color" validate:"required,hexcolor"`
	DefaultLanguage string `json:"default_language" validate:"required,oneof=en id"`
}

type NotificationSettings struct {
	PushEnabled  bool   `json:"push_enabled"`
	Announcement string `json:"announcement" validate:"max=280"`
}

type SiteSettings struct {
	General       GeneralSettings      `json:"general"`
	Appearance    AppearanceSettings   `json:"appearance"`
	Notifications NotificationSettings `json:"notifications"`
}

func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		General: GeneralSettings{
			SiteName: "Marketplace",
		},
		Appearance: AppearanceSettings{
			PrimaryColor:    "#1e88e5",
			DefaultLanguage: "en",
		},
		Notifications: NotificationSettings{
			PushEnabled: true,
		},
	}
}
