package models

import "github.com/m04kA/SMC-SalonService/internal/infra/kvstore"

// PreferencesRequest частичное изменение настроек
type PreferencesRequest struct {
	DarkMode *bool `json:"darkMode,omitempty"`
}

// PreferencesResponse UI-настройки пользователя
type PreferencesResponse struct {
	DarkMode bool `json:"darkMode"`
}

func FromStored(p kvstore.Preferences) *PreferencesResponse {
	return &PreferencesResponse{DarkMode: p.DarkMode}
}
