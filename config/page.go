package config

import (
	"os"
	"registration/domain"
)

const (
	defaultLogoURL    = "https://benhviendonganh.com/DATA/INFO/2023/2/17/benh-vien-da-khoa-dong-anh-9937e.png"
	defaultFaviconURL = "https://benhviendonganh.com/Statics/shared/ico/apple-touch-icon-144-precomposed.png"
)

func GetPageSettings() domain.Page {
	return domain.Page{
		Title:      GetAppName(),
		Heading:    "TRAINING REGISTRATION",
		Subheading: "Flexible bronchoscopy in diagnosis and treatment",
		LogoURL:    envOr("LOGO_URL", defaultLogoURL),
		FaviconURL: envOr("FAVICON_URL", defaultFaviconURL),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
