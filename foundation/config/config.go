// Package config loads agent profiles from a YAML file.
package config

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	defaultBankName    = "SecureBank"
	defaultMaxAttempts = 2
	defaultLanguage    = "en-US"
)

// GetProfile returns the profile with the given id from the file at path.
func GetProfile(profilePath string, profileID string) (Profile, error) {
	file, err := os.Open(profilePath)
	if err != nil {
		return Profile{}, err
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Profile{}, err
	}

	var config Config

	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return Profile{}, fmt.Errorf("decode profiles: %w", err)
	}
	profile, exists := profileExists(config.Profiles, profileID)
	if !exists {
		return Profile{}, fmt.Errorf("profile[%s] does not exist", profileID)
	}

	return withDefaults(profile), nil
}

// Default is used when no profile file is configured or it cannot be read.
func Default() Profile {
	return withDefaults(Profile{ID: "default"})
}

func withDefaults(p Profile) Profile {
	if p.BankName == "" {
		p.BankName = defaultBankName
	}
	if p.MaxAttempts < 1 {
		p.MaxAttempts = defaultMaxAttempts
	}
	if p.Language == "" {
		p.Language = defaultLanguage
	}
	return p
}

func profileExists(profiles []Profile, profileID string) (Profile, bool) {
	for _, p := range profiles {
		if p.ID == profileID {
			return p, true
		}
	}
	return Profile{}, false
}
