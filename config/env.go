package config

import "os"

// Environment selects which loader and validation rules apply.
type Environment string

const (
	Development Environment = "development"
	Test        Environment = "test"
	CI          Environment = "ci"
	Production  Environment = "production"
)

// GetEnvironment resolves the runtime environment. CI detection wins over
// ENV so pipeline runs never pick up a developer's local settings.
func GetEnvironment() Environment {
	if os.Getenv("CI") == "true" {
		return CI
	}
	switch os.Getenv("ENV") {
	case "production":
		return Production
	case "test":
		return Test
	default:
		return Development
	}
}

func IsDevelopment() bool { return GetEnvironment() == Development }

func IsTest() bool { return GetEnvironment() == Test }

func IsCI() bool { return GetEnvironment() == CI }

func IsProduction() bool { return GetEnvironment() == Production }
