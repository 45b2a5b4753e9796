// Package config provides type-safe environment variable loading with
// per-type caching. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/fluidauth/fluidauth/core/config"
//
//	type SessionConfig struct {
//		Secret   string        `env:"SESSION_SECRET,required"`
//		Duration time.Duration `env:"SESSION_DURATION" envDefault:"30m"`
//	}
//
//	func main() {
//		var sess SessionConfig
//
//		// Load with error handling
//		if err := config.Load(&sess); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&sess)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 SessionConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 SessionConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently:
//
//	type GoogleConfig struct {
//		ClientID     string `env:"GOOGLE_CLIENT_ID,required"`
//		ClientSecret string `env:"GOOGLE_CLIENT_SECRET,required"`
//	}
//
//	type RedisConfig struct {
//		URL string `env:"REDIS_URL,required"`
//	}
//
//	// Each type has its own cache entry
//	config.MustLoad(&GoogleConfig{})
//	config.MustLoad(&RedisConfig{})
package config
