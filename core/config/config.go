package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNotStructPointer is returned when the target is not a non-nil pointer to
// a struct.
var ErrNotStructPointer = errors.New("config: target must be a non-nil pointer to a struct")

var (
	loadDotenv sync.Once

	mu    sync.RWMutex
	cache = make(map[reflect.Type]any)
)

// Load populates cfg from the environment. Each configuration type is parsed
// once per process; later calls for the same type receive the cached value.
// A .env file in the working directory is applied before the first parse and
// never overrides variables already set.
func Load(cfg any) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() != reflect.Pointer || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return ErrNotStructPointer
	}
	t := v.Elem().Type()

	mu.RLock()
	cached, ok := cache[t]
	mu.RUnlock()
	if ok {
		v.Elem().Set(reflect.ValueOf(cached))
		return nil
	}

	loadDotenv.Do(func() {
		// Missing .env is the common case in production; ignore it.
		_ = godotenv.Load()
	})

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", t, err)
	}

	mu.Lock()
	defer mu.Unlock()
	if cached, ok := cache[t]; ok {
		// Another goroutine parsed the same type first; keep its value so
		// every caller observes identical configuration.
		v.Elem().Set(reflect.ValueOf(cached))
		return nil
	}
	cache[t] = v.Elem().Interface()
	return nil
}

// MustLoad is Load that panics on failure. Intended for application startup.
func MustLoad(cfg any) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
