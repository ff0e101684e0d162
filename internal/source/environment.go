package source

import "os"

// OSEnvironment reads the live process environment.
type OSEnvironment struct{}

// Get implements Environment.
func (OSEnvironment) Get(name string) string {
	return os.Getenv(name)
}

// MapEnvironment is a fixed set of variables, used by embedding hosts that
// manage their own environment and by tests.
type MapEnvironment map[string]string

// Get implements Environment.
func (m MapEnvironment) Get(name string) string {
	return m[name]
}
