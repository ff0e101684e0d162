package source

//go:generate mockgen -source=interfaces.go -destination=../mock/source_mock.go -package=mock

// KeyDelimiter separates the segments of a hierarchical key.
const KeyDelimiter = ":"

// ChangeToken reports a single mutation of the store it was obtained from.
//
// Done is closed at most once. To observe later mutations a fresh token has
// to be requested from the provider.
type ChangeToken interface {
	Done() <-chan struct{}
}

// Section is a live, read-only view of one subtree of a Provider.
type Section interface {
	// Path is the colon-separated path of the subtree, e.g. "ElasticApm".
	Path() string

	// Get returns the value stored under subKey relative to Path, or an
	// empty string when the key is absent.
	Get(subKey string) string
}

// Provider is a structured configuration store.
//
// Keys are colon-separated and matched case-insensitively. Implementations
// must be safe for concurrent use.
type Provider interface {
	// Get returns the value stored under key, or an empty string when the
	// key is absent.
	Get(key string) string

	// Section returns a view of the subtree rooted at path.
	Section(path string) Section

	// Watch returns a token that fires on the next mutation affecting path.
	Watch(path string) ChangeToken
}

// Environment is a flat, process-level name lookup.
type Environment interface {
	// Get returns the value of the variable called name, or an empty string
	// when it is unset.
	Get(name string) string
}
