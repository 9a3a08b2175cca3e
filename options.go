package staticfs

import "github.com/mwantia/staticfs/log"

// Option configures a Store during New.
type Option func(*Store)

// WithLogger replaces the default logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithPathRewrite installs a rewrite applied to every request path before it
// reaches the backend, e.g. mapping "/" to "index.html".
func WithPathRewrite(rewrite func(string) string) Option {
	return func(s *Store) {
		s.rewrite = rewrite
	}
}
