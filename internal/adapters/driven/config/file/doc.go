// Package file persists rootscan configuration as TOML, by default at
// ~/.rootscan/config.toml. The schema is closed: the corpus paths, the
// OpenAI credentials and the annotator rate limit are the only keys, and
// Set rejects anything it does not know.
package file
