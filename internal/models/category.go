package models

// CategoryConfig is one category with its matching keywords, loaded from the
// categories YAML file.
type CategoryConfig struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}
