// Package store loads and saves category keyword data from YAML files.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"fjacquet/bank-csv/internal/logging"
	"fjacquet/bank-csv/internal/models"
)

// CategoryStore manages the category keyword configuration file.
type CategoryStore struct {
	CategoriesFile string
	log            logging.Logger
}

func NewCategoryStore(categoriesFile string, log logging.Logger) *CategoryStore {
	return &CategoryStore{CategoriesFile: categoriesFile, log: log}
}

// FindConfigFile looks for a configuration file in standard locations.
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	if homeDir, err := os.UserHomeDir(); err == nil {
		locations = append(locations, filepath.Join(homeDir, ".config", "bank-csv", filename))
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}
	return "", os.ErrNotExist
}

// LoadCategories loads categories from the YAML file. A missing file is not
// an error; the caller falls back to the built-in defaults.
func (s *CategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	filePath, err := s.FindConfigFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.WithField("file", filename).Debug("categories file not found, using defaults")
			return nil, nil
		}
		return nil, fmt.Errorf("resolving categories file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading categories file: %w", err)
	}

	var doc struct {
		Categories []models.CategoryConfig `yaml:"categories"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing categories file: %w", err)
	}

	s.log.WithFields(
		logging.Field{Key: "file", Value: filePath},
		logging.Field{Key: "categories", Value: len(doc.Categories)},
	).Debug("categories loaded")
	return doc.Categories, nil
}

// SaveCategories writes the category list back to the YAML file.
func (s *CategoryStore) SaveCategories(categories []models.CategoryConfig) error {
	filename := s.CategoriesFile
	if filename == "" {
		filename = "categories.yaml"
	}

	doc := struct {
		Categories []models.CategoryConfig `yaml:"categories"`
	}{Categories: categories}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshaling categories: %w", err)
	}
	if err := os.WriteFile(filename, data, 0o600); err != nil {
		return fmt.Errorf("writing categories file: %w", err)
	}
	return nil
}
