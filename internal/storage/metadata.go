package storage

import (
	"riskwatch/internal/catalog"
)

// categoryMetadata is the static reference document the dashboard consumes:
// id, name, domain, description and rubric for every category. The core
// exports it from the embedded catalog and never mutates it afterwards.
type categoryMetadata struct {
	Domains    []catalog.Domain   `json:"domains"`
	Categories []catalog.Category `json:"categories"`
}

// PublishCategoryMetadata writes the category-metadata document for the
// presentation layer.
func (s *Store) PublishCategoryMetadata() (string, error) {
	doc := categoryMetadata{
		Domains:    s.catalog.Domains,
		Categories: s.catalog.Categories,
	}
	path := s.metadataPath()
	if err := s.writeJSON(path, &doc); err != nil {
		return "", err
	}
	return path, nil
}
