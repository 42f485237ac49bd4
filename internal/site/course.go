package site

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/kurihiro0119/course-site/internal/domain"
	apperrors "github.com/kurihiro0119/course-site/internal/errors"
)

const courseSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["id", "title"],
	"properties": {
		"id": {"type": "string", "minLength": 1, "pattern": "^[^/\\\\]+$"},
		"title": {"type": "string", "minLength": 1}
	}
}`

// ReadCourse loads and checks the course descriptor
func ReadCourse(path string) (*domain.Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read course descriptor: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(courseSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, apperrors.NewFormatError(path, "invalid JSON", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return nil, apperrors.NewFormatError(path, strings.Join(msgs, "; "), nil)
	}

	var course domain.Course
	if err := json.Unmarshal(data, &course); err != nil {
		return nil, apperrors.NewFormatError(path, "invalid JSON", err)
	}
	return &course, nil
}
