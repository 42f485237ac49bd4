// Package loader reads the per-person JSON files of a course.
package loader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kurihiro0119/course-site/internal/domain"
	apperrors "github.com/kurihiro0119/course-site/internal/errors"
)

// PlaceholderFile keeps otherwise empty directories in git and is skipped
const PlaceholderFile = ".gitkeep"

var validate = validator.New()

// ReadPeople loads every <github>.json file in dir. Records come back in
// directory listing order and are tagged with role.
func ReadPeople(dir string, role domain.Role) ([]*domain.Person, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	people := make([]*domain.Person, 0, len(entries))
	for _, entry := range entries {
		if entry.Name() == PlaceholderFile {
			continue
		}
		person, err := ReadPerson(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		person.Role = role
		people = append(people, person)
	}
	return people, nil
}

// ReadPerson loads and checks a single person file
func ReadPerson(path string) (*domain.Person, error) {
	filename := filepath.Base(path)
	if !strings.HasSuffix(filename, ".json") {
		return nil, apperrors.NewFormatError(filename, "file does not end with .json", nil)
	}
	if filename != strings.ToLower(filename) {
		return nil, apperrors.NewFormatError(filename, "filename should be all lower-case", nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var person domain.Person
	if err := json.Unmarshal(data, &person); err != nil {
		return nil, apperrors.NewFormatError(filename, "invalid JSON", err)
	}

	if err := validate.Struct(&person); err != nil {
		return nil, apperrors.NewFormatError(filename, describe(err), err)
	}

	stem := strings.TrimSuffix(filename, ".json")
	if strings.ToLower(person.GitHub) != stem {
		return nil, apperrors.NewNameMismatchError(filename, person.GitHub)
	}

	return &person, nil
}

// describe turns validator output into the message shown to the user
func describe(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}
	fe := verrs[0]
	if fe.StructField() == "GitHub" {
		return "github field is missing"
	}
	return fmt.Sprintf("field %s is missing", strings.TrimPrefix(fe.Namespace(), "Person."))
}
