// Package seed loads demo data for the rental stores from a YAML file.
package seed

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/haisi/eaf-movierental/internal/model"
	"github.com/haisi/eaf-movierental/internal/repository"
)

// File is the document layout of a seed file.
type File struct {
	PriceCategories []string `yaml:"price_categories"`
	Movies          []Movie  `yaml:"movies"`
	Users           []User   `yaml:"users"`
}

// Movie is one movie entry.  Category names a price category kind.
type Movie struct {
	Title       string `yaml:"title"`
	ReleaseDate string `yaml:"release_date"`
	Rented      bool   `yaml:"rented"`
	Category    string `yaml:"category"`
}

// User is one user entry.
type User struct {
	LastName  string `yaml:"last_name"`
	FirstName string `yaml:"first_name"`
	Email     string `yaml:"email"`
}

// Result counts the entities Apply created.
type Result struct {
	PriceCategories int
	Movies          int
	Users           int
}

// Load reads and parses a seed file.  Unknown fields are rejected.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a seed document and checks that every kind and date in it
// is well-formed.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for _, name := range f.PriceCategories {
		if _, err := model.ParseKind(name); err != nil {
			return nil, fmt.Errorf("price_categories: %w", err)
		}
	}
	for i, m := range f.Movies {
		if _, err := model.ParseKind(m.Category); err != nil {
			return nil, fmt.Errorf("movies[%d]: %w", i, err)
		}
		if _, err := time.Parse(time.DateOnly, m.ReleaseDate); err != nil {
			return nil, fmt.Errorf("movies[%d]: release_date %q: %w", i, m.ReleaseDate, err)
		}
	}
	return &f, nil
}

// Apply stores the seed data.  A category kind that already exists is
// reused, a movie whose title is already stored is skipped, and so is a
// user whose email is already taken.  Movies may name a kind that is not
// listed under price_categories; the category is created on demand.
func Apply(ctx context.Context, s *repository.Stores, f *File) (Result, error) {
	var res Result
	cats, err := s.PriceCategories.FindAll(ctx)
	if err != nil {
		return res, err
	}
	byKind := make(map[model.Kind]*model.PriceCategory, len(cats))
	for _, c := range cats {
		if _, ok := byKind[c.Kind()]; !ok {
			byKind[c.Kind()] = c
		}
	}
	category := func(name string) (*model.PriceCategory, error) {
		kind, err := model.ParseKind(name)
		if err != nil {
			return nil, err
		}
		if c, ok := byKind[kind]; ok {
			return c, nil
		}
		c, err := model.NewPriceCategory(kind)
		if err != nil {
			return nil, err
		}
		saved, err := s.PriceCategories.Save(ctx, c)
		if err != nil {
			return nil, err
		}
		byKind[kind] = saved
		res.PriceCategories++
		return saved, nil
	}

	for _, name := range f.PriceCategories {
		if _, err := category(name); err != nil {
			return res, fmt.Errorf("price category %q: %w", name, err)
		}
	}

	for _, m := range f.Movies {
		existing, err := s.Movies.FindByTitle(ctx, m.Title)
		if err != nil {
			return res, fmt.Errorf("movie %q: %w", m.Title, err)
		}
		if len(existing) > 0 {
			continue
		}
		pc, err := category(m.Category)
		if err != nil {
			return res, fmt.Errorf("movie %q: %w", m.Title, err)
		}
		released, err := time.Parse(time.DateOnly, m.ReleaseDate)
		if err != nil {
			return res, fmt.Errorf("movie %q: %w", m.Title, err)
		}
		movie, err := model.RestoreMovie(m.Title, released, m.Rented, pc)
		if err != nil {
			return res, fmt.Errorf("movie %q: %w", m.Title, err)
		}
		if _, err := s.Movies.Save(ctx, movie); err != nil {
			return res, fmt.Errorf("movie %q: %w", m.Title, err)
		}
		res.Movies++
	}

	for _, u := range f.Users {
		if u.Email != "" {
			existing, err := s.Users.FindByEmail(ctx, u.Email)
			if err != nil {
				return res, fmt.Errorf("user %s: %w", u.Email, err)
			}
			if len(existing) > 0 {
				continue
			}
		}
		user, err := model.NewUser(u.LastName, u.FirstName)
		if err != nil {
			return res, fmt.Errorf("user %s %s: %w", u.FirstName, u.LastName, err)
		}
		user.SetEmail(u.Email)
		if _, err := s.Users.Save(ctx, user); err != nil {
			return res, fmt.Errorf("user %s %s: %w", u.FirstName, u.LastName, err)
		}
		res.Users++
	}
	return res, nil
}
