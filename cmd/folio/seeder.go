package main

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/JaimeStill/folio/internal/api"
	"github.com/JaimeStill/folio/internal/categories"
	"github.com/JaimeStill/folio/internal/documents"
	"github.com/JaimeStill/folio/internal/folders"
	"github.com/JaimeStill/folio/internal/values"
	"github.com/JaimeStill/folio/pkg/pagination"
)

//go:embed seeds/registry.yaml
var defaultSeed []byte

// SeedData is the YAML layout of a seed file. Documents refer to their
// category, folder and fields by name.
type SeedData struct {
	Categories []CategorySeed `yaml:"categories"`
	Folders    []FolderSeed   `yaml:"folders"`
	Documents  []DocumentSeed `yaml:"documents"`
}

type CategorySeed struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	Fields      []FieldSeed `yaml:"fields"`
}

type FieldSeed struct {
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Required  bool   `yaml:"required"`
	MaxLength *int   `yaml:"max_length"`
}

type FolderSeed struct {
	Label       string `yaml:"label"`
	Location    string `yaml:"location"`
	Description string `yaml:"description"`
}

type DocumentSeed struct {
	Title    string         `yaml:"title"`
	Category string         `yaml:"category"`
	Folder   string         `yaml:"folder"`
	Date     string         `yaml:"date"`
	Values   map[string]any `yaml:"values"`
}

// Seeder populates one part of the registry. Seeders run in registration
// order and record the ids they resolve on the shared run.
type Seeder interface {
	Name() string
	Description() string
	Seed(ctx context.Context, run *seedRun) error
}

var seeders = []Seeder{
	categorySeeder{},
	folderSeeder{},
	documentSeeder{},
}

type seedRun struct {
	domain     *api.Domain
	data       *SeedData
	categories map[string]categories.Category
	folders    map[string]uuid.UUID
	created    map[string]int
}

func loadSeedData(path string) (*SeedData, error) {
	content := defaultSeed
	if path != "" {
		var err error
		if content, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	}

	var data SeedData
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return &data, nil
}

// runSeeders applies the named seeders, or all of them when only is empty.
// Each seeder skips records that already exist, so a seed file can be
// applied repeatedly.
func runSeeders(ctx context.Context, domain *api.Domain, data *SeedData, only []string) (map[string]int, error) {
	run := &seedRun{
		domain:     domain,
		data:       data,
		categories: make(map[string]categories.Category),
		folders:    make(map[string]uuid.UUID),
		created:    make(map[string]int),
	}

	for _, s := range seeders {
		if len(only) > 0 && !slices.Contains(only, s.Name()) {
			continue
		}
		if err := s.Seed(ctx, run); err != nil {
			return run.created, fmt.Errorf("seed %s: %w", s.Name(), err)
		}
	}
	return run.created, nil
}

type categorySeeder struct{}

func (categorySeeder) Name() string        { return "categories" }
func (categorySeeder) Description() string { return "Categories and their field definitions" }

func (categorySeeder) Seed(ctx context.Context, run *seedRun) error {
	for _, cs := range run.data.Categories {
		existing, err := findCategory(ctx, run.domain.Categories, cs.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			run.categories[key(cs.Name)] = *existing
			continue
		}

		cmd := categories.CreateCommand{Name: cs.Name, Description: cs.Description}
		for _, f := range cs.Fields {
			cmd.Fields = append(cmd.Fields, categories.AddFieldCommand{
				Name:      f.Name,
				Type:      f.Type,
				Required:  f.Required,
				MaxLength: f.MaxLength,
			})
		}

		c, err := run.domain.Categories.Create(ctx, operator, cmd)
		if err != nil {
			return fmt.Errorf("category %q: %w", cs.Name, err)
		}
		run.categories[key(cs.Name)] = *c
		run.created["categories"]++
	}
	return nil
}

type folderSeeder struct{}

func (folderSeeder) Name() string        { return "folders" }
func (folderSeeder) Description() string { return "Physical folders" }

func (folderSeeder) Seed(ctx context.Context, run *seedRun) error {
	for _, fs := range run.data.Folders {
		id, err := findFolder(ctx, run.domain.Folders, fs.Label)
		if err != nil {
			return err
		}
		if id != uuid.Nil {
			run.folders[key(fs.Label)] = id
			continue
		}

		f, err := run.domain.Folders.Create(ctx, operator, folders.CreateCommand{
			Label:       fs.Label,
			Location:    fs.Location,
			Description: fs.Description,
		})
		if err != nil {
			return fmt.Errorf("folder %q: %w", fs.Label, err)
		}
		run.folders[key(fs.Label)] = f.ID
		run.created["folders"]++
	}
	return nil
}

type documentSeeder struct{}

func (documentSeeder) Name() string        { return "documents" }
func (documentSeeder) Description() string { return "Documents with field values" }

func (documentSeeder) Seed(ctx context.Context, run *seedRun) error {
	for _, ds := range run.data.Documents {
		c, err := run.category(ctx, ds.Category)
		if err != nil {
			return fmt.Errorf("document %q: %w", ds.Title, err)
		}
		folderID, err := run.folder(ctx, ds.Folder)
		if err != nil {
			return fmt.Errorf("document %q: %w", ds.Title, err)
		}

		exists, err := documentExists(ctx, run.domain.Documents, c.ID, folderID, ds.Title)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		in, err := fieldInput(c, ds.Values)
		if err != nil {
			return fmt.Errorf("document %q: %w", ds.Title, err)
		}

		if _, err := run.domain.Documents.Create(ctx, operator, documents.CreateCommand{
			CategoryID:   c.ID,
			FolderID:     folderID,
			Title:        ds.Title,
			DocumentDate: ds.Date,
			Values:       in,
		}); err != nil {
			return fmt.Errorf("document %q: %w", ds.Title, err)
		}
		run.created["documents"]++
	}
	return nil
}

func (run *seedRun) category(ctx context.Context, name string) (categories.Category, error) {
	if c, ok := run.categories[key(name)]; ok {
		return c, nil
	}
	c, err := findCategory(ctx, run.domain.Categories, name)
	if err != nil {
		return categories.Category{}, err
	}
	if c == nil {
		return categories.Category{}, fmt.Errorf("unknown category %q", name)
	}
	run.categories[key(name)] = *c
	return *c, nil
}

func (run *seedRun) folder(ctx context.Context, label string) (uuid.UUID, error) {
	if id, ok := run.folders[key(label)]; ok {
		return id, nil
	}
	id, err := findFolder(ctx, run.domain.Folders, label)
	if err != nil {
		return uuid.Nil, err
	}
	if id == uuid.Nil {
		return uuid.Nil, fmt.Errorf("unknown folder %q", label)
	}
	run.folders[key(label)] = id
	return id, nil
}

// fieldInput translates values keyed by field name into the id-keyed input
// the value store expects.
func fieldInput(c categories.Category, raw map[string]any) (values.Input, error) {
	byName := make(map[string]uuid.UUID, len(c.Fields))
	for _, f := range c.Fields {
		byName[key(f.Name)] = f.ID
	}

	in := make(values.Input, len(raw))
	for name, v := range raw {
		id, ok := byName[key(name)]
		if !ok {
			return nil, fmt.Errorf("category %q has no field %q", c.Name, name)
		}
		in[id.String()] = v
	}
	return in, nil
}

func findCategory(ctx context.Context, sys categories.System, name string) (*categories.Category, error) {
	page := pagination.PageRequest{Page: 1, PageSize: 100}
	result, err := sys.List(ctx, page, categories.Filters{Name: &name})
	if err != nil {
		return nil, fmt.Errorf("find category %q: %w", name, err)
	}
	for _, c := range result.Data {
		if strings.EqualFold(c.Name, name) {
			return sys.Find(ctx, c.ID)
		}
	}
	return nil, nil
}

func findFolder(ctx context.Context, sys folders.System, label string) (uuid.UUID, error) {
	page := pagination.PageRequest{Page: 1, PageSize: 100}
	result, err := sys.List(ctx, page, folders.Filters{Label: &label})
	if err != nil {
		return uuid.Nil, fmt.Errorf("find folder %q: %w", label, err)
	}
	for _, f := range result.Data {
		if strings.EqualFold(f.Label, label) {
			return f.ID, nil
		}
	}
	return uuid.Nil, nil
}

func documentExists(ctx context.Context, sys documents.System, categoryID, folderID uuid.UUID, title string) (bool, error) {
	filters := documents.Filters{
		CategoryID: &categoryID,
		FolderID:   &folderID,
		Title:      &title,
	}
	items, err := sys.Summaries(ctx, filters, 0, 0)
	if err != nil {
		return false, fmt.Errorf("find document %q: %w", title, err)
	}
	for _, s := range items {
		if s.Title == title {
			return true, nil
		}
	}
	return false, nil
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
