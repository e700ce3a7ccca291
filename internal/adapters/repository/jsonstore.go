package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/okian/gobu/internal/domain/catalog"
	"github.com/okian/gobu/internal/domain/model"
	"github.com/okian/gobu/pkg/logger"
	"github.com/okian/gobu/pkg/metrics"
)

// Default dataset locations, relative to the working directory.
const (
	DefaultPetsPath    = "data/pets.json"
	DefaultTalentsPath = "data/talents.json"
)

// JSONStore reads pets.json ({"pets": [...]}) and talents.json ([...]).
type JSONStore struct {
	petsPath    string
	talentsPath string
	fsys        fs.FS
	logger      logger.Logger
}

// NewJSONStore creates a store with configuration options.
func NewJSONStore(opts ...Option) *JSONStore {
	s := &JSONStore{
		petsPath:    DefaultPetsPath,
		talentsPath: DefaultTalentsPath,
		logger:      logger.Get().Named("repository"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type petsFile struct {
	Pets []model.Pet `json:"pets"`
}

// Load implements Store.
func (s *JSONStore) Load(ctx context.Context) (catalog.Dataset, error) {
	start := time.Now()

	var pf petsFile
	if err := s.decode(s.petsPath, &pf); err != nil {
		return catalog.Dataset{}, err
	}
	var talents []model.Talent
	if err := s.decode(s.talentsPath, &talents); err != nil {
		return catalog.Dataset{}, err
	}

	ds := catalog.Dataset{Pets: pf.Pets, Talents: talents}
	if err := Validate(ds); err != nil {
		return catalog.Dataset{}, err
	}

	took := time.Since(start)
	metrics.RecordDatasetLoad(float64(took.Microseconds()) / 1000)
	s.logger.Info(ctx, "dataset loaded",
		logger.Int("pets", len(ds.Pets)),
		logger.Int("talents", len(ds.Talents)),
		logger.Duration("took", took),
	)
	return ds, nil
}

func (s *JSONStore) decode(path string, v any) error {
	if path == "" {
		return ErrMissingPath
	}
	var (
		data []byte
		err  error
	)
	if s.fsys != nil {
		data, err = fs.ReadFile(s.fsys, path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrInvalidDataset, path, err)
	}
	return nil
}
