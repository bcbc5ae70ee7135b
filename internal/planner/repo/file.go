package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	errx "github.com/wayfarer-core-poc/server/internal/core/error"
	"github.com/wayfarer-core-poc/server/internal/planner/model"
	logx "github.com/wayfarer-core-poc/server/pkg/logger"
)

// FilePlanRepository keeps the whole travel document in one JSON file.
type FilePlanRepository struct {
	path string
	mu   sync.Mutex
}

func NewFilePlanRepository(path string) *FilePlanRepository {
	return &FilePlanRepository{path: path}
}

// Load returns an empty document when the file does not exist yet.
func (r *FilePlanRepository) Load(_ context.Context) (*model.TravelData, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return model.NewTravelData(), nil
	}
	if err != nil {
		logx.Error().Err(err).Str("path", r.path).Msg("failed to read travel data")
		return nil, errx.WrapStorage(err)
	}

	data := model.NewTravelData()
	if err := json.Unmarshal(raw, data); err != nil {
		logx.Error().Err(err).Str("path", r.path).Msg("failed to decode travel data")
		return nil, errx.WrapStorage(fmt.Errorf("decode %s: %w", r.path, err))
	}
	return normalize(data), nil
}

// Save replaces the file atomically through a temporary sibling.
func (r *FilePlanRepository) Save(_ context.Context, data *model.TravelData) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return errx.WrapStorage(fmt.Errorf("encode travel data: %w", err))
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errx.WrapStorage(err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return errx.WrapStorage(err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return errx.WrapStorage(err)
	}
	if err := tmp.Close(); err != nil {
		return errx.WrapStorage(err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		logx.Error().Err(err).Str("path", r.path).Msg("failed to replace travel data")
		return errx.WrapStorage(err)
	}
	logx.Debug().Str("path", r.path).Int("plans", len(data.Plans)).Msg("Travel data saved")
	return nil
}

// normalize fills the collections a hand-edited document may omit.
func normalize(data *model.TravelData) *model.TravelData {
	if data.Destinations == nil {
		data.Destinations = []string{}
	}
	if data.Plans == nil {
		data.Plans = map[string]*model.Plan{}
	}
	return data
}

var _ model.PlanRepository = (*FilePlanRepository)(nil)
