package store

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/reputation-cli/internal/model"
	"github.com/sells-group/reputation-cli/internal/report"
)

// FileStore writes each report as an indented JSON file named from the
// listing and generation date. Same-day reruns overwrite the prior file.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir. An empty dir means the
// working directory.
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "."
	}
	return &FileStore{dir: dir}
}

// Path returns where r is (or would be) written.
func (s *FileStore) Path(r *model.ReputationReport) string {
	return filepath.Join(s.dir, report.Filename(r.ListingName, r.GeneratedAt, "json"))
}

func (s *FileStore) SaveReport(_ context.Context, r *model.ReputationReport) error {
	var buf bytes.Buffer
	if err := report.WriteJSON(&buf, r); err != nil {
		return err
	}
	path := s.Path(r)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return eris.Wrapf(err, "file store: write %s", path)
	}
	zap.L().Info("report saved", zap.String("path", path), zap.String("report_id", r.ID))
	return nil
}

func (s *FileStore) GetReport(ctx context.Context, id string) (*model.ReputationReport, error) {
	reports, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range reports {
		if reports[i].ID == id {
			return &reports[i], nil
		}
	}
	return nil, eris.Wrapf(ErrNotFound, "file store: %s", id)
}

func (s *FileStore) ListReports(ctx context.Context, filter ReportFilter) ([]model.ReputationReport, error) {
	reports, err := s.readAll(ctx)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(filter.ListingName)
	var out []model.ReputationReport
	for _, r := range reports {
		if needle != "" && !strings.Contains(strings.ToLower(r.ListingName), needle) {
			continue
		}
		if filter.Recommendation != "" && r.Recommendation != filter.Recommendation {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GeneratedAt.After(out[j].GeneratedAt)
	})

	off := min(filter.offset(), uint64(len(out)))
	end := min(off+filter.limit(), uint64(len(out)))
	return out[off:end], nil
}

// readAll decodes every rapport_*.json in the directory. Files that do not
// decode are skipped.
func (s *FileStore) readAll(ctx context.Context) ([]model.ReputationReport, error) {
	paths, err := filepath.Glob(filepath.Join(s.dir, "rapport_*.json"))
	if err != nil {
		return nil, eris.Wrap(err, "file store: glob")
	}

	reports := make([]model.ReputationReport, 0, len(paths))
	for _, p := range paths {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ctx.Err(), "file store: context cancelled")
		}
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, eris.Wrapf(err, "file store: read %s", p)
		}
		var r model.ReputationReport
		if err := json.Unmarshal(data, &r); err != nil {
			zap.L().Warn("file store: skipping unreadable report", zap.String("path", p), zap.Error(err))
			continue
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// Migrate creates the output directory.
func (s *FileStore) Migrate(_ context.Context) error {
	return eris.Wrapf(os.MkdirAll(s.dir, 0o755), "file store: create %s", s.dir)
}

func (s *FileStore) Close() error { return nil }
