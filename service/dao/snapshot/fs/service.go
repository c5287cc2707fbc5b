package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"
	"github.com/viant/schedsim/runtime/simulation"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/dao/criteria"
)

// Service stores one JSON document per tick under basePath.
type Service struct {
	basePath string
	fs       afs.Service
	mu       sync.RWMutex
}

var _ dao.Service[int, simulation.Snapshot] = (*Service)(nil)

func (s *Service) Save(ctx context.Context, snapshot *simulation.Snapshot) error {
	if snapshot == nil {
		return dao.ErrNilEntity
	}
	if snapshot.Tick < 0 {
		return dao.ErrInvalidID
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot %d: %w", snapshot.Tick, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	location := s.snapshotPath(snapshot.Tick)
	if err = s.fs.Upload(ctx, location, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to save snapshot to %s: %w", location, err)
	}
	return nil
}

func (s *Service) Load(ctx context.Context, tick int) (*simulation.Snapshot, error) {
	if tick < 0 {
		return nil, dao.ErrInvalidID
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	location := s.snapshotPath(tick)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to check snapshot %d: %w", tick, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: snapshot %d", dao.ErrNotFound, tick)
	}
	data, err := s.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %d: %w", tick, err)
	}
	ret := &simulation.Snapshot{}
	if err = json.Unmarshal(data, ret); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot %d: %w", tick, err)
	}
	return ret, nil
}

func (s *Service) Delete(ctx context.Context, tick int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	location := s.snapshotPath(tick)
	exists, err := s.fs.Exists(ctx, location)
	if err != nil {
		return fmt.Errorf("failed to check snapshot %d: %w", tick, err)
	}
	if !exists {
		return fmt.Errorf("%w: snapshot %d", dao.ErrNotFound, tick)
	}
	return s.fs.Delete(ctx, location)
}

// List reads every stored tick; unreadable documents are skipped.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*simulation.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	objects, err := s.fs.List(ctx, s.basePath)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	var ret []*simulation.Snapshot
	for _, object := range objects {
		if object.IsDir() || !strings.HasSuffix(object.Name(), ".json") {
			continue
		}
		data, err := s.fs.Download(ctx, object)
		if err != nil {
			continue
		}
		snapshot := &simulation.Snapshot{}
		if err = json.Unmarshal(data, snapshot); err != nil {
			continue
		}
		if criteria.FilterSnapshot(snapshot, parameters) {
			ret = append(ret, snapshot)
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Tick < ret[j].Tick })
	return ret, nil
}

func (s *Service) snapshotPath(tick int) string {
	return url.Join(s.basePath, "tick-"+strconv.Itoa(tick)+".json")
}

// New creates the base directory when missing.
func New(ctx context.Context, fs afs.Service, basePath string) (*Service, error) {
	if basePath == "" {
		return nil, fmt.Errorf("base path cannot be empty")
	}
	if fs == nil {
		fs = afs.New()
	}
	basePath = url.Normalize(basePath, file.Scheme)
	exists, _ := fs.Exists(ctx, basePath)
	if !exists {
		if err := fs.Create(ctx, basePath, file.DefaultDirOsMode, true); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", basePath, err)
		}
	}
	return &Service{basePath: basePath, fs: fs}, nil
}
