package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/viant/schedsim/runtime/simulation"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/dao/criteria"
)

// Service keeps tick snapshots in memory. It is safe for concurrent use.
type Service struct {
	snapshots map[int]*simulation.Snapshot
	mux       sync.RWMutex
}

var _ dao.Service[int, simulation.Snapshot] = (*Service)(nil)

// Save stores s under its tick, replacing an earlier snapshot of that tick.
func (s *Service) Save(_ context.Context, snapshot *simulation.Snapshot) error {
	if snapshot == nil {
		return dao.ErrNilEntity
	}
	if snapshot.Tick < 0 {
		return dao.ErrInvalidID
	}
	s.mux.Lock()
	defer s.mux.Unlock()
	s.snapshots[snapshot.Tick] = snapshot
	return nil
}

func (s *Service) Load(_ context.Context, tick int) (*simulation.Snapshot, error) {
	if tick < 0 {
		return nil, dao.ErrInvalidID
	}
	s.mux.RLock()
	ret, ok := s.snapshots[tick]
	s.mux.RUnlock()
	if !ok {
		return nil, dao.ErrNotFound
	}
	return ret, nil
}

func (s *Service) Delete(_ context.Context, tick int) error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if _, ok := s.snapshots[tick]; !ok {
		return dao.ErrNotFound
	}
	delete(s.snapshots, tick)
	return nil
}

// List returns matching snapshots ordered by tick.
func (s *Service) List(_ context.Context, parameters ...*dao.Parameter) ([]*simulation.Snapshot, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()
	ret := make([]*simulation.Snapshot, 0, len(s.snapshots))
	for _, snapshot := range s.snapshots {
		if criteria.FilterSnapshot(snapshot, parameters) {
			ret = append(ret, snapshot)
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Tick < ret[j].Tick })
	return ret, nil
}

// Clear drops every snapshot.
func (s *Service) Clear() {
	s.mux.Lock()
	s.snapshots = map[int]*simulation.Snapshot{}
	s.mux.Unlock()
}

func New() *Service {
	return &Service{snapshots: map[int]*simulation.Snapshot{}}
}
