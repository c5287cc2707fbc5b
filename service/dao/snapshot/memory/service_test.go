package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/schedsim/runtime/simulation"
	"github.com/viant/schedsim/service/dao"
	"github.com/viant/schedsim/service/dao/criteria"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	srv := New()
	for tick, pid := range []int{1, 1, 2, 0} {
		assert.NoError(t, srv.Save(ctx, &simulation.Snapshot{Tick: tick, Running: pid, Algorithm: "rr"}))
	}
	assert.True(t, errors.Is(srv.Save(ctx, nil), dao.ErrNilEntity))
	assert.True(t, errors.Is(srv.Save(ctx, &simulation.Snapshot{Tick: -1}), dao.ErrInvalidID))

	loaded, err := srv.Load(ctx, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, loaded.Running)

	list, err := srv.List(ctx, dao.NewParameter(criteria.Running, "1"))
	assert.NoError(t, err)
	if assert.Len(t, list, 2) {
		assert.Equal(t, 0, list[0].Tick)
		assert.Equal(t, 1, list[1].Tick)
	}

	assert.NoError(t, srv.Delete(ctx, 3))
	assert.True(t, errors.Is(srv.Delete(ctx, 3), dao.ErrNotFound))
	_, err = srv.Load(ctx, 3)
	assert.True(t, errors.Is(err, dao.ErrNotFound))

	srv.Clear()
	list, _ = srv.List(ctx)
	assert.Empty(t, list)
}
