package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/astar/v2/grid"
	"github.com/pdrpinto/astar/v2/internal/logging"
	"github.com/pdrpinto/astar/v2/observe"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	registry := prometheus.NewRegistry()
	config := ServeConfig{Width: 40, Height: 24, Clusters: 8, Steps: 200, Density: 0.25}
	s := newServer(config, logging.NewNop(), observe.NewMetrics(registry), 1)
	ts := httptest.NewServer(s.routes(registry))
	t.Cleanup(ts.Close)
	return ts
}

func next(t *testing.T, ts *httptest.Server) snapshot {
	t.Helper()
	resp, err := http.Get(ts.URL + "/next")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap snapshot
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	return snap
}

func TestServe_NextBeforeInit(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/next")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestServe_StepsToGoalOnOpenBoard(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/init?w=8&h=6&density=0&seed=7", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var snap snapshot
	for range 8 * 6 {
		snap = next(t, ts)
		if snap.Done {
			break
		}
	}
	require.True(t, snap.Done)
	require.True(t, snap.Found)
	assert.Equal(t, "goal-found", snap.State)
	assert.Empty(t, snap.Walls)
	assert.Equal(t, 8, snap.W)

	start := grid.Point{X: snap.Start[0], Y: snap.Start[1]}
	goal := grid.Point{X: snap.Goal[0], Y: snap.Goal[1]}
	assert.Equal(t, grid.Manhattan(start, goal), snap.Cost)
	require.Len(t, snap.Path, snap.Cost+1)
	assert.Equal(t, snap.Start, snap.Path[0])
	assert.Equal(t, snap.Goal, snap.Path[len(snap.Path)-1])
	assert.Contains(t, snap.Closed, snap.Goal)

	again := next(t, ts)
	assert.Equal(t, snap.Step, again.Step, "a finished search does not advance")
}

func TestServe_Metrics(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Post(ts.URL+"/init?w=5&h=5&seed=3", "", nil)
	require.NoError(t, err)
	resp.Body.Close()
	first := next(t, ts)
	assert.Equal(t, 1, first.Step)
	assert.Equal(t, first.Start, first.Current)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `astar_nodes_settled_total{graph="serve"} 1`)
}

func TestGenWalls_AvoidsEndpoints(t *testing.T) {
	r := newServer(ServeConfig{}, logging.NewNop(), nil, 11).random
	start, goal := grid.Point{X: 1, Y: 1}, grid.Point{X: 3, Y: 2}
	walls := genWalls(r, 5, 4, 20, 50, 1, start, goal)

	assert.NotEmpty(t, walls)
	assert.False(t, walls[start])
	assert.False(t, walls[goal])
	for p := range walls {
		assert.True(t, p.X >= 0 && p.X < 5 && p.Y >= 0 && p.Y < 4, p.String())
	}
}

func TestServeConfig_Validate(t *testing.T) {
	valid := ServeConfig{Width: 40, Height: 24, Clusters: 8, Steps: 200, Density: 0.25}
	require.NoError(t, valid.validate())
	require.NoError(t, ServeConfig{Width: 2, Height: 1}.validate())

	for name, mutate := range map[string]func(*ServeConfig){
		"single cell":       func(c *ServeConfig) { c.Width, c.Height = 1, 1 },
		"zero width":        func(c *ServeConfig) { c.Width = 0 },
		"negative height":   func(c *ServeConfig) { c.Height = -3 },
		"negative steps":    func(c *ServeConfig) { c.Steps = -1 },
		"density above one": func(c *ServeConfig) { c.Density = 1.5 },
	} {
		config := valid
		mutate(&config)
		assert.Error(t, config.validate(), name)
	}
}
