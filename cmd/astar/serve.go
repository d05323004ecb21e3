package main

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/pdrpinto/astar/v2"
	"github.com/pdrpinto/astar/v2/grid"
	"github.com/pdrpinto/astar/v2/mazes"
	"github.com/pdrpinto/astar/v2/observe"
)

// board is one generated grid and the search running over it.
type board struct {
	walk    *mazes.Walk
	stepper *mazes.WalkStepper
	walls   [][2]int
}

// server steps a single search per request. Steppers are not safe for
// concurrent use, so every handler holds mu.
type server struct {
	config  ServeConfig
	logger  *slog.Logger
	metrics *observe.Metrics
	random  *rand.Rand

	mu    sync.Mutex
	board *board
}

func newServer(config ServeConfig, logger *slog.Logger, metrics *observe.Metrics, seed uint64) *server {
	return &server{
		config:  config,
		logger:  logger,
		metrics: metrics,
		random:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

func (s *server) routes(gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Post("/init", s.handleInit)
	r.Get("/next", s.handleNext)
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	return r
}

type snapshot struct {
	Step    int      `json:"step"`
	W       int      `json:"w"`
	H       int      `json:"h"`
	Walls   [][2]int `json:"walls"`
	Open    [][2]int `json:"open,omitempty"`
	Closed  [][2]int `json:"closed,omitempty"`
	Current [2]int   `json:"current"`
	Start   [2]int   `json:"start"`
	Goal    [2]int   `json:"goal"`
	State   string   `json:"state"`
	Done    bool     `json:"done"`
	Found   bool     `json:"found"`
	Cost    int      `json:"cost,omitempty"`
	Path    [][2]int `json:"path,omitempty"`
}

func pair(p grid.Point) [2]int { return [2]int{p.X, p.Y} }

func setToList(set map[grid.Point]bool) [][2]int {
	list := make([][2]int, 0, len(set))
	for p, ok := range set {
		if ok {
			list = append(list, pair(p))
		}
	}
	slices.SortFunc(list, func(a, b [2]int) int {
		return cmp.Or(cmp.Compare(a[1], b[1]), cmp.Compare(a[0], b[0]))
	})
	return list
}

// genWalls scatters clustered walls by random walks, never on start or goal.
func genWalls(r *rand.Rand, w, h, clusters, steps int, density float64, start, goal grid.Point) map[grid.Point]bool {
	walls := make(map[grid.Point]bool)
	for range clusters {
		p := grid.Point{X: r.IntN(w), Y: r.IntN(h)}
		for range steps {
			if r.Float64() < density && p != start && p != goal {
				walls[p] = true
			}
			next := p.Step(grid.Directions[r.IntN(len(grid.Directions))])
			if next.X >= 0 && next.X < w && next.Y >= 0 && next.Y < h {
				p = next
			}
		}
	}
	return walls
}

func queryInt(r *http.Request, name string, fallback, floor int) int {
	if v, err := strconv.Atoi(r.URL.Query().Get(name)); err == nil && v > floor {
		return v
	}
	return fallback
}

func (s *server) handleInit(w http.ResponseWriter, r *http.Request) {
	width := queryInt(r, "w", s.config.Width, 4)
	height := queryInt(r, "h", s.config.Height, 4)
	clusters := queryInt(r, "clusters", s.config.Clusters, 0)
	steps := queryInt(r, "steps", s.config.Steps, 0)
	density := s.config.Density
	if v, err := strconv.ParseFloat(r.URL.Query().Get("density"), 64); err == nil && v >= 0 && v <= 1 {
		density = v
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	random := s.random
	if seed, err := strconv.ParseUint(r.URL.Query().Get("seed"), 10, 64); err == nil {
		random = rand.New(rand.NewPCG(seed, seed))
	}
	var start, goal grid.Point
	for start == goal {
		start = grid.Point{X: random.IntN(width), Y: random.IntN(height)}
		goal = grid.Point{X: random.IntN(width), Y: random.IntN(height)}
	}

	walls := genWalls(random, width, height, clusters, steps, density, start, goal)
	field := grid.New(width, height, '.')
	for p := range walls {
		field.Set(p, mazes.Wall)
	}
	walk := mazes.NewWalk(field, start, goal)
	graph := observe.Instrument[mazes.Cell, grid.Point, grid.Direction, int](walk, "serve",
		observe.WithLogger(s.logger), observe.WithMetrics(s.metrics))
	s.board = &board{
		walk:    walk,
		stepper: astar.NewStepper[mazes.Cell, grid.Point, grid.Direction, int](graph, astar.WithSizeHint(width*height)),
		walls:   setToList(walls),
	}
	s.logger.Info("board generated", "w", width, "h", height, "walls", len(walls), "start", start, "goal", goal)

	writeJSON(w, map[string]any{"ok": true, "w": width, "h": height})
}

func (s *server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.board == nil {
		http.Error(w, "engine not initialized", http.StatusBadRequest)
		return
	}
	b := s.board
	b.stepper.Step()
	if err := b.stepper.Err(); err != nil {
		s.logger.Error("search failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	st := b.stepper.Snapshot()
	out := snapshot{
		Step:    st.StepIndex,
		W:       b.walk.Grid.Width(),
		H:       b.walk.Grid.Height(),
		Walls:   b.walls,
		Open:    setToList(st.Open),
		Closed:  setToList(st.Closed),
		Current: pair(st.Current),
		Start:   pair(b.walk.From),
		Goal:    pair(b.walk.To),
		State:   st.State.String(),
		Done:    st.State.Terminal(),
	}
	if goal, cost, found := b.stepper.FoundGoal(); found {
		out.Found = true
		out.Cost = cost
		for _, hop := range b.stepper.Path(goal.Key()) {
			out.Path = append(out.Path, pair(hop.Node.At))
		}
	}
	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func newServeCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a step-by-step search over random boards",
		Long: `Starts an HTTP server. POST /init generates a board with clustered walls,
each GET /next settles one more cell and returns the open and closed sets,
and /metrics exposes the search counters.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.config.Serve.validate(); err != nil {
				return err
			}
			registry := prometheus.NewRegistry()
			s := newServer(a.config.Serve, a.logger, observe.NewMetrics(registry), uint64(time.Now().UnixNano()))

			srv := &http.Server{
				Addr:              a.config.Serve.Addr,
				Handler:           s.routes(registry),
				ReadHeaderTimeout: 5 * time.Second,
			}

			serverErrors := make(chan error, 1)
			go func() {
				a.logger.Info("serving", "addr", srv.Addr)
				serverErrors <- srv.ListenAndServe()
			}()

			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serve: %w", err)
			case sig := <-shutdown:
				a.logger.Info("shutting down", "signal", sig.String())
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(ctx); err != nil {
					a.logger.Warn("graceful shutdown did not complete", "error", err)
					return srv.Close()
				}
				return nil
			}
		},
	}
	flags := cmd.Flags()
	flags.String("addr", ":8080", "listen address")
	flags.Int("width", 40, "default board width")
	flags.Int("height", 24, "default board height")
	flags.Int("clusters", 8, "default number of wall clusters")
	flags.Int("steps", 200, "default random-walk length of each cluster")
	flags.Float64("density", 0.25, "default chance that a walked cell becomes a wall")
	for _, name := range []string{"addr", "width", "height", "clusters", "steps", "density"} {
		_ = a.v.BindPFlag("serve."+name, flags.Lookup(name))
	}
	return cmd
}
