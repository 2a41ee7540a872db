package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xtding233/pachislo-backend/internal/exchange"
	"github.com/xtding233/pachislo-backend/internal/game"
	"github.com/xtding233/pachislo-backend/internal/pachislo"
	"github.com/xtding233/pachislo-backend/internal/session"
)

type errResp struct {
	Err string `json:"err"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errResp{Err: err.Error()})
}

func parseFloat(r *http.Request, key string) (float64, bool, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false, errors.New("invalid " + key)
	}
	return v, true, nil
}

func parseInt(r *http.Request, key string) (int, bool, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, false, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false, errors.New("invalid " + key)
	}
	return v, true, nil
}

type createReq struct {
	Machine   string  `json:"machine,omitempty"`
	Seed      *uint64 `json:"seed,omitempty"`
	InitBalls *int    `json:"init_balls,omitempty"`
}

type createResp struct {
	Code  string             `json:"code"`
	State pachislo.GameState `json:"state"`
}

func CreateSession(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createReq
		if r.Body != nil && r.ContentLength != 0 {
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				writeErr(w, http.StatusBadRequest, errors.New("bad json"))
				return
			}
		}

		code, sess, err := d.Manager.Create(session.CreateParams{
			Machine:   req.Machine,
			Seed:      req.Seed,
			Overrides: game.Overrides{InitBalls: req.InitBalls},
		})
		if err != nil {
			d.Log.Warn("create session failed", zap.Error(err))
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusCreated, createResp{Code: code, State: sess.State()})
	}
}

type stateResp struct {
	State    pachislo.GameState `json:"state"`
	Finished bool               `json:"finished"`
}

func GetSession(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := d.Manager.Get(chi.URLParam(r, "code"))
		if err != nil {
			writeErr(w, http.StatusNotFound, err)
			return
		}
		writeJSON(w, http.StatusOK, stateResp{State: sess.State(), Finished: sess.Finished()})
	}
}

type stepReq struct {
	Commands []string `json:"commands"`
}

func StepSession(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := chi.URLParam(r, "code")
		sess, err := d.Manager.Get(code)
		if err != nil {
			writeErr(w, http.StatusNotFound, err)
			return
		}
		var req stepReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, errors.New("bad json"))
			return
		}

		res := sess.Step(req.Commands)
		d.Log.Debug("step",
			zap.String("code", code),
			zap.Int("commands", len(req.Commands)),
			zap.Int("issues", len(res.Issues)),
			zap.String("flow", res.Flow),
		)
		writeJSON(w, http.StatusOK, res)
	}
}

func RemoveSession(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Manager.Remove(chi.URLParam(r, "code")); err != nil {
			writeErr(w, http.StatusNotFound, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// Simulate runs a Monte Carlo batch against a machine profile:
// GET /simulate?machine=&goal=first_rush&trials=10000&seed=42&max_launches=5000
func Simulate(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		machine := r.URL.Query().Get("machine")

		var o game.Overrides
		if v, ok, err := parseFloat(r, "normal_win"); err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		} else if ok {
			o.NormalWin = &v
		}
		if v, ok, err := parseInt(r, "init_balls"); err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		} else if ok {
			o.InitBalls = &v
		}

		cfg, _, err := d.Resolver.Resolve(machine, o)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}

		goal := pachislo.TrialGoal(r.URL.Query().Get("goal"))
		if goal == "" {
			goal = pachislo.GoalFirstRush
		}
		trials, ok, err := parseInt(r, "trials")
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		if !ok {
			trials = 1000
		}
		if trials > 100000 {
			trials = 100000
		}
		maxLaunches, _, err := parseInt(r, "max_launches")
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		seed, _, err := parseInt(r, "seed")
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}

		stats, err := pachislo.RunMonteCarlo(pachislo.SimParams{
			Config:      cfg,
			MaxLaunches: maxLaunches,
			Seed:        uint64(seed),
		}, goal, trials)
		if err != nil {
			writeErr(w, http.StatusBadRequest, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

type exchangeReq struct {
	Balls  int              `json:"balls"`
	Prizes []exchange.Prize `json:"prizes,omitempty"`
}

// Exchange plans how a finished session's folded ball count is spent at the
// prize counter. Callers may supply their own catalog.
func Exchange(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req exchangeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeErr(w, http.StatusBadRequest, errors.New("bad json"))
			return
		}
		if req.Balls < 0 {
			writeErr(w, http.StatusBadRequest, errors.New("balls must be >= 0"))
			return
		}
		cat := exchange.DefaultCatalog()
		if len(req.Prizes) > 0 {
			cat = exchange.Catalog{Prizes: req.Prizes}
		}
		writeJSON(w, http.StatusOK, exchange.MaxValuePlan(cat, req.Balls))
	}
}
