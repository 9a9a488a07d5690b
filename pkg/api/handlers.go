package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/shelfmount/pkg/buildinfo"
	errs "github.com/matzehuels/shelfmount/pkg/errors"
	"github.com/matzehuels/shelfmount/pkg/favorites"
	"github.com/matzehuels/shelfmount/pkg/pipeline"
	"github.com/matzehuels/shelfmount/pkg/render/sink"
)

const maxBodyBytes = 1 << 20

// solveRequest is the body of POST /v1/solve. Spacing fields are length
// expressions; empty fields fall back to the server's base spacing, or to
// the favorite named by Favorite.
type solveRequest struct {
	Spacing   pipeline.SpacingInput `json:"spacing"`
	Favorite  string                `json:"favorite,omitempty"`
	Policy    string                `json:"policy,omitempty"`
	DepthMode string                `json:"depth_mode,omitempty"`
	Label     string                `json:"label,omitempty"`
}

// renderRequest is the body of POST /v1/render. Exactly one format is
// rendered per request.
type renderRequest struct {
	solveRequest
	View         string  `json:"view,omitempty"`
	Format       string  `json:"format,omitempty"`
	Width        float64 `json:"width,omitempty"`
	Height       float64 `json:"height,omitempty"`
	Padding      float64 `json:"padding,omitempty"`
	ShelfOpacity float64 `json:"shelf_opacity,omitempty"`
	Scale        float64 `json:"scale,omitempty"`
	Refresh      bool    `json:"refresh,omitempty"`
}

type favoriteRequest struct {
	Label   string                `json:"label"`
	Spacing pipeline.SpacingInput `json:"spacing"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

// options turns a solve request into pipeline options.
func (s *Server) options(r *http.Request, req solveRequest) (pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = nil
	opts.Logger = nil

	base := s.base
	if req.Favorite != "" {
		if s.store == nil {
			return opts, errs.New(errs.ErrCodeUnsupported, "favorites are not configured")
		}
		fav, err := favorites.Find(r.Context(), s.store, req.Favorite)
		if err != nil {
			return opts, err
		}
		base = fav.Spacing
		if opts.Label == "" {
			opts.Label = fav.Label
		}
	}
	sp, err := pipeline.ParseSpacing(req.Spacing, base)
	if err != nil {
		return opts, err
	}
	opts.Spacing = sp
	if req.Policy != "" {
		opts.Policy = req.Policy
	}
	if req.DepthMode != "" {
		opts.DepthMode = req.DepthMode
	}
	if req.Label != "" {
		opts.Label = req.Label
	}
	return opts, nil
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	opts, err := s.options(r, req)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return
	}
	plan, err := s.runner.Solve(r.Context(), s.geometry, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	data, err := sink.RenderJSON(plan, sink.WithJSONBrackets())
	if err != nil {
		writeError(w, errs.Wrap(errs.ErrCodeInternal, err, "encode plan"))
		return
	}
	writeRaw(w, http.StatusOK, "application/json", data)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	opts, err := s.options(r, req.solveRequest)
	if err != nil {
		writeError(w, err)
		return
	}
	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}
	if req.View != "" {
		opts.View = req.View
	}
	if req.Width > 0 {
		opts.Width = req.Width
	}
	if req.Height > 0 {
		opts.Height = req.Height
	}
	if req.Padding > 0 {
		opts.Padding = req.Padding
	}
	if req.ShelfOpacity > 0 {
		opts.ShelfOpacity = req.ShelfOpacity
	}
	if req.Scale > 0 {
		opts.Scale = req.Scale
	}
	opts.Refresh = req.Refresh

	result, err := s.runner.Execute(r.Context(), s.geometry, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	cacheStatus := "miss"
	if result.CacheInfo.RenderHit {
		cacheStatus = "hit"
	}
	w.Header().Set("X-Cache", cacheStatus)
	w.Header().Set("X-Plan-Hash", result.PlanHash)
	if !result.Plan.OK() {
		w.Header().Set("X-Shelfmount-Conflict", "true")
	}
	writeRaw(w, http.StatusOK, pipeline.ContentType(format), result.Artifacts[format])
}

func (s *Server) requireStore(w http.ResponseWriter) bool {
	if s.store == nil {
		writeError(w, errs.New(errs.ErrCodeUnsupported, "favorites are not configured"))
		return false
	}
	return true
}

func (s *Server) handleListFavorites(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	favs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if favs == nil {
		favs = []favorites.Favorite{}
	}
	writeJSON(w, http.StatusOK, favs)
}

func (s *Server) handleSaveFavorite(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	var req favoriteRequest
	if err := decode(r, &req); err != nil {
		writeError(w, err)
		return
	}
	sp, err := pipeline.ParseSpacing(req.Spacing, s.base)
	if err != nil {
		writeError(w, err)
		return
	}
	fav, err := s.store.Save(r.Context(), favorites.New(req.Label, sp))
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Location", "/v1/favorites/"+fav.ID)
	writeJSON(w, http.StatusCreated, fav)
}

func (s *Server) handleGetFavorite(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	fav, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fav)
}

func (s *Server) handleDeleteFavorite(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w) {
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
