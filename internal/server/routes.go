// internal/server/routes.go
package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"strscan-core/strs"

	"strscan/internal/output"
	"strscan/internal/scan"
	"strscan/pkg/api"
)

// maxSitesPerRequest caps the range endpoint so a single request cannot ask
// for a whole chromosome.
const maxSitesPerRequest = 10000

// ReferenceV1 is the wire shape for the reference listing.
type ReferenceV1 struct {
	ID         string `json:"id"`
	Length     int    `json:"length"`
	SourceFile string `json:"source_file"`
	MaxPeriod  int    `json:"max_period"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondOK(w, r, map[string]string{"service": "strscan-server"})
}

func (s *Server) handleListReferences(w http.ResponseWriter, r *http.Request) {
	out := make([]ReferenceV1, 0, len(s.idx.IDs()))
	for _, id := range s.idx.IDs() {
		ref := s.idx.Get(id)
		out = append(out, ReferenceV1{
			ID:         ref.ID,
			Length:     len(ref.Seq),
			SourceFile: ref.SourceFile,
			MaxPeriod:  s.idx.MaxPeriod(),
		})
	}
	respondOK(w, r, out)
}

func (s *Server) handleSiteRange(w http.ResponseWriter, r *http.Request) {
	ref := s.idx.Get(chi.URLParam(r, "id"))
	if ref == nil {
		respondError(w, r, http.StatusNotFound, "unknown reference")
		return
	}
	start, err := queryInt(r, "start", 0)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	end, err := queryInt(r, "end", len(ref.Seq))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if end == 0 {
		end = len(ref.Seq)
	}
	if start < 0 || start > end || end > len(ref.Seq) {
		respondError(w, r, http.StatusBadRequest, strs.ErrInvalidWindow.Error())
		return
	}
	if end-start > maxSitesPerRequest {
		respondError(w, r, http.StatusBadRequest,
			"requested range exceeds "+strconv.Itoa(maxSitesPerRequest)+" positions")
		return
	}

	sites := make([]api.SiteV1, 0, end-start)
	for pos := start; pos < end; pos++ {
		site, err := s.siteAt(ref, pos)
		if err != nil {
			respondError(w, r, http.StatusInternalServerError, err.Error())
			return
		}
		sites = append(sites, site)
	}
	respondOK(w, r, sites)
}

func (s *Server) handleSiteAt(w http.ResponseWriter, r *http.Request) {
	ref := s.idx.Get(chi.URLParam(r, "id"))
	if ref == nil {
		respondError(w, r, http.StatusNotFound, "unknown reference")
		return
	}
	pos, err := strconv.Atoi(chi.URLParam(r, "position"))
	if err != nil {
		respondError(w, r, http.StatusBadRequest, "position must be an integer")
		return
	}
	site, err := s.siteAt(ref, pos)
	if err != nil {
		if errors.Is(err, strs.ErrPositionOutOfWindow) {
			respondError(w, r, http.StatusBadRequest, err.Error())
		} else {
			respondError(w, r, http.StatusInternalServerError, err.Error())
		}
		return
	}
	respondOK(w, r, site)
}

func (s *Server) siteAt(ref *Reference, pos int) (api.SiteV1, error) {
	period, err := ref.STRs.Period(pos)
	if err != nil {
		return api.SiteV1{}, err
	}
	forward, err := ref.STRs.ForwardRepeats(pos)
	if err != nil {
		return api.SiteV1{}, err
	}
	repeats, err := ref.STRs.RepeatLength(pos)
	if err != nil {
		return api.SiteV1{}, err
	}
	unit, err := ref.STRs.RepeatUnitString(pos)
	if err != nil {
		return api.SiteV1{}, err
	}
	return output.ToAPISite(scan.Site{
		SourceFile:     ref.SourceFile,
		SequenceID:     ref.ID,
		Position:       pos,
		Period:         period,
		ForwardRepeats: forward,
		RepeatLength:   repeats,
		Unit:           unit,
	}), nil
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.New(key + " must be an integer")
	}
	return v, nil
}
