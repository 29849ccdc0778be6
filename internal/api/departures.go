package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ngmaloney/train-terminal/internal/stations"
	"github.com/ngmaloney/train-terminal/internal/timeutil"
	"github.com/ngmaloney/train-terminal/internal/transportapi"
	"github.com/sirupsen/logrus"
)

// searchStations handles GET /api/v1/stations?q=&limit=
func (s *Server) searchStations(c *gin.Context) {
	limit := stations.DefaultSearchLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			respondMessage(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	respondOK(c, http.StatusOK, s.directory.Search(c.Query("q"), limit))
}

// departures handles GET /api/v1/departures/:crs?calling_at=&datetime=&from_offset=&to_offset=
// Offsets are in minutes relative to datetime.
func (s *Server) departures(c *gin.Context) {
	from, ok := s.directory.Lookup(c.Param("crs"))
	if !ok {
		respondMessage(c, http.StatusNotFound, "unknown station "+strings.ToUpper(c.Param("crs")))
		return
	}

	params := transportapi.StationTimetableParams{StationCRS: from.CRS}
	if raw := c.Query("calling_at"); raw != "" {
		to, ok := s.directory.Lookup(raw)
		if !ok {
			respondMessage(c, http.StatusBadRequest, "unknown calling_at station "+strings.ToUpper(raw))
			return
		}
		params.CallingAt = to.CRS
	}
	if raw := c.Query("datetime"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, "datetime must be RFC 3339, e.g. 2026-03-02T07:30:00Z")
			return
		}
		params.DateTime = t
	}
	for _, o := range []struct {
		name string
		dst  *string
	}{{"from_offset", &params.FromOffset}, {"to_offset", &params.ToOffset}} {
		raw := c.Query(o.name)
		if raw == "" {
			continue
		}
		mins, err := strconv.Atoi(raw)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, o.name+" must be a whole number of minutes")
			return
		}
		*o.dst = timeutil.FormatOffset(mins)
	}

	timetable, err := s.client.StationTimetable(c.Request.Context(), params)
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"station":    params.StationCRS,
			"calling_at": params.CallingAt,
		}).Warn("Station timetable fetch failed")
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, timetable)
}

// service handles GET /api/v1/services/:id?date=
func (s *Server) service(c *gin.Context) {
	date := s.now()
	if raw := c.Query("date"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = t
	}

	detail, err := s.client.ServiceTimetable(c.Request.Context(), c.Param("id"), date)
	if err != nil {
		s.logger.WithError(err).WithField("service", c.Param("id")).Warn("Service timetable fetch failed")
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, detail)
}
