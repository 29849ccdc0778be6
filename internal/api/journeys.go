package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ngmaloney/train-terminal/internal/journeys"
	"github.com/ngmaloney/train-terminal/internal/models"
)

// createJourneyRequest is the body of POST /api/v1/journeys
type createJourneyRequest struct {
	From string `json:"from" binding:"required"`
	To   string `json:"to" binding:"required"`
}

func (s *Server) listJourneys(c *gin.Context) {
	list, err := s.journeys.Journeys(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, list)
}

func (s *Server) getJourney(c *gin.Context) {
	j, err := s.journeys.Journey(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, j)
}

func (s *Server) createJourney(c *gin.Context) {
	var req createJourneyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	from, ok := s.directory.Lookup(req.From)
	if !ok {
		respondMessage(c, http.StatusBadRequest, "unknown station "+req.From)
		return
	}
	to, ok := s.directory.Lookup(req.To)
	if !ok {
		respondMessage(c, http.StatusBadRequest, "unknown station "+req.To)
		return
	}
	if from.CRS == to.CRS {
		respondMessage(c, http.StatusBadRequest, "from and to must differ")
		return
	}

	ctx := c.Request.Context()
	exists, err := s.journeys.HasJourney(ctx, from.CRS, to.CRS)
	if err != nil {
		respondError(c, err)
		return
	}
	if exists {
		respondMessage(c, http.StatusConflict, "journey already saved")
		return
	}

	j, err := s.journeys.SaveJourney(ctx, from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, j)
}

func (s *Server) deleteJourney(c *gin.Context) {
	if err := s.journeys.RemoveJourney(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) useJourney(c *gin.Context) {
	if err := s.journeys.UseJourney(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) addRule(c *gin.Context) {
	var rule models.RecommendationRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	created, err := s.journeys.AddRule(c.Request.Context(), c.Param("id"), rule)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, created)
}

func (s *Server) updateRule(c *gin.Context) {
	var rule models.RecommendationRule
	if err := c.ShouldBindJSON(&rule); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	rule.ID = c.Param("ruleId")

	if err := s.journeys.UpdateRule(c.Request.Context(), c.Param("id"), rule); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, rule)
}

func (s *Server) deleteRule(c *gin.Context) {
	if err := s.journeys.RemoveRule(c.Request.Context(), c.Param("id"), c.Param("ruleId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// recommended handles GET /api/v1/journeys/recommended?lat=&lon=&time=&dow=.
// time and dow default to the server clock; without lat/lon only rules
// with no location can match.
func (s *Server) recommended(c *gin.Context) {
	var pos *models.Coordinates
	lat, lon := c.Query("lat"), c.Query("lon")
	if (lat == "") != (lon == "") {
		respondMessage(c, http.StatusBadRequest, "lat and lon must be given together")
		return
	}
	if lat != "" {
		la, errLat := strconv.ParseFloat(lat, 64)
		lo, errLon := strconv.ParseFloat(lon, 64)
		if errLat != nil || errLon != nil {
			respondMessage(c, http.StatusBadRequest, "lat and lon must be numbers")
			return
		}
		pos = &models.Coordinates{Latitude: la, Longitude: lo}
	}

	cond := journeys.ConditionsAt(s.now(), pos)
	if raw := c.Query("time"); raw != "" {
		cond.Now = raw
	}
	if raw := c.Query("dow"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, "dow must be 0 (Sunday) to 6 (Saturday)")
			return
		}
		cond.Weekday = n
	}

	all, err := s.journeys.Journeys(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	recs, err := journeys.Recommend(all, cond)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, recs)
}

func (s *Server) listLocations(c *gin.Context) {
	list, err := s.journeys.Locations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, list)
}

func (s *Server) createLocation(c *gin.Context) {
	var loc models.SavedLocation
	if err := c.ShouldBindJSON(&loc); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	created, err := s.journeys.AddLocation(c.Request.Context(), loc)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, created)
}

func (s *Server) updateLocation(c *gin.Context) {
	var loc models.SavedLocation
	if err := c.ShouldBindJSON(&loc); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	loc.ID = c.Param("id")

	if err := s.journeys.UpdateLocation(c.Request.Context(), loc); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, loc)
}

func (s *Server) deleteLocation(c *gin.Context) {
	if err := s.journeys.RemoveLocation(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
