package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ngmaloney/train-terminal/internal/favourites"
	"github.com/ngmaloney/train-terminal/internal/models"
	"github.com/ngmaloney/train-terminal/internal/timeutil"
)

// favouriteServiceResponse is a pinned service with its template filled in
type favouriteServiceResponse struct {
	models.FavouriteService
	URL string `json:"url"`
}

// addServiceRequest is the body of POST /api/v1/favourites/services
type addServiceRequest struct {
	ServiceID          string `json:"serviceId" binding:"required"`
	From               string `json:"from" binding:"required"`
	To                 string `json:"to" binding:"required"`
	ScheduledDeparture string `json:"scheduledDeparture"` // HH:mm
}

type stationRequest struct {
	CRS string `json:"crs" binding:"required"`
}

// listFavouriteServices handles GET /api/v1/favourites/services?date=
func (s *Server) listFavouriteServices(c *gin.Context) {
	date := s.now()
	if raw := c.Query("date"); raw != "" {
		t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		date = t
	}

	list, err := s.favourites.ListServices(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]favouriteServiceResponse, 0, len(list))
	for _, svc := range list {
		out = append(out, favouriteServiceResponse{FavouriteService: svc, URL: favourites.ServiceURL(svc, date)})
	}
	respondOK(c, http.StatusOK, out)
}

func (s *Server) addFavouriteService(c *gin.Context) {
	var req addServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	from, ok := s.directory.Lookup(req.From)
	if !ok {
		respondMessage(c, http.StatusBadRequest, "unknown station "+strings.ToUpper(req.From))
		return
	}
	to, ok := s.directory.Lookup(req.To)
	if !ok {
		respondMessage(c, http.StatusBadRequest, "unknown station "+strings.ToUpper(req.To))
		return
	}
	if req.ScheduledDeparture != "" {
		if _, err := timeutil.ParseClock(req.ScheduledDeparture); err != nil {
			respondMessage(c, http.StatusBadRequest, "scheduledDeparture must be HH:mm")
			return
		}
	}

	ctx := c.Request.Context()
	template := favourites.TemplateFor(req.ServiceID)
	exists, err := s.favourites.IsServiceFavourited(ctx, template)
	if err != nil {
		respondError(c, err)
		return
	}
	if exists {
		respondMessage(c, http.StatusConflict, "service already pinned")
		return
	}

	svc, err := s.favourites.AddService(ctx, models.FavouriteService{
		TemplateURL:        template,
		FromStation:        from,
		ToStation:          to,
		ScheduledDeparture: req.ScheduledDeparture,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, favouriteServiceResponse{FavouriteService: *svc, URL: favourites.ServiceURL(*svc, s.now())})
}

func (s *Server) deleteFavouriteService(c *gin.Context) {
	if err := s.favourites.RemoveService(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listFavouriteStations(c *gin.Context) {
	list, err := s.favourites.ListStations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, list)
}

func (s *Server) addFavouriteStation(c *gin.Context) {
	var req stationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	station, ok := s.directory.Lookup(req.CRS)
	if !ok {
		respondMessage(c, http.StatusBadRequest, "unknown station "+strings.ToUpper(req.CRS))
		return
	}
	if err := s.favourites.AddStation(c.Request.Context(), station); err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusCreated, station)
}

func (s *Server) deleteFavouriteStation(c *gin.Context) {
	crs := strings.ToUpper(c.Param("crs"))
	if err := s.favourites.RemoveStation(c.Request.Context(), crs); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listRecentSearches(c *gin.Context) {
	list, err := s.history.Searches(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, list)
}

// deleteRecentSearch handles DELETE /api/v1/history/searches?from=&to=
func (s *Server) deleteRecentSearch(c *gin.Context) {
	from, to := strings.ToUpper(c.Query("from")), strings.ToUpper(c.Query("to"))
	if from == "" || to == "" {
		respondMessage(c, http.StatusBadRequest, "from and to are required")
		return
	}
	if err := s.history.RemoveSearch(c.Request.Context(), from, to); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listRecentStations(c *gin.Context) {
	list, err := s.history.Stations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, list)
}

func (s *Server) clearRecentStations(c *gin.Context) {
	if err := s.history.ClearStations(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
