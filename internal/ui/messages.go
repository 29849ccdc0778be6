package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/train-terminal/internal/favourites"
	"github.com/ngmaloney/train-terminal/internal/models"
	"github.com/ngmaloney/train-terminal/internal/transportapi"
	"github.com/sirupsen/logrus"
)

// Message types for async operations

// directoryLoadedMsg is sent when the station directory is cached
type directoryLoadedMsg struct {
	err error
}

// homeLoadedMsg is sent when the home screen data has been read
type homeLoadedMsg struct {
	recommended []models.SavedJourney
	recent      []models.RecentSearch
	err         error
}

// pickerSeedMsg carries the stations shown before anything is typed
type pickerSeedMsg struct {
	favourites []models.Station
	recent     []models.Station
}

// departuresFetchedMsg is sent when the departure board has been fetched
type departuresFetchedMsg struct {
	timetable *models.StationTimetable
	saved     bool // the from/to pair is a saved journey
	err       error
}

// serviceFetchedMsg is sent when a service's stop list has been fetched
type serviceFetchedMsg struct {
	detail     *models.ServiceDetail
	favourited bool
	err        error
}

// journeysFetchedMsg is sent when the saved journeys have been read
type journeysFetchedMsg struct {
	journeys []models.SavedJourney
	err      error
}

// journeyToggledMsg is sent after saving or removing the current journey
type journeyToggledMsg struct {
	saved bool
	err   error
}

// journeyDeletedMsg is sent after a saved journey is deleted
type journeyDeletedMsg struct {
	id  string
	err error
}

// favouriteToggledMsg is sent after pinning or unpinning a service
type favouriteToggledMsg struct {
	favourited bool
	err        error
}

// errMsg is a message type for errors
type errMsg struct {
	err error
}

// loadDirectory caches the station list for the session
func (m Model) loadDirectory() tea.Cmd {
	dir := m.deps.Directory
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return directoryLoadedMsg{err: dir.Load(ctx)}
	}
}

// loadHome reads the recommended journeys and recent searches
func (m Model) loadHome() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var msg homeLoadedMsg
		if deps.Journeys != nil {
			msg.recommended, msg.err = deps.Journeys.RecommendedNow(ctx, deps.Position)
			if msg.err != nil {
				return msg
			}
		}
		if deps.History != nil {
			msg.recent, msg.err = deps.History.Searches(ctx)
		}
		return msg
	}
}

// loadPickerSeed reads favourite and recent stations
func (m Model) loadPickerSeed() tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var msg pickerSeedMsg
		var err error
		if deps.Favourites != nil {
			if msg.favourites, err = deps.Favourites.ListStations(ctx); err != nil {
				logrus.WithError(err).Warn("Failed to load favourite stations")
			}
		}
		if deps.History != nil {
			if msg.recent, err = deps.History.Stations(ctx); err != nil {
				logrus.WithError(err).Warn("Failed to load recent stations")
			}
		}
		return msg
	}
}

// fetchDepartures fetches the board at from, optionally filtered to services
// calling at to. A zero at fetches the board for now.
func (m Model) fetchDepartures(from models.Station, to *models.Station, at time.Time) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		params := transportapi.StationTimetableParams{StationCRS: from.CRS, DateTime: at}
		if to != nil {
			params.CallingAt = to.CRS
		}
		timetable, err := deps.Client.StationTimetable(ctx, params)
		if err != nil {
			return departuresFetchedMsg{err: err}
		}

		msg := departuresFetchedMsg{timetable: timetable}
		if to != nil && deps.Journeys != nil {
			if msg.saved, err = deps.Journeys.HasJourney(ctx, from.CRS, to.CRS); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"from": from.CRS,
					"to":   to.CRS,
				}).Warn("Failed to check saved journey")
			}
		}
		return msg
	}
}

// recordSearch remembers the stations and the pair in the history
func (m Model) recordSearch(from models.Station, to *models.Station) tea.Cmd {
	hist := m.deps.History
	if hist == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := hist.AddStation(ctx, from); err != nil {
			logrus.WithError(err).WithField("station", from.CRS).Warn("Failed to record recent station")
		}
		if to == nil {
			return nil
		}
		if err := hist.AddStation(ctx, *to); err != nil {
			logrus.WithError(err).WithField("station", to.CRS).Warn("Failed to record recent station")
		}
		if err := hist.AddSearch(ctx, from, *to); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"from": from.CRS,
				"to":   to.CRS,
			}).Warn("Failed to record recent search")
		}
		return nil
	}
}

// fetchService fetches one service's stop list
func (m Model) fetchService(serviceID string) tea.Cmd {
	deps := m.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		detail, err := deps.Client.ServiceTimetable(ctx, serviceID, deps.now())
		if err != nil {
			return serviceFetchedMsg{err: err}
		}
		msg := serviceFetchedMsg{detail: detail}
		if deps.Favourites != nil {
			if msg.favourited, err = deps.Favourites.IsServiceFavourited(ctx, favourites.TemplateFor(serviceID)); err != nil {
				logrus.WithError(err).WithField("service", serviceID).Warn("Failed to check favourite service")
			}
		}
		return msg
	}
}

// fetchJourneys reads every saved journey
func (m Model) fetchJourneys() tea.Cmd {
	svc := m.deps.Journeys
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		journeys, err := svc.Journeys(ctx)
		return journeysFetchedMsg{journeys: journeys, err: err}
	}
}

// useJourney records that a journey was picked
func (m Model) useJourney(id string) tea.Cmd {
	svc := m.deps.Journeys
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := svc.UseJourney(ctx, id); err != nil {
			return errMsg{err: err}
		}
		return nil
	}
}

// toggleJourney saves the from/to pair, or removes it if already saved
func (m Model) toggleJourney(from, to models.Station) tea.Cmd {
	svc := m.deps.Journeys
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		all, err := svc.Journeys(ctx)
		if err != nil {
			return journeyToggledMsg{err: err}
		}
		for _, j := range all {
			if j.FromStation.CRS == from.CRS && j.ToStation.CRS == to.CRS {
				return journeyToggledMsg{saved: false, err: svc.RemoveJourney(ctx, j.ID)}
			}
		}
		_, err = svc.SaveJourney(ctx, from, to)
		return journeyToggledMsg{saved: err == nil, err: err}
	}
}

// deleteJourney removes a saved journey
func (m Model) deleteJourney(id string) tea.Cmd {
	svc := m.deps.Journeys
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return journeyDeletedMsg{id: id, err: svc.RemoveJourney(ctx, id)}
	}
}

// toggleFavourite pins the service, or unpins it if already pinned
func (m Model) toggleFavourite(serviceID string, from, to models.Station, scheduled string) tea.Cmd {
	repo := m.deps.Favourites
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		template := favourites.TemplateFor(serviceID)
		all, err := repo.ListServices(ctx)
		if err != nil {
			return favouriteToggledMsg{err: err}
		}
		for _, s := range all {
			if s.TemplateURL == template {
				return favouriteToggledMsg{favourited: false, err: repo.RemoveService(ctx, s.ID)}
			}
		}
		_, err = repo.AddService(ctx, models.FavouriteService{
			TemplateURL:        template,
			FromStation:        from,
			ToStation:          to,
			ScheduledDeparture: scheduled,
		})
		return favouriteToggledMsg{favourited: err == nil, err: err}
	}
}

// stationPinnedMsg is sent after pinning or unpinning the board's station
type stationPinnedMsg struct {
	pinned bool
	err    error
}

// toggleStation adds the station to the favourites, or removes it if present
func (m Model) toggleStation(s models.Station) tea.Cmd {
	repo := m.deps.Favourites
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		pinned, err := repo.IsFavouriteStation(ctx, s.CRS)
		if err != nil {
			return stationPinnedMsg{err: err}
		}
		if pinned {
			return stationPinnedMsg{pinned: false, err: repo.RemoveStation(ctx, s.CRS)}
		}
		err = repo.AddStation(ctx, s)
		return stationPinnedMsg{pinned: err == nil, err: err}
	}
}

// searchForgottenMsg is sent after a recent search is removed from the home screen
type searchForgottenMsg struct {
	err error
}

// forgetSearch drops one recent from/to pair from the history
func (m Model) forgetSearch(s models.RecentSearch) tea.Cmd {
	hist := m.deps.History
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return searchForgottenMsg{err: hist.RemoveSearch(ctx, s.From.CRS, s.To.CRS)}
	}
}
