package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ngmaloney/train-terminal/internal/config"
	"github.com/ngmaloney/train-terminal/internal/database"
	"github.com/ngmaloney/train-terminal/internal/favourites"
	"github.com/ngmaloney/train-terminal/internal/history"
	"github.com/ngmaloney/train-terminal/internal/journeys"
	"github.com/ngmaloney/train-terminal/internal/logging"
	"github.com/ngmaloney/train-terminal/internal/models"
	"github.com/ngmaloney/train-terminal/internal/stations"
	"github.com/ngmaloney/train-terminal/internal/transportapi"
	"github.com/ngmaloney/train-terminal/internal/ui"
	"github.com/sirupsen/logrus"
)

func main() {
	from := flag.String("from", "", "CRS code of the station to show departures from (e.g. SEV)")
	to := flag.String("to", "", "CRS code to filter departures by (requires --from)")
	lat := flag.Float64("lat", 0, "Current latitude, used to suggest saved journeys (requires --lon)")
	lon := flag.Float64("lon", 0, "Current longitude, used to suggest saved journeys (requires --lat)")
	mock := flag.Bool("mock", false, "Use bundled sample data instead of the live API")
	flag.Parse()

	if *to != "" && *from == "" {
		fmt.Println("Error: --to requires --from.")
		os.Exit(1)
	}

	var position *models.Coordinates
	latSet, lonSet := flagSet("lat"), flagSet("lon")
	if latSet != lonSet {
		fmt.Println("Error: --lat and --lon must be given together.")
		os.Exit(1)
	}
	if latSet {
		position = &models.Coordinates{Latitude: *lat, Longitude: *lon}
	}

	cfg := config.Load()
	if *mock {
		cfg.TransportAPI.UseMock = true
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	logFile, err := logging.SetupFile(logging.FilePath(), cfg.Server.LogLevel)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		fmt.Printf("Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	logrus.WithFields(logrus.Fields{
		"db":   cfg.Database.Path,
		"mock": cfg.TransportAPI.UseMock,
	}).Info("Starting train terminal")

	deps := ui.Deps{
		DB:          db,
		Client:      transportapi.New(cfg.ClientOptions(), cfg.TransportAPI.UseMock),
		Journeys:    journeys.NewService(journeys.NewRepository(db), time.Now),
		Favourites:  favourites.NewRepository(db, time.Now),
		History:     history.NewRepository(db, time.Now),
		Directory:   stations.NewDirectory(stations.NewRepository(db)),
		StationsURL: cfg.StationsSource(),
		Position:    position,
		Now:         time.Now,
	}

	p := tea.NewProgram(ui.NewModel(deps, ui.Options{FromCRS: *from, ToCRS: *to}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logrus.WithError(err).Error("Application exited with error")
		fmt.Printf("Error running application: %v\n", err)
		os.Exit(1)
	}
}

// flagSet reports whether the named flag was given on the command line
func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
