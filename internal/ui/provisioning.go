package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jmoiron/sqlx"
	"github.com/ngmaloney/train-terminal/internal/stations"
)

// provisioningStartedMsg carries the channels of a running provisioning job
type provisioningStartedMsg struct {
	progressChan chan string
	resultChan   chan error
}

// provisionStatusMsg is a progress line from the provisioning job
type provisionStatusMsg string

// provisionResultMsg is sent once provisioning has finished
type provisionResultMsg struct {
	err error
}

// initiateProvisioning starts downloading the station directory in the background
func initiateProvisioning(db *sqlx.DB, sourceURL string) tea.Cmd {
	return func() tea.Msg {
		progressChan := make(chan string, 16)
		resultChan := make(chan error, 1)

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			err := stations.Provision(ctx, db, sourceURL, progressChan)
			close(progressChan)
			resultChan <- err
		}()

		return provisioningStartedMsg{progressChan: progressChan, resultChan: resultChan}
	}
}

// waitForProvisionStatus waits for the next progress line
func waitForProvisionStatus(progressChan chan string) tea.Cmd {
	return func() tea.Msg {
		status, ok := <-progressChan
		if !ok {
			return nil
		}
		return provisionStatusMsg(status)
	}
}

// waitForProvisionResult waits for the provisioning job to finish
func waitForProvisionResult(resultChan chan error) tea.Cmd {
	return func() tea.Msg {
		return provisionResultMsg{err: <-resultChan}
	}
}
