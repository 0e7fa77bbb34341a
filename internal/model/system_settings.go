package model

import "sync"

// Defaults for a fresh installation
const (
	DefaultFrameRate      = 30
	DefaultMonitorAddress = ":8044"
)

// SystemSettingsModel holds the host-level settings: which MIDI port to
// listen on, how fast to render and where the monitor API binds.
type SystemSettingsModel struct {
	Model
	mu sync.Mutex

	midiPortName    string
	frameRate       int
	concertFilePath string
	monitorAddress  string
}

// NewSystemSettingsModel creates a model with defaults.
func NewSystemSettingsModel() *SystemSettingsModel {
	return &SystemSettingsModel{
		frameRate:      DefaultFrameRate,
		monitorAddress: DefaultMonitorAddress,
	}
}

// GetMidiPortName returns the configured MIDI input port name.
func (m *SystemSettingsModel) GetMidiPortName() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.midiPortName
}

// SetMidiPortName sets the MIDI input port name.
func (m *SystemSettingsModel) SetMidiPortName(name string) {
	m.mu.Lock()
	m.midiPortName = name
	m.mu.Unlock()

	m.NotifyObservers()
}

// GetFrameRate returns the render frame rate.
func (m *SystemSettingsModel) GetFrameRate() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.frameRate
}

// SetFrameRate sets the render frame rate. Non-positive values fall back to
// the default.
func (m *SystemSettingsModel) SetFrameRate(frameRate int) {
	if frameRate <= 0 {
		frameRate = DefaultFrameRate
	}

	m.mu.Lock()
	m.frameRate = frameRate
	m.mu.Unlock()

	m.NotifyObservers()
}

// GetConcertFilePath returns where the concert document is persisted.
func (m *SystemSettingsModel) GetConcertFilePath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.concertFilePath
}

// SetConcertFilePath sets where the concert document is persisted.
func (m *SystemSettingsModel) SetConcertFilePath(path string) {
	m.mu.Lock()
	m.concertFilePath = path
	m.mu.Unlock()

	m.NotifyObservers()
}

// GetMonitorAddress returns the monitor API bind address.
func (m *SystemSettingsModel) GetMonitorAddress() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.monitorAddress
}

// SetMonitorAddress sets the monitor API bind address.
func (m *SystemSettingsModel) SetMonitorAddress(address string) {
	m.mu.Lock()
	m.monitorAddress = address
	m.mu.Unlock()

	m.NotifyObservers()
}
