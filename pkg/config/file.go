package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/headsetmon/headsetmon/pkg/headset"
	"github.com/headsetmon/headsetmon/pkg/utils/ptr"
)

var defaultFileConfig = &RawFileConfig{
	// Off by default: the user opts in through the tray menu or CLI.
	NotificationsEnabled:     ptr.To(false),
	LowBatteryThreshold:      ptr.To(10),
	CriticalBatteryThreshold: ptr.To(3),
	PollIntervalSeconds:      ptr.To(1),
	Source:                   ptr.To(headset.SourceHeadsetControl),
	HeadsetControlPath:       ptr.To("headsetcontrol"),
	// Empty means no scheduled battery reports.
	ReportSchedule: ptr.To(""),
}

var _ Config = &File{}

// File is a Config backed by a JSON file. Unset fields fall back to
// defaults, so an empty or missing file is a valid configuration.
type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	return &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}
}

// RawFileConfig is the on-disk schema. All fields are optional.
type RawFileConfig struct {
	NotificationsEnabled     *bool   `json:"notificationsEnabled,omitempty"`
	LowBatteryThreshold      *int    `json:"lowBatteryThreshold,omitempty"`
	CriticalBatteryThreshold *int    `json:"criticalBatteryThreshold,omitempty"`
	PollIntervalSeconds      *int    `json:"pollIntervalSeconds,omitempty"`
	Source                   *string `json:"source,omitempty"`
	HeadsetControlPath       *string `json:"headsetcontrolPath,omitempty"`
	ReportSchedule           *string `json:"reportSchedule,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	return &RawFileConfig{
		NotificationsEnabled:     ptr.To(c.NotificationsEnabled()),
		LowBatteryThreshold:      ptr.To(c.LowBatteryThreshold()),
		CriticalBatteryThreshold: ptr.To(c.CriticalBatteryThreshold()),
		PollIntervalSeconds:      ptr.To(int(c.PollInterval() / time.Second)),
		Source:                   ptr.To(c.Source()),
		HeadsetControlPath:       ptr.To(c.HeadsetControlPath()),
		ReportSchedule:           ptr.To(c.ReportSchedule()),
	}, nil
}

func (f *File) NotificationsEnabled() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return ptr.Deref(f.c.NotificationsEnabled, *defaultFileConfig.NotificationsEnabled)
}

func (f *File) LowBatteryThreshold() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return ptr.Deref(f.c.LowBatteryThreshold, *defaultFileConfig.LowBatteryThreshold)
}

func (f *File) CriticalBatteryThreshold() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return ptr.Deref(f.c.CriticalBatteryThreshold, *defaultFileConfig.CriticalBatteryThreshold)
}

func (f *File) PollInterval() time.Duration {
	f.mu.RLock()
	defer f.mu.RUnlock()
	secs := ptr.Deref(f.c.PollIntervalSeconds, *defaultFileConfig.PollIntervalSeconds)
	if secs < 1 {
		secs = 1
	}
	return time.Duration(secs) * time.Second
}

func (f *File) Source() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return ptr.Deref(f.c.Source, *defaultFileConfig.Source)
}

func (f *File) HeadsetControlPath() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return ptr.Deref(f.c.HeadsetControlPath, *defaultFileConfig.HeadsetControlPath)
}

func (f *File) ReportSchedule() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return ptr.Deref(f.c.ReportSchedule, *defaultFileConfig.ReportSchedule)
}

func (f *File) SetNotificationsEnabled(b bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.NotificationsEnabled = &b
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	// Since we want to tell if the file is empty, using json.Decoder will
	// not work.
	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if strings.TrimSpace(string(b)) == "" {
		// If the file is empty, return the empty config.
		// Do not make f.c a nil.
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	err = json.Unmarshal(b, &conf)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	fp, err := os.OpenFile(f.filepath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	enc := json.NewEncoder(fp)
	enc.SetIndent("", "  ")
	err = enc.Encode(f.c)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config to file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"notificationsEnabled":     f.NotificationsEnabled(),
		"lowBatteryThreshold":      f.LowBatteryThreshold(),
		"criticalBatteryThreshold": f.CriticalBatteryThreshold(),
		"pollInterval":             f.PollInterval().String(),
		"source":                   f.Source(),
		"reportSchedule":           f.ReportSchedule(),
	}
}
