package daemon

import (
	"sync"

	pkgerrors "github.com/pkg/errors"

	"github.com/headsetmon/headsetmon/pkg/headset"
)

// retrySource defers telemetry source construction until it succeeds.
// Sources like bluez need a running system service at construction time,
// and a daemon started at session boot must keep serving when that service
// comes up late. Until connect succeeds every poll returns an error and the
// monitor degrades to the no-adapter state.
type retrySource struct {
	name    string
	connect func() (headset.Source, error)

	mu  sync.Mutex
	src headset.Source
}

var _ headset.Source = &retrySource{}

func newRetrySource(name string, connect func() (headset.Source, error)) *retrySource {
	return &retrySource{name: name, connect: connect}
}

func (s *retrySource) Name() string { return s.name }

// ensure constructs the underlying source if it has not been constructed
// yet. Once connected, the source is kept for good.
func (s *retrySource) ensure() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.src != nil {
		return nil
	}

	src, err := s.connect()
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to create %s telemetry source", s.name)
	}
	s.src = src
	return nil
}

func (s *retrySource) Devices() ([]headset.Device, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	src := s.src
	s.mu.Unlock()
	return src.Devices()
}
