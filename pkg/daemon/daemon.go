package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/headsetmon/headsetmon/pkg/config"
	"github.com/headsetmon/headsetmon/pkg/events"
	"github.com/headsetmon/headsetmon/pkg/headset"
	"github.com/headsetmon/headsetmon/pkg/monitor"
)

var (
	mon  *monitor.Monitor
	conf config.Config
	hub  *events.EventHub
)

func setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/status", getStatus)
	router.GET("/devices", getDevices)
	router.GET("/config", getConfig)
	router.GET("/events", getEvents)
	router.GET("/version", getVersion)
	router.PUT("/selected", setSelected)
	router.PUT("/notifications", setNotifications)

	return router
}

func Run(configPath string, unixSocketPath string) error {
	router := setupRoutes()

	fileConf, err := config.NewFile(configPath)
	if err != nil {
		// A broken config file should not keep the tray icon dead. Run on
		// defaults and let the user fix the file.
		logrus.WithError(err).Warn("failed to parse config, running with defaults")
		fileConf = config.NewFileFromConfig(nil, configPath)
	}
	conf = fileConf
	logrus.WithFields(fileConf.LogrusFields()).Info("config loaded")

	// Receive SIGHUP to reload config
	go func() {
		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGHUP)
		for range sigc {
			err := conf.Load()
			if err != nil {
				logrus.Errorf("failed to reload config: %v", err)
				continue
			}
			// The telemetry source is fixed at startup; a source change
			// needs a daemon restart.
			logrus.Infof("config reloaded")
		}
	}()

	// Source construction can fail at boot (e.g. bluez before the bluetooth
	// service is up). That is not fatal: the monitor shows the no-adapter
	// state and the wrapper keeps retrying on later polls.
	source := newRetrySource(conf.Source(), func() (headset.Source, error) {
		return headset.New(conf.Source(), conf.HeadsetControlPath())
	})
	if err := source.ensure(); err != nil {
		logrus.WithError(err).Warn("telemetry source not ready, will keep retrying")
	}

	hub = events.NewEventHub()

	var notifier monitor.Notifier
	notifier, err = NewDBusNotifier()
	if err != nil {
		logrus.WithError(err).Warn("session bus unavailable, notifications will only be logged")
		notifier = LogNotifier{}
	}

	mon = monitor.New(monitor.Options{
		Source:    source,
		Presenter: logPresenter{},
		Notifier:  notifier,
		Config:    conf,
		Theme:     DesktopTheme(),
		Hub:       hub,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go mon.Run(ctx)

	var sched *Scheduler
	if expr := conf.ReportSchedule(); expr != "" {
		sched = NewScheduler(batteryReport(mon), func(data any) {
			logrus.Errorf("scheduled battery report failed: %v", data)
		})
		if err := sched.Schedule(expr); err != nil {
			logrus.WithError(err).Errorf("invalid report schedule %q, reports disabled", expr)
			sched = nil
		} else {
			sched.Start()
			next, _ := sched.Status()
			logrus.WithField("nextRun", next.Format(time.DateTime)).Info("battery reports scheduled")
		}
	}

	srv := &http.Server{
		Handler: router,
	}

	// A stale socket from a previous unclean shutdown would fail the bind.
	if err := os.Remove(unixSocketPath); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warnf("failed to remove stale socket %s", unixSocketPath)
	}

	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		logrus.Fatal(err)
	}

	// Serve HTTP on unix socket
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	// Handle common process-killing signals, so we can gracefully shut down:
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigc
	logrus.Infof("caught signal \"%s\": shutting down.", sig)

	if sched != nil {
		logrus.Info("stopping report scheduler")
		sched.Stop()
	}

	logrus.Info("stopping monitor loop")
	cancel()

	logrus.Info("shutting down http server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		logrus.Errorf("failed to shutdown http server: %v", err)
	}
	shutdownCancel()

	logrus.Info("exiting")
	return nil
}
