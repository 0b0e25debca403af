package commands

import (
	"tableflip.dev/remind/pkg/app"
	"tableflip.dev/remind/pkg/notify"
	"tableflip.dev/remind/pkg/sound"
	"tableflip.dev/remind/pkg/store"
)

// newService loads config, opens persistence and returns a ready app.Service.
func newService() (*app.Service, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	svc := &app.Service{
		Persistence: p,
		Notifier:    notify.NewService(cfg.NtfyTopic()),
		Alarm:       sound.Alarm{Path: cfg.AlarmSound()},
	}
	if err := svc.Load(); err != nil {
		return nil, err
	}
	return svc, nil
}
