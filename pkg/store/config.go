package store

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config carries the settings the store and its collaborators read: where
// the task data lives, which ntfy topic expiry notices go to, and which
// sound file the expiry alarm plays.
type Config interface {
	BasePath() string
	NtfyTopic() string
	AlarmSound() string
}

// LoadConfig reads a .remind config file (current directory, or the
// directory named by REMIND_CONFIG_PATH), with REMIND_* environment
// variables layered on top. A missing config file is fine; defaults apply.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", "~/.remind.db")
	viper.SetConfigName(".remind") // .yaml is implicit
	viper.SetEnvPrefix("REMIND")
	viper.AutomaticEnv()

	if override := os.Getenv("REMIND_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand data path: %w", err)
	}

	return &fileConfig{
		Path:  path,
		Topic: viper.GetString("ntfy_topic"),
		Sound: viper.GetString("alarm_sound"),
	}, nil
}

type fileConfig struct {
	Path  string `json:"path"`
	Topic string `json:"ntfy_topic"`
	Sound string `json:"alarm_sound"`
}

func (f *fileConfig) BasePath() string   { return f.Path }
func (f *fileConfig) NtfyTopic() string  { return f.Topic }
func (f *fileConfig) AlarmSound() string { return f.Sound }
