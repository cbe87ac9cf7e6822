// Package config is responsible for finding, parsing and merging the user
// configuration with the defaults. Configuration locations are different
// depending on the host OS.
//
// Linux/BSD configurations are in $HOME/.aoede/config.json
// Windows configurations are in %APPDATA%\aoede\config.json
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/spf13/afero"

	"github.com/ironsmile/aoede/src/helpers"
)

// ConfigName contains the name of the configuration file inside the user path.
const ConfigName = "config.json"

// Config contains representation for everything in config.json.
type Config struct {
	Listen            string      `json:"listen"`
	SSL               bool        `json:"ssl"`
	SSLCertificate    Cert        `json:"ssl_certificate"`
	Auth              bool        `json:"basic_authenticate"`
	Authenticate      Auth        `json:"authentication"`
	Libraries         []string    `json:"libraries"`
	LibraryScan       ScanSection `json:"library_scan"`
	WatchLibraries    bool        `json:"watch_libraries"`
	UserPath          string      `json:"user_path"`
	LogFile           string      `json:"log_file"`
	PlaylistsDatabase string      `json:"playlists_database"`
	Gzip              bool        `json:"gzip"`
	ReadTimeout       int         `json:"read_timeout"`
	WriteTimeout      int         `json:"write_timeout"`
	MaxHeadersSize    int         `json:"max_header_bytes"`
}

// MergedConfig is the input for merging a configuration file on top of the
// defaults. Its pointer fields make it possible to tell absent values apart
// from zero values. Its fields must be kept in the same order as the ones in
// Config.
type MergedConfig struct {
	Listen            *string      `json:"listen"`
	SSL               *bool        `json:"ssl"`
	SSLCertificate    *Cert        `json:"ssl_certificate"`
	Auth              *bool        `json:"basic_authenticate"`
	Authenticate      *Auth        `json:"authentication"`
	Libraries         []string     `json:"libraries"`
	LibraryScan       *ScanSection `json:"library_scan"`
	WatchLibraries    *bool        `json:"watch_libraries"`
	UserPath          *string      `json:"user_path"`
	LogFile           *string      `json:"log_file"`
	PlaylistsDatabase *string      `json:"playlists_database"`
	Gzip              *bool        `json:"gzip"`
	ReadTimeout       *int         `json:"read_timeout"`
	WriteTimeout      *int         `json:"write_timeout"`
	MaxHeadersSize    *int         `json:"max_header_bytes"`
}

// Cert represents a configuration for a TLS certificate.
type Cert struct {
	Crt string `json:"crt"`
	Key string `json:"key"`
}

// Auth represents a configuration for the HTTP basic authentication.
type Auth struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

// ScanSection is used for wrapping the library scan settings in the config
// file.
type ScanSection struct {
	FilesPerOperation int64         `json:"files_per_operation"`
	SleepPerOperation time.Duration `json:"sleep_after_operation"`
	InitialWait       time.Duration `json:"initial_wait_duration"`
}

// UnmarshalJSON parses a JSON and populates its ScanSection object. The
// durations in the file are human readable strings such as "15ms".
func (ss *ScanSection) UnmarshalJSON(input []byte) error {
	ssProxy := &struct {
		FilesPerOperation int64  `json:"files_per_operation"`
		SleepPerOperation string `json:"sleep_after_operation"`
		InitialWait       string `json:"initial_wait_duration"`
	}{}

	if err := json.Unmarshal(input, ssProxy); err != nil {
		return err
	}

	ss.FilesPerOperation = ssProxy.FilesPerOperation

	if ssProxy.SleepPerOperation != "" {
		spo, err := time.ParseDuration(ssProxy.SleepPerOperation)
		if err != nil {
			return err
		}
		ss.SleepPerOperation = spo
	}

	if ssProxy.InitialWait != "" {
		iwd, err := time.ParseDuration(ssProxy.InitialWait)
		if err != nil {
			return err
		}
		ss.InitialWait = iwd
	}

	if ss.FilesPerOperation <= 0 {
		return errors.New("files_per_operation must be a positive integer")
	}

	return nil
}

// MarshalJSON turns the ScanSection back into its file representation where
// the durations are human readable strings.
func (ss ScanSection) MarshalJSON() ([]byte, error) {
	ssProxy := struct {
		FilesPerOperation int64  `json:"files_per_operation"`
		SleepPerOperation string `json:"sleep_after_operation"`
		InitialWait       string `json:"initial_wait_duration"`
	}{
		FilesPerOperation: ss.FilesPerOperation,
		SleepPerOperation: ss.SleepPerOperation.String(),
		InitialWait:       ss.InitialWait.String(),
	}

	return json.Marshal(ssProxy)
}

// Default returns the configuration which is used for every setting the user
// has not touched.
func Default() Config {
	return Config{
		Listen:            ":9933",
		Gzip:              true,
		WatchLibraries:    true,
		LogFile:           "aoede.log",
		PlaylistsDatabase: "playlists.db",
		ReadTimeout:       15,
		WriteTimeout:      1200,
		MaxHeadersSize:    1048576,
		LibraryScan: ScanSection{
			FilesPerOperation: 1500,
			SleepPerOperation: 15 * time.Millisecond,
			InitialWait:       1 * time.Second,
		},
	}
}

// FindAndParse finds the configuration file, parses it and merges it on top
// of the default configuration. When no configuration file exists yet one
// with the default values is created so that the user has something to edit.
//
// When explicitFile is not empty it is used instead of the one in the user
// path and it is an error for it to be missing.
func FindAndParse(appfs afero.Fs, explicitFile string) (Config, error) {
	cfg := Default()

	configFile := explicitFile
	if configFile == "" {
		configFile = UserConfigPath(appfs)
		if configFile == "" {
			return cfg, errors.New("could not determine the user configuration path")
		}

		exists, err := regularFileExists(appfs, configFile)
		if err != nil {
			return cfg, err
		}
		if !exists {
			if err := writeConfig(appfs, configFile, cfg); err != nil {
				return cfg, fmt.Errorf("creating initial configuration: %w", err)
			}
			return cfg, nil
		}
	}

	contents, err := afero.ReadFile(appfs, configFile)
	if err != nil {
		return cfg, fmt.Errorf("reading %s: %w", configFile, err)
	}

	merged := new(MergedConfig)
	if err := json.Unmarshal(contents, merged); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", configFile, err)
	}

	cfg.merge(merged)
	return cfg, nil
}

// merge applies every value present in merged on top of the config.
func (cfg *Config) merge(merged *MergedConfig) {
	cfgVal := reflect.ValueOf(cfg).Elem()
	mergedVal := reflect.ValueOf(merged).Elem()

	for i := 0; i < mergedVal.NumField(); i++ {
		mergedField := mergedVal.Field(i)
		if mergedField.IsNil() {
			continue
		}

		cfgField := cfgVal.Field(i)
		if !cfgField.CanSet() {
			continue
		}

		if mergedField.Kind() == reflect.Slice {
			cfgField.Set(mergedField)
		} else {
			cfgField.Set(mergedField.Elem())
		}
	}
}

// UserConfigPath returns the full path to the place where the user's
// configuration file should be.
func UserConfigPath(appfs afero.Fs) string {
	path, err := helpers.ProjectUserPath(appfs)
	if err != nil {
		log.Println(err)
		return ""
	}
	return filepath.Join(path, ConfigName)
}

func regularFileExists(appfs afero.Fs, path string) (bool, error) {
	st, err := appfs.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if st.IsDir() {
		return false, fmt.Errorf("%s is a directory, not a file", path)
	}
	return true, nil
}

func writeConfig(appfs afero.Fs, path string, cfg Config) error {
	if err := appfs.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	contents, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return err
	}

	return afero.WriteFile(appfs, path, contents, 0640)
}
