// Package config is responsible for finding, parsing and merging the Tessella
// user configuration with the default one.
//
// The user configuration is in $HOME/.tessella/config.json on Linux, BSD and
// macOS and in %APPDATA%/tessella/config.json on Windows. It is created from
// the defaults on the first start.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/spf13/afero"

	"github.com/tessella/tessella/src/helpers"
)

// ConfigName is the name of the user configuration file.
const ConfigName = "config.json"

// Config is the representation of everything in config.json.
type Config struct {
	Listen         string `json:"listen"`
	SSL            bool   `json:"ssl"`
	SSLCertificate Cert   `json:"ssl_certificate"`
	Auth           bool   `json:"basic_authenticate"`
	Authenticate   Auth   `json:"authentication"`
	UserPath       string `json:"user_path"`
	LogFile        string `json:"log_file"`
	SqliteDatabase string `json:"sqlite_database"`
	JobsDirectory  string `json:"jobs_directory"`
	Gzip           bool   `json:"gzip"`
	ReadTimeout    int    `json:"read_timeout"`
	WriteTimeout   int    `json:"write_timeout"`
	MaxHeadersSize int    `json:"max_header_bytes"`

	// MaxUploadMB is the largest accepted photo upload in megabytes.
	MaxUploadMB int `json:"max_upload_mb"`

	Grid        Grid  `json:"grid"`
	Tiles       Tiles `json:"tiles"`
	BagCapacity int   `json:"bag_capacity"`
	Brand       Brand `json:"brand"`

	// JobTTL is the number of hours after which jobs are removed.
	JobTTL int `json:"job_ttl"`
}

// Cert is the TLS certificate and key files.
type Cert struct {
	Crt string `json:"crt"`
	Key string `json:"key"`
}

// Auth holds the credentials for the API. Secret is used for signing tokens.
type Auth struct {
	User     string `json:"user"`
	Password string `json:"password"`
	Secret   string `json:"secret"`
}

// Grid are the bounds for the size of requested symbol grids.
type Grid struct {
	MinW     int `json:"min_w"`
	MaxW     int `json:"max_w"`
	MinH     int `json:"min_h"`
	MaxH     int `json:"max_h"`
	DefaultW int `json:"default_w"`
	DefaultH int `json:"default_h"`
}

// Tiles is the default print tile geometry.
type Tiles struct {
	CellW     int `json:"cell_w"`
	CellH     int `json:"cell_h"`
	GroupSize int `json:"group_size"`
}

// Brand is the text printed on the pattern covers.
type Brand struct {
	Hashtag   string `json:"hashtag"`
	SiteLabel string `json:"site_label"`
	QRLabel   string `json:"qr_label"`
	URLBase   string `json:"url_base"`
}

// Default returns the built in configuration.
func Default() Config {
	return Config{
		Listen:         "localhost:9996",
		LogFile:        "tessella.log",
		SqliteDatabase: "tessella.db",
		JobsDirectory:  "jobs",
		Gzip:           true,
		ReadTimeout:    60,
		WriteTimeout:   300,
		MaxHeadersSize: 1048576,
		MaxUploadMB:    15,
		Grid: Grid{
			MinW:     60,
			MaxW:     150,
			MinH:     80,
			MaxH:     200,
			DefaultW: 96,
			DefaultH: 128,
		},
		Tiles: Tiles{
			CellW:     9,
			CellH:     13,
			GroupSize: 12,
		},
		BagCapacity: 200,
		Brand: Brand{
			Hashtag:   "#TESSELLA",
			SiteLabel: "TESSELLA.APP",
			QRLabel:   "Use your phone to scan the assembly code",
			URLBase:   "https://tessella.app/assembly",
		},
		JobTTL: 24,
	}
}

// JobTTLDuration returns JobTTL as a duration.
func (cfg *Config) JobTTLDuration() time.Duration {
	return time.Duration(cfg.JobTTL) * time.Hour
}

// MaxUploadBytes returns MaxUploadMB in bytes.
func (cfg *Config) MaxUploadBytes() int64 {
	return int64(cfg.MaxUploadMB) << 20
}

// FindAndParse finds the user configuration file, parses it and merges it on
// top of the default configuration. A missing user configuration is created
// with the defaults.
func (cfg *Config) FindAndParse(fs afero.Fs) error {
	userDir := cfg.UserPath
	*cfg = Default()
	cfg.UserPath = userDir

	userPath := cfg.UserConfigPath()
	if userPath == "" {
		return fmt.Errorf("could not determine the user config path")
	}

	if !cfg.UserConfigExists(fs) {
		if err := cfg.CopyDefaultOverUser(fs); err != nil {
			return err
		}
	}

	usrCfg := new(Config)
	if err := usrCfg.parse(fs, userPath); err != nil {
		return err
	}

	cfg.merge(usrCfg)
	return nil
}

// parse reads the JSON file filename and populates the config fields.
func (cfg *Config) parse(fs afero.Fs, filename string) error {
	data, err := afero.ReadFile(fs, filename)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing %s: %w", filename, err)
	}

	return nil
}

// merge copies every non-zero field of merged over cfg. Nested structs are
// merged field by field.
func (cfg *Config) merge(merged *Config) {
	mergeValues(reflect.ValueOf(cfg).Elem(), reflect.ValueOf(merged).Elem())
}

func mergeValues(dst, src reflect.Value) {
	for i := 0; i < src.NumField(); i++ {
		srcField := src.Field(i)
		dstField := dst.Field(i)

		if !srcField.IsValid() || !dstField.CanSet() || srcField.IsZero() {
			continue
		}

		if srcField.Kind() == reflect.Struct {
			mergeValues(dstField, srcField)
			continue
		}

		dstField.Set(srcField)
	}
}

// UserConfigPath returns the full path to the user's configuration file.
func (cfg *Config) UserConfigPath() string {
	if len(cfg.UserPath) > 0 {
		if filepath.IsAbs(cfg.UserPath) {
			return filepath.Join(cfg.UserPath, ConfigName)
		}
		log.Printf("User path %s was invalid as it was not rooted", cfg.UserPath)
	}

	path, err := helpers.ProjectUserPath()
	if err != nil {
		log.Println(err)
		return ""
	}
	return filepath.Join(path, ConfigName)
}

// UserConfigExists returns true if the user configuration is present.
func (cfg *Config) UserConfigExists(fs afero.Fs) bool {
	st, err := fs.Stat(cfg.UserConfigPath())
	if err != nil {
		return false
	}
	return !st.IsDir()
}

// CopyDefaultOverUser creates or replaces the user configuration with the
// default one.
func (cfg *Config) CopyDefaultOverUser(fs afero.Fs) error {
	userConfig := cfg.UserConfigPath()

	if err := fs.MkdirAll(filepath.Dir(userConfig), 0700); err != nil {
		return fmt.Errorf("creating user config directory: %w", err)
	}

	defaults := Default()
	data, err := json.MarshalIndent(&defaults, "", "    ")
	if err != nil {
		return err
	}

	return afero.WriteFile(fs, userConfig, data, os.FileMode(0600))
}

// UserDataPath returns path relative to the directory of the user
// configuration. Absolute paths are returned unchanged.
func (cfg *Config) UserDataPath(path string) string {
	return helpers.AbsolutePath(path, filepath.Dir(cfg.UserConfigPath()))
}
