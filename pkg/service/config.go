package service

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"
)

// DefaultConfigFile lives next to, not inside, the list directory, since every
// entry in the list directory is read as a list
const DefaultConfigFile = ".machi.yml"

// Theme holds the colour names used by the terminal client
type Theme struct {
	Border          string `yaml:"border"`
	ListHighlight   string `yaml:"list_highlight"`
	DetailHighlight string `yaml:"detail_highlight"`
}

// S3Remote ...
type S3Remote struct {
	Bucket   string `yaml:"bucket"`
	Prefix   string `yaml:"prefix"`
	Region   string `yaml:"region"`
	Match    string `yaml:"match"`
	MatchAll bool   `yaml:"matchall"`
}

// WebRemote ...
type WebRemote struct {
	URL      string `yaml:"url"`
	Token    string `yaml:"token"`
	Match    string `yaml:"match"`
	MatchAll bool   `yaml:"matchall"`
}

// Remotes represent a single remote target (rather than a type), and the config lists
// all within a single configuration (listed by category)
type Remotes struct {
	S3  []S3Remote  `yaml:"s3"`
	Web []WebRemote `yaml:"web"`
}

// FileConfig is the optional yaml config file
type FileConfig struct {
	Theme   Theme   `yaml:"theme"`
	Remotes Remotes `yaml:"remotes"`
}

// DefaultTheme matches the colours the client has always used
func DefaultTheme() Theme {
	return Theme{
		Border:          "navy",
		ListHighlight:   "teal",
		DetailHighlight: "green",
	}
}

// GetFileConfig reads the config file at cfgFile. A missing file is not an error and
// yields the defaults; a file that exists but can't be parsed is.
func GetFileConfig(cfgFile string) (FileConfig, error) {
	c := FileConfig{Theme: DefaultTheme()}

	f, err := os.Open(cfgFile)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return c, err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&c); err != nil && err != io.EOF {
		return c, fmt.Errorf("parsing %s: %w", cfgFile, err)
	}

	// Partially specified themes fall back per field
	def := DefaultTheme()
	if c.Theme.Border == "" {
		c.Theme.Border = def.Border
	}
	if c.Theme.ListHighlight == "" {
		c.Theme.ListHighlight = def.ListHighlight
	}
	if c.Theme.DetailHighlight == "" {
		c.Theme.DetailHighlight = def.DetailHighlight
	}
	return c, nil
}

// Sources returns the local list directory followed by every configured remote
func (c FileConfig) Sources(root string) ([]Source, error) {
	remotes, err := c.Remotes.Sources()
	if err != nil {
		return nil, err
	}
	return append([]Source{NewLocalSource(root)}, remotes...), nil
}

// Sources builds the remote sources in config order: s3 first, then web
func (r Remotes) Sources() ([]Source, error) {
	var sources []Source
	for _, s := range r.S3 {
		src, err := NewS3Source(s)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	for _, w := range r.Web {
		src, err := NewWebSource(w)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}
