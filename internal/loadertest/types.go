// Package loadertest declares annotated types whose generated loaders are
// checked in, so the generated code is compiled and exercised by go test.
// Regenerate with `go generate ./internal/loadertest`.
package loadertest

import "strconv"

//go:generate go run github.com/Azhovan/appprops/cmd/appprops-gen

// Settings carries placeholders resolved from the environment.
//
//appprops:load src=settings.yaml
type Settings struct {
	Timeout  string `yaml:"timeout"`
	Greeting string `yaml:"greeting"`
}

// Plain has no placeholders; loading it equals plain YAML decoding.
//
//appprops:load src=plain.yaml
type Plain struct {
	Name   string         `yaml:"name"`
	Port   int            `yaml:"port"`
	Tags   []string       `yaml:"tags"`
	Limits map[string]int `yaml:"limits"`
}

// Broken points at a document that is not valid YAML.
//
//appprops:load src=broken.yaml
type Broken struct {
	Items []string `yaml:"items"`
}

// Tuned is decoded from TOML.
//
//appprops:load src=tuned.toml
type Tuned struct {
	Name     string `toml:"name"`
	Endpoint string `toml:"endpoint"`
}

// Feed is decoded from JSON.
//
//appprops:load src=feed.json
type Feed struct {
	URL string `json:"url"`
}

// Custom converts from a hand-written raw type.
//
//appprops:load src=custom.yaml
type Custom struct {
	Port int
}

// RawCustom holds the port as text so it can come from the environment.
type RawCustom struct {
	Port string `yaml:"port"`
}

// Into converts the resolved raw value; an unparsable port becomes 0.
func (r RawCustom) Into() Custom {
	port, _ := strconv.Atoi(r.Port)
	return Custom{Port: port}
}
