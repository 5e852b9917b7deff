// Package appprops is the runtime half of the appprops-gen code generator.
//
// Quick Start:
//
//	//go:generate go run github.com/Azhovan/appprops/cmd/appprops-gen
//
//	//appprops:load src=settings.yaml
//	type Settings struct {
//	    Timeout string `yaml:"timeout"`
//	}
//
// After `go generate`, the package gains LoadSettings, Settings.Load and a
// SettingsError type. The embedded document is decoded into RawSettings,
// ${VAR} references are resolved by the envsubst package and the result is
// converted into Settings:
//
//	cfg, err := appprops.Load[Settings]()
//	if errors.Is(err, appprops.ErrDeserialize) { ... }
//
// Struct tag directives understood at load time: appprops:"secret", appprops:"-".
//
// See examples/basic for a complete, generated package.
package appprops
