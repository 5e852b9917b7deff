// Command appprops-gen writes configuration loaders for the struct types of
// a package annotated with //appprops:load. It is meant to be run by
// go generate:
//
//	//go:generate go run github.com/Azhovan/appprops/cmd/appprops-gen
package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
)

func main() {
	if err := newRootCmd(afero.NewOsFs()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
