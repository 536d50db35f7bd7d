// Command nbhood smooths a gridded probability field with a neighbourhood
// mean and an optional recursive filter.
//
// Usage:
//
//	nbhood [flags] INPUT OUTPUT
//
// INPUT and OUTPUT are NetCDF files holding one 2-D variable with dims
// (y, x), a _FillValue for missing cells and global dx/dy attributes.
//
// Examples:
//
//	nbhood --radius=20000 in.nc out.nc
//	nbhood --radius=20000 --apply-recursive-filter --alpha_x=0.8 --alpha_y=0.8 --iterations=2 --re_mask in.nc out.nc
//	nbhood --config smooth.yaml --iterations=4 in.nc out.nc
//
// Exit status is 0 on success, 2 for invalid configuration, 3 when the
// computation produced non-finite values and 1 for any other failure.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/cwbudde/algo-spatial/spatial/smooth"
)

const (
	exitOK            = 0
	exitFailure       = 1
	exitConfiguration = 2
	exitComputation   = 3
)

func main() {
	if err := execute(&app{}, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "nbhood:", err)
		os.Exit(exitCode(err))
	}
}

// execute runs the root command and flushes the logger on every path.
func execute(a *app, args []string) error {
	defer a.sync()

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, smooth.ErrConfiguration):
		return exitConfiguration
	case errors.Is(err, smooth.ErrComputation):
		return exitComputation
	default:
		return exitFailure
	}
}
