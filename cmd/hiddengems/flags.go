package main

import (
	"github.com/spf13/pflag"

	"hiddengems/internal/config"
)

// backendFlags are overrides shared by every command that talks to the backend.
type backendFlags struct {
	fs      *pflag.FlagSet
	port    int
	baseDir string
}

func newBackendFlags() *backendFlags {
	f := &backendFlags{}
	f.fs = pflag.NewFlagSet("backend", pflag.ContinueOnError)
	f.fs.IntVar(&f.port, "port", 0, "Backend port (overrides backend.port)")
	f.fs.StringVar(&f.baseDir, "base-dir", "", "Directory containing the backend and its .venv (overrides backend.base_dir)")
	return f
}

func (f *backendFlags) flagSet() *pflag.FlagSet {
	return f.fs
}

func (f *backendFlags) overrides() config.Overrides {
	if f == nil {
		return config.Overrides{}
	}
	var ov config.Overrides
	if f.fs.Changed("port") {
		ov.Port = f.port
	}
	if f.fs.Changed("base-dir") {
		ov.BaseDir = f.baseDir
	}
	return ov
}
