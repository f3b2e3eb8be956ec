// Package main hosts the hiddengems launcher CLI.
//
// Running the binary with no subcommand starts the desktop app: it makes sure
// the Python web backend is listening, opens the application window, and
// stops the backend it started when the window closes. The remaining commands
// inspect or start the backend on its own and scaffold configuration.
//
// Commands stay thin; supervision, windowing and configuration live in the
// internal packages.
package main
