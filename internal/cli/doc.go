// Package cli turns stagegrid's command line into an app.Config. Parse
// failures and invalid values come back as *ExitError carrying the process
// exit code; -h and a missing pipeline path print usage and ask the caller
// to exit cleanly.
package cli
