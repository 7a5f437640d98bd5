// Package cli provides the interactive job tracker command-line client.
//
// NewApp opens the local session store, restores a saved login and wires
// the API client, services and the posting scraper. App.Run starts a REPL
// that blocks until the user exits or stdin is closed.
package cli
