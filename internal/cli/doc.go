// Package cli provides the interactive passvault command-line client.
//
// The client runs against the vault services in-process: it opens the same
// database the server would, unlocks it with the master password read from
// the terminal, and executes REPL commands until the user exits. Leaving the
// REPL locks the vault and clears any password still on the clipboard.
//
// Commands:
//   - status, setup, login, logout
//   - list [category], add, edit <id>, delete <id>
//   - generate [length] [--no-symbols], copy <id>, backup
//   - help, exit | quit
package cli
