package cli

// Package cli wires the cobra command surface: the root batch download
// command, the info subcommand, and the mapping from run outcomes to process
// exit codes (0 all succeeded, 1 any failed, 2 configuration error).
