// Package cmd implements the dgate command line interface.
package cmd
