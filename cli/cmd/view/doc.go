// Package view renders game frames and results for the terminal.
package view
