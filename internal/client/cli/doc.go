// Package cli implements the authkeeper command line client on top of
// cobra. Commands:
//
//	register   create an account and print its access token
//	login      authenticate and print the access token
//	whoami     show the profile behind an access token
//
// Passwords are always read interactively without echo, or from the next
// line of stdin when it is not a terminal.
package cli
