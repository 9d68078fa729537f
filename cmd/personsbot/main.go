// Package main provides the entry point for the personsbot CLI.
//
// personsbot maintains the persons navigation template of the Chinese
// WikiFur. It lists every page in the person categories, romanizes the
// titles, groups them by first letter into balanced columns and renders a
// Navbox template.
//
// Usage:
//
//	personsbot              # print the template
//	personsbot --dry-run    # show the diff against the live page
//	personsbot --send       # publish the template
//
// See --help for all available options.
package main

func main() {
	Execute()
}
