// Command ytcatalog fetches every playlist and video of one YouTube channel
// and writes a grouped JSON catalog for a static site.
//
// Running ytcatalog with no subcommand performs a fetch. Subcommands inspect
// a written catalog (show), list recorded runs (history) and manage the
// configuration file (config init, config validate).
//
// The YouTube Data API key comes from --api-key, the config file, or the
// YT_API_KEY environment variable; a .env file in the working directory is
// read without overriding variables that are already set.
package main
