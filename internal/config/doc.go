// Package config provides configuration management for botdash.
//
// Configuration is loaded from multiple sources and merged in order, with
// later sources overriding earlier ones:
//
//  1. Default configuration (built in)
//  2. User configuration (~/.config/botdash/config.yaml)
//  3. Project configuration (./.botdash/config.yaml)
//  4. An explicit file passed with --config
//  5. BOTDASH_* environment variables, after a ./.env file (if any) has been
//     loaded into the environment
//
// Example:
//
//	backend:
//	  url: "https://bot.example.com"
//	  sessionCookieName: "session"
//	  sessionCookie: "<copied from a logged-in browser>"
//	  timeout: 10s
//	catalog:
//	  source: "embedded" # or a file path or http(s) URL
//	ui:
//	  locale: "id"
//	logging:
//	  file: "/tmp/botdash.log"
package config
