// Package config loads meta.json or meta.yaml project configuration.
//
// # Configuration File Structure
//
//	{
//	  "multiLanguage": true,
//	  "charset": "utf-8",
//	  "favicon": "/favicon.ico",
//	  "baseURL": "https://example.com",
//	  "locale": "de_DE.UTF-8",
//	  "meta": {
//	    "title": "Shop",
//	    "language": "de",
//	    "canonical": true,
//	    "robots": {"index": true, "follow": true},
//	    "description": {"de": "Laden", "en": "Shop"},
//	    "keywords": ["shop", "store"],
//	    "custom": {"viewport": "width=device-width, initial-scale=1"}
//	  },
//	  "server": {"host": "localhost", "port": 8080}
//	}
//
// The same schema is accepted as YAML. Key order inside "meta" is kept, so
// robots flags and languages render in the order they are written.
//
// # Usage
//
//	cfg, err := config.Load(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	factory, err := cfg.Factory()
package config
