// Package config provides configuration management for the info service.
//
// Configuration is loaded from environment variables using the env package,
// after an optional .env file. Every value has a default, so the service
// starts with an empty environment and serves the api1 profile.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("HTTP server will listen on :%d\n", cfg.ResolveHTTPPort(3000))
package config
