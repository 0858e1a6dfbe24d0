package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/flagx"
)

var serverFlags = flagx.NewSet(
	[]string{"-a", "-store", "-d", "-cache", "-r", "-s", "-alg", "-t", "-hash", "-l"},
	"-cache-ttl",
)

// parseFlags populates server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string       HTTP bind address (e.g., ":8000")
//	-store string   user store: postgres, sqlite or memory
//	-d string       user store DSN
//	-cache string   token cache: redis or memory
//	-r string       redis URL
//	-s string       JWT HMAC secret key
//	-alg string     signing algorithm (HS256, HS384, HS512)
//	-t int          token validity, minutes
//	-cache-ttl      expire cached tokens with the token lifetime
//	-hash string    password scheme for new hashes: bcrypt or argon2id
//	-l string       log level
//
// os.Args is filtered first so -c/-config and foreign flags don't collide.
func parseFlags(config *Config) {
	args := serverFlags.Filter(os.Args[1:])

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.StoreDriver, "store", config.StoreDriver, "user store driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.CacheDriver, "cache", config.CacheDriver, "token cache driver")
	fs.StringVar(&config.RedisURL, "r", config.RedisURL, "redis URL")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.Algorithm, "alg", config.Algorithm, "JWT signing algorithm")

	tokenValidity := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")

	fs.BoolVar(&config.CacheTTL, "cache-ttl", config.CacheTTL, "expire cached tokens with the token")
	fs.StringVar(&config.PasswordScheme, "hash", config.PasswordScheme, "password hashing scheme")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenValidityDuration = time.Duration(*tokenValidity) * time.Minute
		}
	})
}
