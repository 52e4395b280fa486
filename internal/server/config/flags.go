package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/placeholder/internal/flagx"
	"github.com/dmitrijs2005/placeholder/internal/timex"
)

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC bind address (e.g., ":50051")
//	-d string   PostgreSQL DSN; empty selects the in-memory store
//	-s string   token HMAC secret key
//	-t int      token ttl, milliseconds
//	-b int      bcrypt cost
//	-l string   log level
//
// Args are filtered with flagx.FilterArgs first so -c / -config do not
// trip this flag set.
func parseFlags(config *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-g", "-d", "-s", "-t", "-b", "-l"})

	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "HTTP address and port to run server")
	fs.StringVar(&config.EndpointAddrGRPC, "g", config.EndpointAddrGRPC, "gRPC address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	ttl := fs.Int64("t", config.TokenTTL.Milliseconds(), "token ttl (in milliseconds)")
	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		return err
	}

	config.TokenTTL = timex.Millis(*ttl)
	return nil
}
