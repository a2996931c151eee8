package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/passvault/internal/flagx"
)

var allowedFlags = []string{"-a", "-g", "-t", "-d", "-s", "-v", "-o", "-l", "-u", "-p", "-b", "-r", "-e"}

// parseFlags overlays command-line flags onto config.
//
//	-a string   HTTP bind address
//	-g string   gRPC bind address
//	-t string   database driver (sqlite, postgres)
//	-d string   database DSN or SQLite file path
//	-s string   token signing secret
//	-v int      token validity, minutes
//	-o string   comma separated CORS origins
//	-l string   log level
//	-u/-p       S3 access key / secret key
//	-b/-r/-e    S3 bucket / region / base endpoint
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], allowedFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC address and port")
	fs.StringVar(&config.DatabaseDriver, "t", config.DatabaseDriver, "database driver")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	validity := fs.Int("v", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "allowed CORS origins")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 access key")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "r", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenValidityDuration = time.Duration(*validity) * time.Minute
	config.AllowedOrigins = splitList(*origins)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
