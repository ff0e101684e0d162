package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// NetAddress holds structured network address data for host and port.
// It implements the pflag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses the bootstrap flags from args, which must not include
// the program name.
//
// Flags:
//
//	-c, --settings        agent settings file (JSON, YAML or TOML)
//	-w, --watch           reload the settings file when it changes
//	-a, --debug-address   diagnostics listener in format [host]:[port]
//	--debug-request-timeout   per-request timeout of the diagnostics listener
//	--debug-shutdown-timeout  graceful shutdown timeout of the diagnostics listener
//	--log-role            value of the "role" log field
func ParseFlags(args []string) (*StructuredConfig, error) {
	var debugAddress NetAddress
	var settingsFile string
	var watch bool
	var requestTimeout time.Duration
	var shutdownTimeout time.Duration
	var logRole string

	fs := pflag.NewFlagSet("apm-agent", pflag.ContinueOnError)
	fs.StringVarP(&settingsFile, "settings", "c", "", "Agent settings file path")
	fs.BoolVarP(&watch, "watch", "w", false, "Reload the settings file when it changes")
	fs.VarP(&debugAddress, "debug-address", "a", "Diagnostics listener address host:port")
	fs.DurationVar(&requestTimeout, "debug-request-timeout", 0, "Diagnostics request timeout (e.g., 5s)")
	fs.DurationVar(&shutdownTimeout, "debug-shutdown-timeout", 0, "Diagnostics shutdown timeout (e.g., 10s)")
	fs.StringVar(&logRole, "log-role", "", "Role field of every log entry")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &StructuredConfig{
		Settings: Settings{
			File:  settingsFile,
			Watch: watch,
		},
		Debug: Debug{
			Address:         debugAddress.String(),
			RequestTimeout:  requestTimeout,
			ShutdownTimeout: shutdownTimeout,
		},
		Log: Log{
			Role: logRole,
		},
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is
// "localhost" or empty, and returns an error if the format or values are
// invalid.
func (a *NetAddress) Set(s string) error {
	host, rawPort, err := net.SplitHostPort(s)
	if err != nil {
		return errors.New("need address in a form `host:port`")
	}

	port, err := strconv.Atoi(rawPort)
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1-65535")
	}

	if host != "" && !strings.EqualFold(host, "localhost") {
		if ip := net.ParseIP(host); ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

// Type implements pflag.Value.
func (a *NetAddress) Type() string {
	return "host:port"
}
