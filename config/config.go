// Copyright 2020-2021, DataCube, Inc.

// Package config handles config files, --config, and env vars at startup for
// programs embedding the client.
package config

import (
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/alexflint/go-arg"
	"gopkg.in/yaml.v2"

	"github.com/datacube-org/cubeclient/session"
)

const (
	DEFAULT_CONFIG_FILES = "/etc/cubeclient/cubeclient.yaml,~/.cubeclient.yaml"
	DEFAULT_PORT         = "11732"
	DEFAULT_TIMEOUT      = 5000 // 5s
)

// Options represents typical command line options: --server, --user, etc.
type Options struct {
	Server   string `arg:"env" yaml:"server"`
	Port     string `arg:"env" yaml:"port"`
	User     string `arg:"env" yaml:"user"`
	Password string `arg:"env" yaml:"password"`
	Token    string `arg:"env" yaml:"token"`
	Config   string `arg:"env"`
	Debug    bool
	Help     bool
	Timeout  uint `arg:"env" yaml:"timeout"`
	Version  bool
	Verbose  bool `arg:"-v"`
}

// Command represents a command (submit, progress, etc.) and its values.
type Command struct {
	Cmd  string   `arg:"positional"`
	Args []string `arg:"positional"`
}

// CommandLine represents options (--server, etc.) and commands (submit, etc.).
// The caller is expected to copy and use the embedded structs separately.
type CommandLine struct {
	Options
	Command
}

// ParseCommandLine parses the command line and env vars. Command line options
// override env vars. Default options are used unless overridden by env vars
// or command line options. Defaults are usually parsed from config files.
func ParseCommandLine(def Options) CommandLine {
	var c CommandLine
	c.Options = def
	p, err := arg.NewParser(arg.Config{Program: "cubeclient"}, &c)
	if err != nil {
		fmt.Printf("arg.NewParser: %s", err)
		os.Exit(1)
	}
	if err := p.Parse(os.Args[1:]); err != nil {
		switch err {
		case arg.ErrHelp:
			c.Help = true
		case arg.ErrVersion:
			c.Version = true
		default:
			fmt.Printf("Error parsing command line: %s\n", err)
			os.Exit(1)
		}
	}
	return c
}

// ParseConfigFiles reads options from a comma-separated list of YAML files.
// Values from later files override earlier ones; files that don't exist or
// don't parse are skipped.
func ParseConfigFiles(files string, debug bool) Options {
	var def Options
	for _, file := range strings.Split(files, ",") {
		// If file starts with ~/, we need to expand this to the user home dir
		// because this is a shell expansion, not something Go knows about.
		if strings.HasPrefix(file, "~/") {
			usr, _ := user.Current()
			file = filepath.Join(usr.HomeDir, file[2:])
		}

		absfile, err := filepath.Abs(file)
		if err != nil {
			if debug {
				log.Printf("filepath.Abs(%s) error: %s", file, err)
			}
			continue
		}

		bytes, err := ioutil.ReadFile(absfile)
		if err != nil {
			if debug {
				log.Printf("Cannot read config file %s: %s", file, err)
			}
			continue
		}

		var o Options
		if err := yaml.Unmarshal(bytes, &o); err != nil {
			if debug {
				log.Printf("Invalid YAML in config file %s: %s", file, err)
			}
			continue
		}

		// Set options from this config file only if they're set
		if debug {
			log.Printf("Applying config file %s (%s)", file, absfile)
		}
		if o.Server != "" {
			def.Server = o.Server
		}
		if o.Port != "" {
			def.Port = o.Port
		}
		if o.User != "" {
			def.User = o.User
		}
		if o.Password != "" {
			def.Password = o.Password
		}
		if o.Token != "" {
			def.Token = o.Token
		}
		if o.Timeout != 0 {
			def.Timeout = o.Timeout
		}
	}
	if def.Port == "" {
		def.Port = DEFAULT_PORT
	}
	if def.Timeout == 0 {
		def.Timeout = DEFAULT_TIMEOUT
	}
	return def
}

// Session creates a session from the options, falling back to the CUBE_* env
// vars for anything unset.
func (o Options) Session() (*session.Session, error) {
	return session.New(o.User, o.Password, o.Server, o.Port, o.Token, true)
}
