package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Override keys. Each is a command line flag name and, upper-cased with the
// FRAGSEARCH_ prefix and '-' replaced by '_', an environment variable.
const (
	KeyDatabases         = "db"
	KeyMasses            = "masses"
	KeyTolerance         = "tolerance"
	KeyDigest            = "digest"
	KeyCleave            = "cleave"
	KeyThreads           = "threads"
	KeyReadMultithreaded = "read-multithreaded"
	KeyAlphabet          = "alphabet"
)

var overrideKeys = []string{
	KeyDatabases, KeyMasses, KeyTolerance, KeyDigest,
	KeyCleave, KeyThreads, KeyReadMultithreaded, KeyAlphabet,
}

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "FRAGSEARCH"

// BindFlags binds the override flags defined in fs, and the matching
// environment variables, to v.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, key := range overrideKeys {
		f := fs.Lookup(key)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", key, err)
		}
	}
	return nil
}

// Merge applies the overrides that were explicitly set in v: a changed flag or
// a present environment variable. Flags take precedence over the environment.
func (c *Config) Merge(v *viper.Viper) error {
	if v.IsSet(KeyDatabases) {
		var dbs []string
		for _, db := range v.GetStringSlice(KeyDatabases) {
			if db = strings.TrimSpace(db); db != "" {
				dbs = append(dbs, db)
			}
		}
		c.Databases = dbs
	}

	if v.IsSet(KeyMasses) {
		masses, err := parseMasses(strings.Join(v.GetStringSlice(KeyMasses), ","))
		if err != nil {
			return fmt.Errorf("invalid --%s: %w", KeyMasses, err)
		}
		c.TargetMasses = masses
	}

	if v.IsSet(KeyTolerance) {
		tol, err := strconv.ParseFloat(v.GetString(KeyTolerance), 64)
		if err != nil {
			return fmt.Errorf("invalid --%s: %w", KeyTolerance, err)
		}
		c.MassTolerance = tol
	}

	if v.IsSet(KeyDigest) {
		b, err := parseBool(v.GetString(KeyDigest))
		if err != nil {
			return fmt.Errorf("invalid --%s: %w", KeyDigest, err)
		}
		c.Digest = b
	}

	if v.IsSet(KeyCleave) {
		c.CleavageResidue = strings.TrimSpace(v.GetString(KeyCleave))
	}

	if v.IsSet(KeyThreads) {
		n, err := strconv.Atoi(v.GetString(KeyThreads))
		if err != nil {
			return fmt.Errorf("invalid --%s: %w", KeyThreads, err)
		}
		c.SearchThreads = n
	}

	if v.IsSet(KeyReadMultithreaded) {
		b, err := parseBool(v.GetString(KeyReadMultithreaded))
		if err != nil {
			return fmt.Errorf("invalid --%s: %w", KeyReadMultithreaded, err)
		}
		c.ReadMultithreaded = b
	}

	if v.IsSet(KeyAlphabet) {
		c.Alphabet = strings.ToLower(strings.TrimSpace(v.GetString(KeyAlphabet)))
	}

	return nil
}
