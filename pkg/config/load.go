package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load reads a configuration file. Files ending in .toml are decoded as TOML;
// anything else uses the key = value format. Unusable entries are skipped and
// recorded in Warnings.
func Load(path string) (*Config, error) {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return loadTOML(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

func loadTOML(path string) (*Config, error) {
	c := Default()
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		c.warnf("unrecognized option '%s'", key.String())
	}
	return c, nil
}

// Write encodes c as TOML.
func (c *Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Parse reads the key = value configuration format:
//
//	# comment
//	database = "uniprot_sprot.fasta"
//	target_masses = 114.04293, 226.09535
//	mass_tolerance = 0.01
//	gluc_digest = true
//
// Keys are case-insensitive and database may be repeated.
func Parse(r io.Reader) (*Config, error) {
	c := Default()
	scanner := bufio.NewScanner(r)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		// Files written on Windows
		line := strings.ReplaceAll(scanner.Text(), "\r", "")
		line = strings.TrimLeft(line, " \t")

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			c.warnf("line %d: invalid configuration line: '%s'", lineNum, line)
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		if err := c.set(key, value); err != nil {
			c.warnf("line %d: %v", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	return c, nil
}

// set applies one key = value entry. The config is unchanged on error.
func (c *Config) set(key, value string) error {
	switch key {
	case "database":
		path := unquote(value)
		if path == "" {
			return fmt.Errorf("invalid database value: '%s'", value)
		}
		c.Databases = append(c.Databases, path)

	case "mass_tolerance":
		tol, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid double value for mass tolerance: '%s'", value)
		}
		c.MassTolerance = tol

	case "target_masses":
		masses, err := parseMasses(value)
		if err != nil {
			return fmt.Errorf("invalid target mass list: %w", err)
		}
		c.TargetMasses = append(c.TargetMasses, masses...)

	case "num_search_threads":
		n, err := strconv.ParseInt(value, 0, 0)
		if err != nil {
			return fmt.Errorf("invalid int value for num_search_threads: '%s'", value)
		}
		c.SearchThreads = int(n)

	case "read_database_multithreaded":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("invalid bool value for read_database_multithreaded: '%s'", value)
		}
		c.ReadMultithreaded = b

	case "gluc_digest":
		b, err := parseBool(value)
		if err != nil {
			return fmt.Errorf("invalid bool value for gluc_digest: '%s'", value)
		}
		c.Digest = b

	case "cleavage_residue":
		residue := unquote(value)
		if len(residue) != 1 {
			return fmt.Errorf("invalid cleavage residue: '%s'", value)
		}
		c.CleavageResidue = residue

	case "alphabet":
		c.Alphabet = strings.ToLower(unquote(value))

	default:
		return fmt.Errorf("unrecognized option '%s'", key)
	}
	return nil
}

// parseMasses splits a list of masses on commas and whitespace.
func parseMasses(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	masses := make([]float64, 0, len(fields))
	for _, f := range fields {
		m, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid mass '%s'", f)
		}
		masses = append(masses, m)
	}
	return masses, nil
}

// parseBool accepts any value starting with true or false, ignoring case.
func parseBool(s string) (bool, error) {
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "true"):
		return true, nil
	case strings.HasPrefix(lower, "false"):
		return false, nil
	}
	return false, fmt.Errorf("invalid bool value '%s'", s)
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return s
}
